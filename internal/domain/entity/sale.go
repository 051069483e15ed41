package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Máquina de estados: ACTIVE -> REVERSED (terminal).
const (
	SaleStatusActive   = "ACTIVE"
	SaleStatusReversed = "REVERSED"
)

// Sale representa una venta por peso. PriceSnapshot se copia del precio del
// artículo al momento de la venta y no cambia nunca, aunque el precio del
// artículo se edite después. La única mutación permitida es Status
// ACTIVE -> REVERSED, ejecutada por el procesador de anulaciones.
type Sale struct {
	ID            string
	SaleNumber    string          // corto y legible, único (ej. V-20250115-A3F1)
	ItemID        string
	KgSold        decimal.Decimal // > 0, 3 decimales
	PriceSnapshot decimal.Decimal // precio por kg al momento de la venta, 2 decimales
	TotalPrice    decimal.Decimal // redondeado SIEMPRE hacia arriba al centavo
	CashierID     string
	CustomerName  string // opcional
	Status        string // ACTIVE | REVERSED
	CreatedAt     time.Time
}
