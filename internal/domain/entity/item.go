package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo vendido a granel (por kilogramo).
// El precio y los umbrales son los únicos campos mutables; el stock NUNCA se
// guarda aquí: se deriva sumando el ledger (ver domain/ledger).
// Los artículos no se borran, solo se desactivan (soft delete).
type Item struct {
	ID              string
	Name            string // único
	Description     string
	PricePerKg      decimal.Decimal // precio de venta vigente, 2 decimales
	LowStockKg      decimal.Decimal // umbral de stock bajo, 3 decimales
	CriticalStockKg decimal.Decimal // umbral crítico, <= LowStockKg
	IsActive        bool
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
