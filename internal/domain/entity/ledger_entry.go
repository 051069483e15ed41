package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento que producen asientos en el ledger.
const (
	SourceTypePURCHASE = "PURCHASE" // compra/ingreso de stock
	SourceTypeSALE     = "SALE"     // venta
	SourceTypeREVERSAL = "REVERSAL" // anulación de venta
)

// LedgerEntry es un asiento inmutable del ledger de inventario.
// Append-only: una vez escrito jamás se actualiza ni se borra; el stock actual
// de un artículo es la suma con signo de sus KgChange.
type LedgerEntry struct {
	ID         string
	ItemID     string
	KgChange   decimal.Decimal // con signo: + compras/anulaciones, - ventas; 3 decimales
	SourceType string          // PURCHASE, SALE, REVERSAL
	SourceID   string          // ID de la venta o anulación origen; vacío en compras
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
}
