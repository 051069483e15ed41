package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPurchaseRequest ingreso de stock. Dos modos: ItemID (artículo
// existente) o Name (crear el artículo si no existe, con nombre único).
type RecordPurchaseRequest struct {
	ItemID       string          `json:"item_id"`
	Name         string          `json:"name"`
	KgAdded      decimal.Decimal `json:"kg_added"`
	CostPerKg    decimal.Decimal `json:"cost_per_kg"`
	SupplierName string          `json:"supplier_name"`
	Notes        string          `json:"notes"`
}

// PurchaseResponse resultado de un ingreso de stock.
type PurchaseResponse struct {
	LedgerEntryID string          `json:"ledger_entry_id"`
	ItemID        string          `json:"item_id"`
	ItemName      string          `json:"item_name"`
	ItemCreated   bool            `json:"item_created"`
	KgAdded       decimal.Decimal `json:"kg_added"`
}

// StockResponse balance actual y clasificación de un artículo.
type StockResponse struct {
	ItemID    string          `json:"item_id"`
	BalanceKg decimal.Decimal `json:"balance_kg"`
	Status    string          `json:"status"` // NORMAL | LOW | CRITICAL
}

// LedgerEntryResponse asiento del ledger para listados de auditoría.
type LedgerEntryResponse struct {
	ID         string          `json:"id"`
	ItemID     string          `json:"item_id"`
	KgChange   decimal.Decimal `json:"kg_change"`
	SourceType string          `json:"source_type"`
	SourceID   string          `json:"source_id,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	CreatedBy  string          `json:"created_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

// UpdatePriceRequest cambio de precio. Afecta solo ventas futuras.
type UpdatePriceRequest struct {
	PricePerKg decimal.Decimal `json:"price_per_kg"`
}

// ItemResponse artículo del catálogo.
type ItemResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	PricePerKg      decimal.Decimal `json:"price_per_kg"`
	LowStockKg      decimal.Decimal `json:"low_stock_kg"`
	CriticalStockKg decimal.Decimal `json:"critical_stock_kg"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// StockAlertResponse artículo activo en estado LOW o CRITICAL.
type StockAlertResponse struct {
	ItemID    string          `json:"item_id"`
	ItemName  string          `json:"item_name"`
	BalanceKg decimal.Decimal `json:"balance_kg"`
	Status    string          `json:"status"`
}
