package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordSaleRequest venta de un artículo por peso.
type RecordSaleRequest struct {
	ItemID       string          `json:"item_id"`
	KgSold       decimal.Decimal `json:"kg_sold"`
	CustomerName string          `json:"customer_name"`
}

// SaleResponse venta creada o consultada.
type SaleResponse struct {
	ID            string          `json:"id"`
	SaleNumber    string          `json:"sale_number"`
	ItemID        string          `json:"item_id"`
	KgSold        decimal.Decimal `json:"kg_sold"`
	PriceSnapshot decimal.Decimal `json:"price_per_kg_snapshot"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	CashierID     string          `json:"cashier_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ReverseSaleRequest anulación completa de una venta.
type ReverseSaleRequest struct {
	Reason string `json:"reason"`
}

// ReversalResponse anulación creada.
type ReversalResponse struct {
	ID         string    `json:"id"`
	SaleID     string    `json:"sale_id"`
	ReversedBy string    `json:"reversed_by"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}
