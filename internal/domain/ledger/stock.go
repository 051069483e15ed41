// Package ledger contiene los servicios de dominio puros del motor de
// inventario: clasificación de stock, redondeo de totales y numeración de
// ventas. Sin dependencias de persistencia.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/nangulu/pos-api/internal/domain/entity"
)

// Estados de stock según los umbrales del artículo.
const (
	StockStatusNormal   = "NORMAL"
	StockStatusLow      = "LOW"
	StockStatusCritical = "CRITICAL"
)

// KgPrecision precisión en decimales de toda cantidad en kilogramos.
const KgPrecision = 3

// Classify clasifica un balance contra los umbrales del artículo.
// Los límites son inclusivos y el empate va al estado más severo:
// balance <= crítico -> CRITICAL; balance <= bajo -> LOW; si no -> NORMAL.
func Classify(balance decimal.Decimal, item *entity.Item) string {
	if balance.LessThanOrEqual(item.CriticalStockKg) {
		return StockStatusCritical
	}
	if balance.LessThanOrEqual(item.LowStockKg) {
		return StockStatusLow
	}
	return StockStatusNormal
}

// QuantizeKg normaliza una cantidad a 3 decimales (redondeo half-up estándar).
func QuantizeKg(kg decimal.Decimal) decimal.Decimal {
	return kg.Round(KgPrecision)
}
