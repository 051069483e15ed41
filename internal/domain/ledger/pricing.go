package ledger

import "github.com/shopspring/decimal"

// SaleTotal calcula el total de una venta: precio snapshot × kg, redondeado
// SIEMPRE hacia arriba al centavo. Nunca al más cercano ni hacia abajo: el
// negocio no regala fracciones de centavo en ventas fraccionarias.
// Contrato vigente confirmado: redondeo hacia arriba, sin multi-moneda.
func SaleTotal(priceSnapshot, kgSold decimal.Decimal) decimal.Decimal {
	return priceSnapshot.Mul(kgSold).RoundUp(2)
}
