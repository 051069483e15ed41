package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nangulu/pos-api/internal/domain/entity"
	"github.com/nangulu/pos-api/internal/domain/ledger"
)

func itemWithThresholds(low, critical string) *entity.Item {
	return &entity.Item{
		LowStockKg:      decimal.RequireFromString(low),
		CriticalStockKg: decimal.RequireFromString(critical),
	}
}

// TestClassify verifica los límites inclusivos: el empate con un umbral va
// siempre al estado más severo.
func TestClassify(t *testing.T) {
	item := itemWithThresholds("100.000", "50.000")

	cases := []struct {
		name    string
		balance string
		want    string
	}{
		{"muy por encima del umbral bajo", "250.000", ledger.StockStatusNormal},
		{"apenas por encima del umbral bajo", "100.001", ledger.StockStatusNormal},
		{"exactamente en el umbral bajo", "100.000", ledger.StockStatusLow},
		{"entre umbrales", "75.500", ledger.StockStatusLow},
		{"exactamente en el umbral crítico", "50.000", ledger.StockStatusCritical},
		{"por debajo del crítico", "10.000", ledger.StockStatusCritical},
		{"stock cero", "0", ledger.StockStatusCritical},
		{"stock negativo", "-3.250", ledger.StockStatusCritical},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ledger.Classify(decimal.RequireFromString(tc.balance), item)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestSaleTotal_RedondeoHaciaArriba: el total se redondea SIEMPRE hacia arriba
// al centavo, nunca al más cercano. 33.333 × 1.001 = 33.366333 -> 33.37.
func TestSaleTotal_RedondeoHaciaArriba(t *testing.T) {
	cases := []struct {
		price string
		kg    string
		want  string
	}{
		{"33.333", "1.001", "33.37"},
		{"10.00", "0.333", "3.33"},   // 3.3300 exacto: no sube
		{"10.00", "0.3331", "3.34"},  // cualquier fracción sube
		{"0.01", "0.001", "0.01"},    // 0.00001 sube al centavo
		{"100.00", "5.000", "500.00"},
	}
	for _, tc := range cases {
		got := ledger.SaleTotal(decimal.RequireFromString(tc.price), decimal.RequireFromString(tc.kg))
		assert.True(t, decimal.RequireFromString(tc.want).Equal(got),
			"%s × %s debe dar %s, dio %s", tc.price, tc.kg, tc.want, got)
	}
}

func TestQuantizeKg(t *testing.T) {
	got := ledger.QuantizeKg(decimal.RequireFromString("12.34567"))
	assert.True(t, decimal.RequireFromString("12.346").Equal(got))
}

// TestNewSaleNumber_Formato verifica prefijo, fecha y sufijo de 4 hex.
func TestNewSaleNumber_Formato(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	n := ledger.NewSaleNumber("V", now)
	assert.Regexp(t, `^V-20250115-[0-9A-F]{4}$`, n)
	assert.LessOrEqual(t, len(n), 20, "debe caber en la columna sale_number")
}
