package inventory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nangulu/pos-api/internal/application/dto"
	"github.com/nangulu/pos-api/internal/application/inventory"
	"github.com/nangulu/pos-api/internal/domain"
	"github.com/nangulu/pos-api/internal/domain/ledger"
)

func newStockEnv() (*memStore, *inventory.StockUseCase) {
	store := newMemStore()
	uc := inventory.NewStockUseCase(&memItemRepo{s: store}, &memLedgerRepo{s: store})
	return store, uc
}

// El balance es la suma con signo de TODOS los asientos del artículo, nunca un
// contador aparte.
func TestGetStock_SumaDelLedger(t *testing.T) {
	store, uc := newStockEnv()
	store.addItem(activeItem("item-1", "Garbanzos", "8.00"))
	store.addEntry("item-1", "120.000")
	store.addEntry("item-1", "-30.500")
	store.addEntry("item-1", "-20.000")
	// Asientos de otro artículo no cuentan.
	store.addEntry("item-2", "999.000")

	out, err := uc.GetStock(context.Background(), "item-1")
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("69.500").Equal(out.BalanceKg),
		"balance debe ser 69.500, dio %s", out.BalanceKg)
	assert.Equal(t, ledger.StockStatusLow, out.Status, "69.500 <= 100.000 clasifica LOW")
}

func TestGetStock_ArticuloInexistente(t *testing.T) {
	_, uc := newStockEnv()
	_, err := uc.GetStock(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Sin asientos el balance es cero (y cero clasifica CRITICAL).
func TestGetStock_SinAsientos(t *testing.T) {
	store, uc := newStockEnv()
	store.addItem(activeItem("item-1", "Avena", "5.00"))

	out, err := uc.GetStock(context.Background(), "item-1")
	require.NoError(t, err)
	assert.True(t, out.BalanceKg.IsZero())
	assert.Equal(t, ledger.StockStatusCritical, out.Status)
}

// Las alertas incluyen solo artículos activos en LOW o CRITICAL.
func TestListAlerts(t *testing.T) {
	store, uc := newStockEnv()
	store.addItem(activeItem("item-normal", "Arroz", "3.00"))
	store.addEntry("item-normal", "250.000")
	store.addItem(activeItem("item-low", "Cafe", "20.00"))
	store.addEntry("item-low", "75.000")
	store.addItem(activeItem("item-critical", "Quinoa", "15.00"))
	store.addEntry("item-critical", "10.000")

	inactive := activeItem("item-inactivo", "Trigo", "2.00")
	inactive.IsActive = false
	store.addItem(inactive)

	alerts, err := uc.ListAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	// ListActive ordena por nombre: Cafe antes que Quinoa.
	assert.Equal(t, "item-low", alerts[0].ItemID)
	assert.Equal(t, ledger.StockStatusLow, alerts[0].Status)
	assert.Equal(t, "item-critical", alerts[1].ItemID)
	assert.Equal(t, ledger.StockStatusCritical, alerts[1].Status)
}

// Las alertas recorren el catálogo activo COMPLETO: un artículo más allá de la
// primera página de 100 también alerta.
func TestListAlerts_MasDeUnaPagina(t *testing.T) {
	store, uc := newStockEnv()
	for i := 0; i < 100; i++ {
		id := fmt.Sprintf("item-%03d", i)
		store.addItem(activeItem(id, fmt.Sprintf("Articulo %03d", i), "5.00"))
		store.addEntry(id, "500.000")
	}
	// Ordena después de los 100 anteriores: cae en la segunda página.
	store.addItem(activeItem("item-zzz", "Zzz granel", "5.00"))
	store.addEntry("item-zzz", "1.000")

	alerts, err := uc.ListAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "item-zzz", alerts[0].ItemID)
	assert.Equal(t, ledger.StockStatusCritical, alerts[0].Status)
}

// El historial se pagina en orden cronológico.
func TestGetLedger_Paginado(t *testing.T) {
	store, uc := newStockEnv()
	store.addItem(activeItem("item-1", "Maiz", "4.00"))
	store.addEntry("item-1", "100.000")
	store.addEntry("item-1", "-10.000")
	store.addEntry("item-1", "-5.000")

	page, err := uc.GetLedger(context.Background(), "item-1", dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.True(t, decimal.RequireFromString("100.000").Equal(page[0].KgChange))
	assert.True(t, decimal.RequireFromString("-10.000").Equal(page[1].KgChange))

	rest, err := uc.GetLedger(context.Background(), "item-1", dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.True(t, decimal.RequireFromString("-5.000").Equal(rest[0].KgChange))
}
