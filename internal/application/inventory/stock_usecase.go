package inventory

import (
	"context"

	"github.com/nangulu/pos-api/internal/application/dto"
	"github.com/nangulu/pos-api/internal/domain"
	"github.com/nangulu/pos-api/internal/domain/ledger"
	"github.com/nangulu/pos-api/internal/domain/repository"
)

// StockUseCase consultas de solo lectura sobre el ledger: balance actual,
// historial paginado y alertas de stock. Nunca muta nada.
type StockUseCase struct {
	itemRepo   repository.ItemRepository
	ledgerRepo repository.LedgerRepository
}

// NewStockUseCase construye el caso de uso de consultas de stock.
func NewStockUseCase(itemRepo repository.ItemRepository, ledgerRepo repository.LedgerRepository) *StockUseCase {
	return &StockUseCase{itemRepo: itemRepo, ledgerRepo: ledgerRepo}
}

// GetStock devuelve el balance (suma con signo del ledger, 3 decimales) y su
// clasificación contra los umbrales del artículo. El motor en sí es agnóstico
// del catálogo (el ledger existe aparte), pero esta operación expuesta valida
// que el artículo exista.
func (uc *StockUseCase) GetStock(ctx context.Context, itemID string) (*dto.StockResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	balance, err := uc.ledgerRepo.SumByItem(itemID)
	if err != nil {
		return nil, err
	}
	balance = ledger.QuantizeKg(balance)
	return &dto.StockResponse{
		ItemID:    itemID,
		BalanceKg: balance,
		Status:    ledger.Classify(balance, item),
	}, nil
}

// GetLedger devuelve una página del historial del artículo en orden
// cronológico. Solo lectura: no existe ruta de código que mute un asiento.
func (uc *StockUseCase) GetLedger(ctx context.Context, itemID string, page dto.PageRequest) ([]dto.LedgerEntryResponse, error) {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	page.DefaultPage()
	entries, err := uc.ledgerRepo.ListByItem(itemID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.LedgerEntryResponse{
			ID:         e.ID,
			ItemID:     e.ItemID,
			KgChange:   e.KgChange,
			SourceType: e.SourceType,
			SourceID:   e.SourceID,
			Notes:      e.Notes,
			CreatedBy:  e.CreatedBy,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out, nil
}

// tamaño de página al recorrer el catálogo para las alertas
const alertsPageSize = 100

// ListAlerts lista los artículos activos cuyo balance clasifica LOW o CRITICAL.
// Recorre el catálogo completo por páginas: un artículo más allá de la primera
// página también debe poder alertar.
func (uc *StockUseCase) ListAlerts(ctx context.Context) ([]dto.StockAlertResponse, error) {
	var alerts []dto.StockAlertResponse
	for offset := 0; ; offset += alertsPageSize {
		items, err := uc.itemRepo.ListActive(alertsPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			balance, err := uc.ledgerRepo.SumByItem(item.ID)
			if err != nil {
				return nil, err
			}
			balance = ledger.QuantizeKg(balance)
			status := ledger.Classify(balance, item)
			if status == ledger.StockStatusNormal {
				continue
			}
			alerts = append(alerts, dto.StockAlertResponse{
				ItemID:    item.ID,
				ItemName:  item.Name,
				BalanceKg: balance,
				Status:    status,
			})
		}
		if len(items) < alertsPageSize {
			return alerts, nil
		}
	}
}
