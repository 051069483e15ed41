package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/nangulu/pos-api/internal/application/dto"
	"github.com/nangulu/pos-api/internal/domain"
	"github.com/nangulu/pos-api/internal/domain/entity"
	"github.com/nangulu/pos-api/internal/domain/repository"
)

// CatalogUseCase mutaciones acotadas del catálogo: cambio de precio y
// desactivación. Un cambio de precio afecta SOLO ventas futuras; los
// snapshots de ventas existentes jamás se reescriben.
type CatalogUseCase struct {
	itemRepo repository.ItemRepository
}

// NewCatalogUseCase construye el caso de uso de catálogo.
func NewCatalogUseCase(itemRepo repository.ItemRepository) *CatalogUseCase {
	return &CatalogUseCase{itemRepo: itemRepo}
}

// UpdatePrice cambia el precio vigente del artículo. newPrice debe ser > 0.
func (uc *CatalogUseCase) UpdatePrice(ctx context.Context, itemID string, newPrice decimal.Decimal) (*dto.ItemResponse, error) {
	if !newPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidPrice
	}
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.itemRepo.UpdatePrice(itemID, newPrice.Round(2)); err != nil {
		return nil, err
	}
	item.PricePerKg = newPrice.Round(2)
	return toItemResponse(item), nil
}

// Deactivate desactiva un artículo (soft delete; nunca se borra).
func (uc *CatalogUseCase) Deactivate(ctx context.Context, itemID string) error {
	item, err := uc.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Deactivate(itemID)
}

// ListActive lista los artículos activos del catálogo.
func (uc *CatalogUseCase) ListActive(ctx context.Context, page dto.PageRequest) ([]dto.ItemResponse, error) {
	page.DefaultPage()
	items, err := uc.itemRepo.ListActive(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, *toItemResponse(item))
	}
	return out, nil
}

func toItemResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:              item.ID,
		Name:            item.Name,
		Description:     item.Description,
		PricePerKg:      item.PricePerKg,
		LowStockKg:      item.LowStockKg,
		CriticalStockKg: item.CriticalStockKg,
		IsActive:        item.IsActive,
		CreatedAt:       item.CreatedAt,
		UpdatedAt:       item.UpdatedAt,
	}
}
