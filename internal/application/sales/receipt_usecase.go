package sales

import (
	"context"

	"github.com/nangulu/pos-api/internal/domain"
	"github.com/nangulu/pos-api/internal/domain/entity"
	"github.com/nangulu/pos-api/internal/domain/repository"
)

// ReceiptUseCase genera el PDF del recibo de una venta.
type ReceiptUseCase struct {
	saleRepo  repository.SaleRepository
	itemRepo  repository.ItemRepository
	userRepo  repository.UserRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso de recibos.
func NewReceiptUseCase(saleRepo repository.SaleRepository, itemRepo repository.ItemRepository, userRepo repository.UserRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{saleRepo: saleRepo, itemRepo: itemRepo, userRepo: userRepo, generator: generator}
}

// GetReceiptPDF arma los datos de la venta y devuelve los bytes del PDF.
// Un cajero solo puede pedir recibos de sus propias ventas; un admin, de todas.
func (uc *ReceiptUseCase) GetReceiptPDF(ctx context.Context, saleID, actorID, actorRole string) ([]byte, string, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, "", err
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	if actorRole != entity.RoleAdmin && sale.CashierID != actorID {
		return nil, "", domain.ErrForbidden
	}
	item, err := uc.itemRepo.GetByID(sale.ItemID)
	if err != nil {
		return nil, "", err
	}
	if item == nil {
		return nil, "", domain.ErrNotFound
	}
	cashier, err := uc.userRepo.GetByID(sale.CashierID)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.generator.GenerateReceiptPDF(ctx, sale, item, cashier)
	if err != nil {
		return nil, "", err
	}
	return pdf, sale.SaleNumber, nil
}
