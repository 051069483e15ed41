package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nangulu/pos-api/internal/application/dto"
	"github.com/nangulu/pos-api/internal/application/inventory"
	"github.com/nangulu/pos-api/internal/domain"
	"github.com/nangulu/pos-api/internal/domain/entity"
	"github.com/nangulu/pos-api/internal/domain/ledger"
	"github.com/nangulu/pos-api/internal/domain/repository"
)

// máximo de regeneraciones del número de venta ante colisión
const maxSaleNumberAttempts = 5

// SaleUseCase procesa ventas. Toda venta corre en una transacción que:
// bloquea la fila del artículo (SELECT ... FOR UPDATE), re-lee el balance del
// ledger DENTRO de la tx (nunca de un cache), verifica disponibilidad, copia
// el precio vigente como snapshot y escribe venta + asiento (-kg).
// Dos ventas concurrentes sobre el mismo artículo se serializan en el lock:
// una lectura optimista sin bloqueo sería un bug de corrección, no una
// simplificación aceptable.
type SaleUseCase struct {
	txRunner     SalesTxRunner
	retry        inventory.RetryPolicy
	numberPrefix string
	saleRepo     repository.SaleRepository // consultas fuera de tx
}

// NewSaleUseCase construye el procesador de ventas.
func NewSaleUseCase(txRunner SalesTxRunner, retry inventory.RetryPolicy, numberPrefix string, saleRepo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, retry: retry, numberPrefix: numberPrefix, saleRepo: saleRepo}
}

// RecordSale registra una venta. Precondiciones: kgSold > 0, artículo existente
// y activo. Si kgSold supera el balance actual la tx aborta con
// ErrInsufficientStock y no queda escrito ningún registro.
func (uc *SaleUseCase) RecordSale(ctx context.Context, cashierID string, in dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	// Se valida la cantidad YA cuantizada: 0.0004 kg redondea a 0.000 y debe
	// rechazarse aquí, no estrellarse contra el CHECK kg_sold > 0 de la base.
	kgSold := ledger.QuantizeKg(in.KgSold)
	if !kgSold.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}

	var out *dto.SaleResponse
	err := uc.retry.Do(ctx, func() error {
		out = nil
		return uc.txRunner.RunSales(ctx, func(
			itemRepo repository.ItemRepository,
			ledgerRepo repository.LedgerRepository,
			saleRepo repository.SaleRepository,
			_ repository.ReversalRepository,
		) error {
			// Lock de la fila del artículo: serializa leer-balance + insertar
			// asiento contra cualquier otra venta/compra/anulación del mismo item.
			item, err := itemRepo.GetByIDForUpdate(in.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNotFound
			}
			if !item.IsActive {
				return domain.ErrItemInactive
			}

			// Balance re-leído dentro de la misma tx que insertará el asiento.
			stock, err := ledgerRepo.SumByItem(item.ID)
			if err != nil {
				return err
			}
			if kgSold.GreaterThan(stock) {
				return domain.ErrInsufficientStock
			}

			now := time.Now()
			saleNumber, err := uc.uniqueSaleNumber(saleRepo, now)
			if err != nil {
				return err
			}
			sale := &entity.Sale{
				ID:            uuid.New().String(),
				SaleNumber:    saleNumber,
				ItemID:        item.ID,
				KgSold:        kgSold,
				PriceSnapshot: item.PricePerKg,
				TotalPrice:    ledger.SaleTotal(item.PricePerKg, kgSold),
				CashierID:     cashierID,
				CustomerName:  in.CustomerName,
				Status:        entity.SaleStatusActive,
				CreatedAt:     now,
			}
			if err := saleRepo.Create(sale); err != nil {
				return err
			}
			entry := &entity.LedgerEntry{
				ID:         uuid.New().String(),
				ItemID:     item.ID,
				KgChange:   kgSold.Neg(),
				SourceType: entity.SourceTypeSALE,
				SourceID:   sale.ID,
				Notes:      fmt.Sprintf("Venta %s", sale.SaleNumber),
				CreatedBy:  cashierID,
				CreatedAt:  now,
			}
			if err := ledgerRepo.Append(entry); err != nil {
				return err
			}
			out = toSaleResponse(sale)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GetSale consulta una venta por ID.
func (uc *SaleUseCase) GetSale(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// ListByCashier lista las ventas de un cajero (recientes primero).
func (uc *SaleUseCase) ListByCashier(ctx context.Context, cashierID string, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	list, err := uc.saleRepo.ListByCashier(cashierID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSaleResponse(s))
	}
	return out, nil
}

// uniqueSaleNumber genera un número y verifica colisión contra la base dentro
// de la tx; regenera hasta maxSaleNumberAttempts veces.
func (uc *SaleUseCase) uniqueSaleNumber(saleRepo repository.SaleRepository, now time.Time) (string, error) {
	for i := 0; i < maxSaleNumberAttempts; i++ {
		n := ledger.NewSaleNumber(uc.numberPrefix, now)
		exists, err := saleRepo.ExistsBySaleNumber(n)
		if err != nil {
			return "", err
		}
		if !exists {
			return n, nil
		}
	}
	return "", fmt.Errorf("generar número de venta: %w", domain.ErrDuplicate)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:            s.ID,
		SaleNumber:    s.SaleNumber,
		ItemID:        s.ItemID,
		KgSold:        s.KgSold,
		PriceSnapshot: s.PriceSnapshot,
		TotalPrice:    s.TotalPrice,
		CashierID:     s.CashierID,
		CustomerName:  s.CustomerName,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
	}
}
