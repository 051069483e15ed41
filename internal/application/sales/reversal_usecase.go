package sales

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nangulu/pos-api/internal/application/dto"
	"github.com/nangulu/pos-api/internal/application/inventory"
	"github.com/nangulu/pos-api/internal/domain"
	"github.com/nangulu/pos-api/internal/domain/entity"
	"github.com/nangulu/pos-api/internal/domain/repository"
)

// ReversalUseCase anula ventas. La anulación es SIEMPRE completa: devuelve el
// KgSold íntegro al ledger y marca la venta REVERSED (estado terminal).
// Repetir la anulación falla con ErrAlreadyReversed: rechazo idempotente y
// visible, no un éxito silencioso.
type ReversalUseCase struct {
	txRunner SalesTxRunner
	retry    inventory.RetryPolicy
}

// NewReversalUseCase construye el procesador de anulaciones.
func NewReversalUseCase(txRunner SalesTxRunner, retry inventory.RetryPolicy) *ReversalUseCase {
	return &ReversalUseCase{txRunner: txRunner, retry: retry}
}

// ReverseSale anula una venta. El motivo es obligatorio. Solo el cajero
// original o un admin pueden anular. Ante una carrera de dos anulaciones
// simultáneas, el constraint único de sale_reversals.sale_id es el árbitro
// final: la perdedora recibe ErrAlreadyReversed, nunca un error crudo de BD.
func (uc *ReversalUseCase) ReverseSale(ctx context.Context, saleID, actorID, actorRole, reason string) (*dto.ReversalResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrInvalidReason
	}
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.ReversalResponse
	err := uc.retry.Do(ctx, func() error {
		out = nil
		return uc.txRunner.RunSales(ctx, func(
			itemRepo repository.ItemRepository,
			ledgerRepo repository.LedgerRepository,
			saleRepo repository.SaleRepository,
			reversalRepo repository.ReversalRepository,
		) error {
			// Lock de la fila de la venta: dos anulaciones concurrentes se
			// serializan aquí; la segunda ve status REVERSED.
			sale, err := saleRepo.GetByIDForUpdate(saleID)
			if err != nil {
				return err
			}
			if sale == nil {
				return domain.ErrNotFound
			}
			if actorRole != entity.RoleAdmin && sale.CashierID != actorID {
				return domain.ErrForbidden
			}
			if sale.Status != entity.SaleStatusActive {
				return domain.ErrAlreadyReversed
			}
			// Lock de la fila del artículo: todo par leer-balance/insertar-asiento
			// se serializa sobre el mismo lock, igual que en venta y compra.
			if _, err := itemRepo.GetByIDForUpdate(sale.ItemID); err != nil {
				return err
			}

			now := time.Now()
			reversal := &entity.Reversal{
				ID:         uuid.New().String(),
				SaleID:     sale.ID,
				ReversedBy: actorID,
				Reason:     strings.TrimSpace(reason),
				CreatedAt:  now,
			}
			if err := reversalRepo.Create(reversal); err != nil {
				return err
			}
			if err := saleRepo.MarkReversed(sale.ID); err != nil {
				return err
			}
			// Devuelve exactamente lo descontado: el KgSold original completo.
			entry := &entity.LedgerEntry{
				ID:         uuid.New().String(),
				ItemID:     sale.ItemID,
				KgChange:   sale.KgSold,
				SourceType: entity.SourceTypeREVERSAL,
				SourceID:   reversal.ID,
				Notes:      fmt.Sprintf("Anulación de venta %s", sale.SaleNumber),
				CreatedBy:  actorID,
				CreatedAt:  now,
			}
			if err := ledgerRepo.Append(entry); err != nil {
				return err
			}
			out = &dto.ReversalResponse{
				ID:         reversal.ID,
				SaleID:     reversal.SaleID,
				ReversedBy: reversal.ReversedBy,
				Reason:     reversal.Reason,
				CreatedAt:  reversal.CreatedAt,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
