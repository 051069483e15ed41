package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nangulu/pos-api/internal/application/dto"
	"github.com/nangulu/pos-api/internal/domain"
	"github.com/nangulu/pos-api/internal/domain/entity"
	"github.com/nangulu/pos-api/internal/domain/ledger"
	"github.com/nangulu/pos-api/internal/domain/repository"
)

// máximo de reintentos de la transacción cuando otra creó el mismo nombre antes
const maxCreateAttempts = 3

// PurchasePolicy valores de negocio para artículos auto-creados en un ingreso.
// El multiplicador de margen NO es un invariante: es una constante de negocio
// configurable pendiente de confirmación del dueño del producto.
type PurchasePolicy struct {
	Markup            decimal.Decimal // precio por defecto = costo × Markup
	DefaultLowKg      decimal.Decimal
	DefaultCriticalKg decimal.Decimal
}

// PurchaseUseCase registra ingresos de stock de forma transaccional.
// Si el artículo no existe lo crea (auto-naming idempotente): un admin debe
// poder reabastecer antes de dar de alta formalmente el artículo, pero el
// artículo creado queda visible y editable de inmediato, nunca oculto.
type PurchaseUseCase struct {
	txRunner TxRunner
	retry    RetryPolicy
	policy   PurchasePolicy
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(txRunner TxRunner, retry RetryPolicy, policy PurchasePolicy) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, retry: retry, policy: policy}
}

// RecordPurchase valida cantidades, localiza o crea el artículo y agrega el
// asiento (+kg, PURCHASE) en una sola transacción con la fila del artículo
// bloqueada. KgAdded y CostPerKg deben ser > 0.
func (uc *PurchaseUseCase) RecordPurchase(ctx context.Context, actorID string, in dto.RecordPurchaseRequest) (*dto.PurchaseResponse, error) {
	// Se valida la cantidad YA cuantizada: 0.0004 kg redondea a 0.000 y
	// dejaría un asiento inútil de cero kg si pasara.
	kgAdded := ledger.QuantizeKg(in.KgAdded)
	if !kgAdded.GreaterThan(decimal.Zero) || !in.CostPerKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.ItemID == "" && strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}

	var out *dto.PurchaseResponse
	var err error
	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		err = uc.retry.Do(ctx, func() error {
			out = nil
			return uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, ledgerRepo repository.LedgerRepository) error {
				now := time.Now()
				item, created, err := uc.locateOrCreate(itemRepo, actorID, in, now)
				if err != nil {
					return err
				}
				entry := &entity.LedgerEntry{
					ID:         uuid.New().String(),
					ItemID:     item.ID,
					KgChange:   kgAdded,
					SourceType: entity.SourceTypePURCHASE,
					Notes:      purchaseNotes(in),
					CreatedBy:  actorID,
					CreatedAt:  now,
				}
				if err := ledgerRepo.Append(entry); err != nil {
					return err
				}
				out = &dto.PurchaseResponse{
					LedgerEntryID: entry.ID,
					ItemID:        item.ID,
					ItemName:      item.Name,
					ItemCreated:   created,
					KgAdded:       entry.KgChange,
				}
				return nil
			})
		})
		// Otra transacción confirmó el mismo nombre primero (23505): la tx
		// perdedora se reintenta entera y reutiliza la fila ya existente.
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// locateOrCreate resuelve el artículo destino del ingreso.
// Con ItemID: bloquea la fila existente; si no existe, crea uno con nombre
// auto-generado a partir del ID como semilla. Con Name: reutiliza el artículo
// de ese nombre o crea uno nuevo.
func (uc *PurchaseUseCase) locateOrCreate(itemRepo repository.ItemRepository, actorID string, in dto.RecordPurchaseRequest, now time.Time) (*entity.Item, bool, error) {
	if in.ItemID != "" {
		item, err := itemRepo.GetByIDForUpdate(in.ItemID)
		if err != nil {
			return nil, false, err
		}
		if item != nil {
			return item, false, nil
		}
		item, err = uc.createItem(itemRepo, actorID, fmt.Sprintf("Item_%s", shortSeed(in.ItemID)), in, now)
		return item, true, err
	}

	name := strings.TrimSpace(in.Name)
	item, err := itemRepo.GetByName(name)
	if err != nil {
		return nil, false, err
	}
	if item != nil {
		// Re-lee con lock para serializar contra ventas concurrentes.
		locked, err := itemRepo.GetByIDForUpdate(item.ID)
		if err != nil {
			return nil, false, err
		}
		return locked, false, nil
	}
	item, err = uc.createItem(itemRepo, actorID, name, in, now)
	return item, true, err
}

// createItem crea el artículo con precio por defecto (costo × margen) y
// umbrales por defecto. Si el nombre base está tomado, prueba sufijos _1, _2...
// hasta encontrar uno libre (el ciclo corre dentro de la tx, con el constraint
// único de la tabla como respaldo).
func (uc *PurchaseUseCase) createItem(itemRepo repository.ItemRepository, actorID, baseName string, in dto.RecordPurchaseRequest, now time.Time) (*entity.Item, error) {
	name := baseName
	for n := 1; ; n++ {
		existing, err := itemRepo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			break
		}
		name = fmt.Sprintf("%s_%d", baseName, n)
	}
	item := &entity.Item{
		ID:              uuid.New().String(),
		Name:            name,
		Description:     "Auto-creado desde un ingreso de stock",
		PricePerKg:      in.CostPerKg.Mul(uc.policy.Markup).Round(2),
		LowStockKg:      uc.policy.DefaultLowKg,
		CriticalStockKg: uc.policy.DefaultCriticalKg,
		IsActive:        true,
		CreatedBy:       actorID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

func purchaseNotes(in dto.RecordPurchaseRequest) string {
	supplier := in.SupplierName
	if supplier == "" {
		supplier = "sin proveedor"
	}
	if in.Notes == "" {
		return fmt.Sprintf("Compra: %s", supplier)
	}
	return fmt.Sprintf("Compra: %s - %s", supplier, in.Notes)
}

// shortSeed recorta un ID largo (UUID) a una semilla legible para el nombre.
func shortSeed(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
