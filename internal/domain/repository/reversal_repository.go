package repository

import "github.com/nangulu/pos-api/internal/domain/entity"

// ReversalRepository define el puerto de persistencia para anulaciones.
// Create debe devolver domain.ErrAlreadyReversed si ya existe una anulación
// para la misma venta (constraint único sobre sale_id).
type ReversalRepository interface {
	Create(reversal *entity.Reversal) error
	GetBySaleID(saleID string) (*entity.Reversal, error)
}
