package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nangulu/pos-api/internal/domain"
	"github.com/nangulu/pos-api/internal/domain/entity"
	"github.com/nangulu/pos-api/internal/domain/repository"
)

var _ repository.ReversalRepository = (*ReversalRepo)(nil)

// ReversalRepo implementación de ReversalRepository sobre PostgreSQL.
type ReversalRepo struct {
	q Querier
}

// NewReversalRepository construye el adaptador de anulaciones. Pasar pool o tx (Querier).
func NewReversalRepository(q Querier) *ReversalRepo {
	return &ReversalRepo{q: q}
}

// Create persiste la anulación. El constraint único sobre sale_id es el
// árbitro final ante dos anulaciones simultáneas: la perdedora recibe
// ErrAlreadyReversed (taxonomía estable, nunca un error crudo de storage).
func (r *ReversalRepo) Create(reversal *entity.Reversal) error {
	query := `
		INSERT INTO sale_reversals (id, sale_id, reversed_by, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		reversal.ID, reversal.SaleID, reversal.ReversedBy, reversal.Reason, reversal.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyReversed
		}
		return fmt.Errorf("insert reversal: %w", err)
	}
	return nil
}

// GetBySaleID obtiene la anulación de una venta; nil si no existe.
func (r *ReversalRepo) GetBySaleID(saleID string) (*entity.Reversal, error) {
	query := `
		SELECT id, sale_id, reversed_by, reason, created_at
		FROM sale_reversals WHERE sale_id = $1`
	var rev entity.Reversal
	err := r.q.QueryRow(context.Background(), query, saleID).Scan(
		&rev.ID, &rev.SaleID, &rev.ReversedBy, &rev.Reason, &rev.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reversal: %w", err)
	}
	return &rev, nil
}
