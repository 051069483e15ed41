package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nangulu/pos-api/internal/domain/entity"
	"github.com/nangulu/pos-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación del ledger append-only sobre PostgreSQL.
// Solo INSERT y SELECT: no existe aquí (ni en ningún otro lugar del código)
// un UPDATE o DELETE sobre inventory_ledger, y la migración revoca esos
// privilegios al rol de la aplicación.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del ledger. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Append agrega un asiento. Se escribe exactamente una vez y vive para siempre.
func (r *LedgerRepo) Append(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO inventory_ledger (id, item_id, kg_change, source_type, source_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ItemID, entry.KgChange, entry.SourceType,
		nullable(entry.SourceID), nullable(entry.Notes), nullable(entry.CreatedBy), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// SumByItem devuelve la suma con signo de los asientos del artículo; 0 si no
// hay ninguno. Dentro de una tx con la fila del item bloqueada, este es el
// balance autoritativo contra el que se valida una venta.
func (r *LedgerRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(kg_change), 0) FROM inventory_ledger WHERE item_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, itemID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum ledger: %w", err)
	}
	return sum, nil
}

// ListByItem lista asientos del artículo en orden cronológico, paginado.
func (r *LedgerRepo) ListByItem(itemID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, item_id, kg_change, source_type, source_id, notes, created_by, created_at
		FROM inventory_ledger WHERE item_id = $1
		ORDER BY created_at, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, itemID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var sourceID, notes, createdBy *string
		if err := rows.Scan(&e.ID, &e.ItemID, &e.KgChange, &e.SourceType, &sourceID, &notes, &createdBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if sourceID != nil {
			e.SourceID = *sourceID
		}
		if notes != nil {
			e.Notes = *notes
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
