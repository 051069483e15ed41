package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/nangulu/pos-api/internal/domain"
	"github.com/nangulu/pos-api/internal/domain/entity"
	"github.com/nangulu/pos-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, description, price_per_kg, low_stock_kg, critical_stock_kg, is_active, created_by, created_at, updated_at`

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo nuevo. ErrDuplicate si el nombre ya existe.
func (r *ItemRepo) Create(item *entity.Item) error {
	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	createdBy := nullable(item.CreatedBy)
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, item.Description, item.PricePerKg,
		item.LowStockKg, item.CriticalStockKg, item.IsActive,
		createdBy, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo por ID; nil si no existe.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene el artículo y bloquea su fila (SELECT FOR UPDATE).
// Este lock serializa "leer balance + insertar asiento" por artículo: dos
// ventas concurrentes del mismo item jamás pasan el chequeo de stock a la vez.
func (r *ItemRepo) GetByIDForUpdate(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// GetByName obtiene un artículo por nombre; nil si no existe.
func (r *ItemRepo) GetByName(name string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name = $1`
	return r.scanOne(query, name)
}

// UpdatePrice cambia el precio vigente. No toca ninguna venta existente:
// los snapshots viven en la tabla sales y jamás se reescriben.
func (r *ItemRepo) UpdatePrice(id string, price decimal.Decimal) error {
	query := `UPDATE items SET price_per_kg = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, price)
	if err != nil {
		return fmt.Errorf("update item price: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate marca el artículo inactivo (soft delete).
func (r *ItemRepo) Deactivate(id string) error {
	query := `UPDATE items SET is_active = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActive lista artículos activos por nombre.
func (r *ItemRepo) ListActive(limit, offset int) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE is_active = true ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func (r *ItemRepo) scanOne(query string, arg any) (*entity.Item, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

func scanItem(row pgx.Row) (*entity.Item, error) {
	var it entity.Item
	var description, createdBy *string
	err := row.Scan(
		&it.ID, &it.Name, &description, &it.PricePerKg,
		&it.LowStockKg, &it.CriticalStockKg, &it.IsActive,
		&createdBy, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}
	if description != nil {
		it.Description = *description
	}
	if createdBy != nil {
		it.CreatedBy = *createdBy
	}
	return &it, nil
}

// nullable convierte "" en NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
