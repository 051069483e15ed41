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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, sale_number, item_id, kg_sold, price_per_kg_snapshot, total_price, cashier_id, customer_name, status, created_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta con su snapshot de precio.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleNumber, sale.ItemID, sale.KgSold,
		sale.PriceSnapshot, sale.TotalPrice, sale.CashierID,
		nullable(sale.CustomerName), sale.Status, sale.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID; nil si no existe.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByIDForUpdate obtiene la venta y bloquea su fila (SELECT FOR UPDATE).
// Serializa anulaciones concurrentes de la misma venta.
func (r *SaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// ExistsBySaleNumber verifica colisión del número de venta.
func (r *SaleRepo) ExistsBySaleNumber(saleNumber string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM sales WHERE sale_number = $1)`
	if err := r.q.QueryRow(context.Background(), query, saleNumber).Scan(&exists); err != nil {
		return false, fmt.Errorf("check sale number: %w", err)
	}
	return exists, nil
}

// MarkReversed transiciona ACTIVE -> REVERSED (única mutación permitida sobre
// una venta; el estado REVERSED es terminal).
func (r *SaleRepo) MarkReversed(id string) error {
	query := `UPDATE sales SET status = $2 WHERE id = $1 AND status = $3`
	tag, err := r.q.Exec(context.Background(), query, id, entity.SaleStatusReversed, entity.SaleStatusActive)
	if err != nil {
		return fmt.Errorf("mark sale reversed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyReversed
	}
	return nil
}

// ListByCashier lista ventas de un cajero, recientes primero.
func (r *SaleRepo) ListByCashier(cashierID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE cashier_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, cashierID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, sale)
	}
	return list, rows.Err()
}

func (r *SaleRepo) scanOne(query string, arg any) (*entity.Sale, error) {
	row := r.q.QueryRow(context.Background(), query, arg)
	sale, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return sale, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerName *string
	err := row.Scan(
		&s.ID, &s.SaleNumber, &s.ItemID, &s.KgSold,
		&s.PriceSnapshot, &s.TotalPrice, &s.CashierID,
		&customerName, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	if customerName != nil {
		s.CustomerName = *customerName
	}
	return &s, nil
}
