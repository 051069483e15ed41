package repository

import "github.com/nangulu/pos-api/internal/domain/entity"

// SaleRepository define el puerto de persistencia para ventas.
// MarkReversed es la única mutación permitida sobre una venta (ACTIVE -> REVERSED).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	GetByIDForUpdate(id string) (*entity.Sale, error)
	ExistsBySaleNumber(saleNumber string) (bool, error)
	MarkReversed(id string) error
	ListByCashier(cashierID string, limit, offset int) ([]*entity.Sale, error)
}
