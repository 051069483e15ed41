package repository

import (
	"github.com/shopspring/decimal"

	"github.com/nangulu/pos-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para artículos (DIP).
// GetByIDForUpdate bloquea la fila del artículo (SELECT ... FOR UPDATE) y es
// la pieza que serializa "leer balance + insertar asiento" por artículo.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetByIDForUpdate(id string) (*entity.Item, error)
	GetByName(name string) (*entity.Item, error)
	UpdatePrice(id string, price decimal.Decimal) error
	Deactivate(id string) error
	ListActive(limit, offset int) ([]*entity.Item, error)
}
