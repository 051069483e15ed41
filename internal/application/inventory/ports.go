package inventory

import (
	"context"

	"github.com/nangulu/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que "leer balance + insertar asiento"
// sea una unidad atómica: o todo se confirma o nada queda escrito.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		ledgerRepo repository.LedgerRepository,
	) error) error
}
