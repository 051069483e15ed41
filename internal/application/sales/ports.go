package sales

import (
	"context"

	"github.com/nangulu/pos-api/internal/domain/entity"
	"github.com/nangulu/pos-api/internal/domain/repository"
)

// SalesTxRunner ejecuta callbacks de venta/anulación dentro de una transacción,
// con repositorios atados a esa tx. La venta escribe en sales + inventory_ledger
// y la anulación en sale_reversals + sales + inventory_ledger como una sola
// unidad: nada parcial es observable jamás.
type SalesTxRunner interface {
	RunSales(ctx context.Context, fn func(
		itemRepo repository.ItemRepository,
		ledgerRepo repository.LedgerRepository,
		saleRepo repository.SaleRepository,
		reversalRepo repository.ReversalRepository,
	) error) error
}

// ReceiptGenerator genera el PDF del recibo de una venta (puerto de salida).
type ReceiptGenerator interface {
	GenerateReceiptPDF(ctx context.Context, sale *entity.Sale, item *entity.Item, cashier *entity.User) ([]byte, error)
}
