package repository

import (
	"github.com/shopspring/decimal"

	"github.com/nangulu/pos-api/internal/domain/entity"
)

// LedgerRepository define el puerto del ledger append-only.
// No existen Update ni Delete a propósito: el contrato es que ningún código
// pueda mutar un asiento, y la migración además revoca esos privilegios en la
// tabla como defensa en profundidad.
type LedgerRepository interface {
	Append(entry *entity.LedgerEntry) error
	SumByItem(itemID string) (decimal.Decimal, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.LedgerEntry, error)
}
