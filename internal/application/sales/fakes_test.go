package sales_test

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/nangulu/pos-api/internal/application/inventory"
	"github.com/nangulu/pos-api/internal/application/sales"
	"github.com/nangulu/pos-api/internal/domain"
	"github.com/nangulu/pos-api/internal/domain/entity"
	"github.com/nangulu/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore respaldo en memoria. El mutex lo toma el txRunner alrededor del
// callback completo: emula el FOR UPDATE de producción, de modo que dos ventas
// concurrentes sobre el mismo artículo se serializan igual que contra Postgres.
type memStore struct {
	mu        sync.Mutex
	items     map[string]*entity.Item
	entries   []*entity.LedgerEntry
	sales     map[string]*entity.Sale
	reversals map[string]*entity.Reversal // clave: SaleID (único)
}

func newMemStore() *memStore {
	return &memStore{
		items:     make(map[string]*entity.Item),
		sales:     make(map[string]*entity.Sale),
		reversals: make(map[string]*entity.Reversal),
	}
}

func (s *memStore) addItem(item *entity.Item) {
	cp := *item
	s.items[item.ID] = &cp
}

func (s *memStore) addEntry(itemID, kgChange string) {
	s.entries = append(s.entries, &entity.LedgerEntry{
		ID:         "seed-" + itemID,
		ItemID:     itemID,
		KgChange:   decimal.RequireFromString(kgChange),
		SourceType: entity.SourceTypePURCHASE,
	})
}

func activeItem(id, name, price string) *entity.Item {
	return &entity.Item{
		ID:              id,
		Name:            name,
		PricePerKg:      decimal.RequireFromString(price),
		LowStockKg:      decimal.RequireFromString("100.000"),
		CriticalStockKg: decimal.RequireFromString("50.000"),
		IsActive:        true,
	}
}

type memItemRepo struct{ s *memStore }

var _ repository.ItemRepository = (*memItemRepo)(nil)

func (r *memItemRepo) Create(item *entity.Item) error {
	cp := *item
	r.s.items[item.ID] = &cp
	return nil
}

func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	it, ok := r.s.items[id]
	if !ok {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *memItemRepo) GetByIDForUpdate(id string) (*entity.Item, error) {
	return r.GetByID(id)
}

func (r *memItemRepo) GetByName(name string) (*entity.Item, error) {
	for _, it := range r.s.items {
		if it.Name == name {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memItemRepo) UpdatePrice(id string, price decimal.Decimal) error {
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.PricePerKg = price
	return nil
}

func (r *memItemRepo) Deactivate(id string) error {
	it, ok := r.s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.IsActive = false
	return nil
}

func (r *memItemRepo) ListActive(limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.s.items {
		if it.IsActive {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type memLedgerRepo struct{ s *memStore }

var _ repository.LedgerRepository = (*memLedgerRepo)(nil)

func (r *memLedgerRepo) Append(e *entity.LedgerEntry) error {
	cp := *e
	r.s.entries = append(r.s.entries, &cp)
	return nil
}

func (r *memLedgerRepo) SumByItem(itemID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, e := range r.s.entries {
		if e.ItemID == itemID {
			sum = sum.Add(e.KgChange)
		}
	}
	return sum, nil
}

func (r *memLedgerRepo) ListByItem(itemID string, limit, offset int) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.s.entries {
		if e.ItemID == itemID {
			cp := *e
			out = append(out, &cp)
		}
	}
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type memSaleRepo struct{ s *memStore }

var _ repository.SaleRepository = (*memSaleRepo)(nil)

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *memSaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *memSaleRepo) ExistsBySaleNumber(saleNumber string) (bool, error) {
	for _, sale := range r.s.sales {
		if sale.SaleNumber == saleNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSaleRepo) MarkReversed(id string) error {
	sale, ok := r.s.sales[id]
	if !ok || sale.Status != entity.SaleStatusActive {
		return domain.ErrAlreadyReversed
	}
	sale.Status = entity.SaleStatusReversed
	return nil
}

func (r *memSaleRepo) ListByCashier(cashierID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.CashierID == cashierID {
			cp := *sale
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

type memReversalRepo struct{ s *memStore }

var _ repository.ReversalRepository = (*memReversalRepo)(nil)

func (r *memReversalRepo) Create(reversal *entity.Reversal) error {
	// El constraint único sobre sale_id es el árbitro final.
	if _, exists := r.s.reversals[reversal.SaleID]; exists {
		return domain.ErrAlreadyReversed
	}
	cp := *reversal
	r.s.reversals[reversal.SaleID] = &cp
	return nil
}

func (r *memReversalRepo) GetBySaleID(saleID string) (*entity.Reversal, error) {
	rev, ok := r.s.reversals[saleID]
	if !ok {
		return nil, nil
	}
	cp := *rev
	return &cp, nil
}

// memSalesTxRunner serializa cada callback completo con el mutex del store.
type memSalesTxRunner struct{ s *memStore }

var _ sales.SalesTxRunner = (*memSalesTxRunner)(nil)

func (t *memSalesTxRunner) RunSales(_ context.Context, fn func(
	repository.ItemRepository,
	repository.LedgerRepository,
	repository.SaleRepository,
	repository.ReversalRepository,
) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return fn(&memItemRepo{s: t.s}, &memLedgerRepo{s: t.s}, &memSaleRepo{s: t.s}, &memReversalRepo{s: t.s})
}

func noRetry() inventory.RetryPolicy {
	return inventory.RetryPolicy{MaxAttempts: 1}
}
