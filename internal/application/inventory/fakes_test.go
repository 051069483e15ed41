package inventory_test

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/nangulu/pos-api/internal/application/inventory"
	"github.com/nangulu/pos-api/internal/domain"
	"github.com/nangulu/pos-api/internal/domain/entity"
	"github.com/nangulu/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// memStore respaldo en memoria de los fakes. El mutex lo toma el txRunner
// alrededor del callback completo, emulando la serialización que en producción
// da el SELECT ... FOR UPDATE sobre la fila del artículo.
type memStore struct {
	mu      sync.Mutex
	items   map[string]*entity.Item
	entries []*entity.LedgerEntry
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string]*entity.Item)}
}

func (s *memStore) addItem(item *entity.Item) {
	cp := *item
	s.items[item.ID] = &cp
}

// activeItem artículo activo listo para sembrar en el store.
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

func (s *memStore) addEntry(itemID, kgChange string) {
	s.entries = append(s.entries, &entity.LedgerEntry{
		ID:       "seed-" + itemID,
		ItemID:   itemID,
		KgChange: decimal.RequireFromString(kgChange),
	})
}

type memItemRepo struct{ s *memStore }

var _ repository.ItemRepository = (*memItemRepo)(nil)

func (r *memItemRepo) Create(item *entity.Item) error {
	for _, it := range r.s.items {
		if it.Name == item.Name {
			return domain.ErrDuplicate
		}
	}
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
	if offset > len(out) {
		offset = len(out)
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
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

// memTxRunner serializa cada callback completo con el mutex del store.
type memTxRunner struct{ s *memStore }

var _ inventory.TxRunner = (*memTxRunner)(nil)

func (t *memTxRunner) Run(_ context.Context, fn func(repository.ItemRepository, repository.LedgerRepository) error) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	return fn(&memItemRepo{s: t.s}, &memLedgerRepo{s: t.s})
}

// noRetry política sin reintentos: en los tests de casos de uso el retry no
// aporta nada (se prueba aparte en retry_test.go).
func noRetry() inventory.RetryPolicy {
	return inventory.RetryPolicy{MaxAttempts: 1}
}
