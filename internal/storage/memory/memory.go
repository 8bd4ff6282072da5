// Package memory provides an in-process record store used by the "memory"
// data backend and as the service-level fake in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
)

// Store keeps expenses in insertion order. Ids are monotonically increasing
// and never reused, matching the SQLite backend's AUTOINCREMENT behavior.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Expense
}

func New() *Store {
	return &Store{nextID: 1}
}

func (s *Store) Insert(_ context.Context, e core.Expense) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextID
	s.nextID++
	s.items = append(s.items, e)
	return e.ID, nil
}

func (s *Store) GetByID(_ context.Context, id int64) (core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.ID == id {
			return e, nil
		}
	}
	return core.Expense{}, core.NotFoundError{ID: id}
}

func (s *Store) ListAll(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.items...), nil
}

func (s *Store) Update(_ context.Context, e core.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == e.ID {
			s.items[i] = e
			return nil
		}
	}
	return core.NotFoundError{ID: e.ID}
}

func (s *Store) ExistsByID(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.items {
		if e.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return core.NotFoundError{ID: id}
}

func (s *Store) ListByCategory(_ context.Context, category string) ([]core.Expense, error) {
	return s.filter(func(e core.Expense) bool {
		return e.Category == category
	}), nil
}

func (s *Store) SearchByName(_ context.Context, keyword string) ([]core.Expense, error) {
	needle := strings.ToLower(keyword)
	return s.filter(func(e core.Expense) bool {
		return strings.Contains(strings.ToLower(e.Name), needle)
	}), nil
}

func (s *Store) ListByDateRange(_ context.Context, start, end time.Time) ([]core.Expense, error) {
	return s.filter(func(e core.Expense) bool {
		return !e.TransactionDate.Before(start) && !e.TransactionDate.After(end)
	}), nil
}

func (s *Store) ListAboveAmount(_ context.Context, min decimal.Decimal) ([]core.Expense, error) {
	return s.filter(func(e core.Expense) bool {
		return e.Amount.GreaterThan(min)
	}), nil
}

func (s *Store) SumByCategory(_ context.Context) ([]core.CategorySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byCat := make(map[string]*core.CategorySummary)
	for _, e := range s.items {
		cs, ok := byCat[e.Category]
		if !ok {
			cs = &core.CategorySummary{Category: e.Category, TotalAmount: decimal.Zero}
			byCat[e.Category] = cs
		}
		cs.TotalAmount = cs.TotalAmount.Add(e.Amount)
		cs.Count++
	}
	out := make([]core.CategorySummary, 0, len(byCat))
	for _, cs := range byCat {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *Store) filter(keep func(core.Expense) bool) []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.items {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
