// Package service orchestrates expense operations between the record store
// and the presentation adapters. It owns business-rule validation, audit
// timestamping, and the mapping from stored records to transfer views.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
)

// ExpenseService is stateless between calls; every operation re-verifies
// existence on its own rather than trusting an earlier lookup, so each call
// stays correct under concurrent external modification.
type ExpenseService struct {
	store Store
	now   func() time.Time
}

func New(store Store) *ExpenseService {
	return &ExpenseService{store: store, now: time.Now}
}

// timestamp returns the current instant at the resolution the stores keep.
func (s *ExpenseService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// List returns every expense in store order.
func (s *ExpenseService) List(ctx context.Context) ([]ExpenseView, error) {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return viewsOf(items), nil
}

// Get returns a single expense by id.
func (s *ExpenseService) Get(ctx context.Context, id int64) (ExpenseView, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return ExpenseView{}, fmt.Errorf("get expense: %w", err)
	}
	return viewOf(e), nil
}

// Create validates the business rules, stamps the audit timestamps, and
// persists a new record. EnteredDate and UpdatedAt are equal on creation and
// are never supplied by the caller.
func (s *ExpenseService) Create(ctx context.Context, in core.ExpenseInput) (ExpenseView, error) {
	if err := core.ValidateRules(in); err != nil {
		return ExpenseView{}, err
	}

	now := s.timestamp()
	var e core.Expense
	e.Apply(in)
	e.EnteredDate = now
	e.UpdatedAt = now

	id, err := s.store.Insert(ctx, e)
	if err != nil {
		return ExpenseView{}, fmt.Errorf("create expense: %w", err)
	}
	e.ID = id

	slog.InfoContext(ctx, "Expense created",
		"id", id, "name", e.Name, "category", e.Category, "amount", e.Amount.String())
	return viewOf(e), nil
}

// Update replaces all mutable fields of an existing expense. EnteredDate is
// preserved and UpdatedAt is refreshed. The existing record is fetched first
// so an absent id fails before validation runs.
func (s *ExpenseService) Update(ctx context.Context, id int64, in core.ExpenseInput) (ExpenseView, error) {
	e, err := s.store.GetByID(ctx, id)
	if err != nil {
		return ExpenseView{}, fmt.Errorf("update expense: %w", err)
	}
	if err := core.ValidateRules(in); err != nil {
		return ExpenseView{}, err
	}

	e.Apply(in)
	e.UpdatedAt = s.timestamp()

	if err := s.store.Update(ctx, e); err != nil {
		return ExpenseView{}, fmt.Errorf("update expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense updated", "id", id, "name", e.Name)
	return viewOf(e), nil
}

// Delete removes an expense. Deleting an absent id reports NotFoundError,
// never a silent success.
func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	exists, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if !exists {
		return core.NotFoundError{ID: id}
	}
	if err := s.store.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// Search matches the keyword case-insensitively against expense names. A
// blank keyword deliberately falls back to listing everything.
func (s *ExpenseService) Search(ctx context.Context, keyword string) ([]ExpenseView, error) {
	if strings.TrimSpace(keyword) == "" {
		return s.List(ctx)
	}
	items, err := s.store.SearchByName(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("search expenses: %w", err)
	}
	return viewsOf(items), nil
}

// ByCategory returns expenses whose category matches exactly.
func (s *ExpenseService) ByCategory(ctx context.Context, category string) ([]ExpenseView, error) {
	items, err := s.store.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("expenses by category: %w", err)
	}
	return viewsOf(items), nil
}

// ByDateRange returns expenses with a transaction date inside [start, end],
// inclusive at both endpoints.
func (s *ExpenseService) ByDateRange(ctx context.Context, start, end time.Time) ([]ExpenseView, error) {
	items, err := s.store.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("expenses by date range: %w", err)
	}
	return viewsOf(items), nil
}

// AboveAmount returns expenses whose amount is strictly greater than min.
func (s *ExpenseService) AboveAmount(ctx context.Context, min decimal.Decimal) ([]ExpenseView, error) {
	items, err := s.store.ListAboveAmount(ctx, min)
	if err != nil {
		return nil, fmt.Errorf("expenses above amount: %w", err)
	}
	return viewsOf(items), nil
}

// Summary groups all expenses by category and sums their amounts. The result
// is computed per call from the store's current contents.
func (s *ExpenseService) Summary(ctx context.Context) ([]SummaryView, error) {
	sums, err := s.store.SumByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("category summary: %w", err)
	}
	views := make([]SummaryView, len(sums))
	for i, cs := range sums {
		views[i] = SummaryView{Category: cs.Category, TotalAmount: cs.TotalAmount, Count: cs.Count}
	}
	return views, nil
}
