package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"expensetracker/internal/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleExpense(t *testing.T, name, amount, category string, tx time.Time) core.Expense {
	t.Helper()
	a, err := core.ParseAmount(amount)
	if err != nil {
		t.Fatalf("parse amount: %v", err)
	}
	now := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	return core.Expense{
		Name:            name,
		Amount:          a,
		Category:        category,
		TransactionDate: tx,
		EnteredDate:     now,
		UpdatedAt:       now,
	}
}

func TestInsertAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tx := time.Date(2025, 8, 1, 14, 30, 0, 0, time.UTC)
	e := sampleExpense(t, "Fuel", "54.20", "Transport", tx)
	e.Description = "full tank"
	e.Tag = "car"

	id, err := store.Insert(ctx, e)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero id")
	}

	got, err := store.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != e.Name || got.Category != e.Category || got.Description != e.Description || got.Tag != e.Tag {
		t.Fatalf("mismatch: %+v", got)
	}
	if !got.Amount.Equal(e.Amount) {
		t.Fatalf("amount mismatch: %s", got.Amount)
	}
	if !got.TransactionDate.Equal(tx) {
		t.Fatalf("transaction date mismatch: %v", got.TransactionDate)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	store := newTestStore(t)
	var nf core.NotFoundError
	if _, err := store.GetByID(context.Background(), 42); !errors.As(err, &nf) || nf.ID != 42 {
		t.Fatalf("expected NotFoundError for id 42, got %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	tx := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	id, err := store.Insert(ctx, sampleExpense(t, "Lunch", "12.00", "Food", tx))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	updated := sampleExpense(t, "Dinner", "30.00", "Restaurants", tx)
	updated.ID = id
	updated.UpdatedAt = updated.UpdatedAt.Add(time.Minute)
	if err := store.Update(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := store.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Dinner" || !got.Amount.Equal(updated.Amount) {
		t.Fatalf("update not applied: %+v", got)
	}

	exists, err := store.ExistsByID(ctx, id)
	if err != nil || !exists {
		t.Fatalf("exists: %v %v", exists, err)
	}
	if err := store.DeleteByID(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	exists, err = store.ExistsByID(ctx, id)
	if err != nil || exists {
		t.Fatalf("expected gone after delete, exists=%v err=%v", exists, err)
	}

	var nf core.NotFoundError
	if err := store.DeleteByID(ctx, id); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError on second delete, got %v", err)
	}
	if err := store.Update(ctx, updated); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError updating deleted row, got %v", err)
	}
}

func TestQueries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	day := func(d int) time.Time { return time.Date(2025, 8, d, 12, 0, 0, 0, time.UTC) }
	seed := []core.Expense{
		sampleExpense(t, "Coffee beans", "10.00", "Food", day(1)),
		sampleExpense(t, "More COFFEE", "5.50", "Food", day(5)),
		sampleExpense(t, "Bus ticket", "20.00", "Transport", day(10)),
	}
	for _, e := range seed {
		if _, err := store.Insert(ctx, e); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	byCat, err := store.ListByCategory(ctx, "Food")
	if err != nil || len(byCat) != 2 {
		t.Fatalf("by category: %d %v", len(byCat), err)
	}

	found, err := store.SearchByName(ctx, "coffee")
	if err != nil || len(found) != 2 {
		t.Fatalf("search: %d %v", len(found), err)
	}
	found, err = store.SearchByName(ctx, "100%")
	if err != nil || len(found) != 0 {
		t.Fatalf("search with literal %%: %d %v", len(found), err)
	}

	inRange, err := store.ListByDateRange(ctx, day(1), day(5))
	if err != nil || len(inRange) != 2 {
		t.Fatalf("range: %d %v", len(inRange), err)
	}

	min, _ := core.ParseAmount("10.00")
	above, err := store.ListAboveAmount(ctx, min)
	if err != nil || len(above) != 1 || above[0].Name != "Bus ticket" {
		t.Fatalf("above: %+v %v", above, err)
	}

	sums, err := store.SumByCategory(ctx)
	if err != nil || len(sums) != 2 {
		t.Fatalf("sums: %+v %v", sums, err)
	}
	want, _ := core.ParseAmount("15.50")
	if sums[0].Category != "Food" || !sums[0].TotalAmount.Equal(want) || sums[0].Count != 2 {
		t.Fatalf("food sum wrong: %+v", sums[0])
	}

	all, err := store.ListAll(ctx)
	if err != nil || len(all) != 3 {
		t.Fatalf("list all: %d %v", len(all), err)
	}
	for i := 1; i < len(all); i++ {
		if all[i].ID <= all[i-1].ID {
			t.Fatalf("ids not increasing: %+v", all)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "expenses.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	store.Close()

	store, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	store.Close()
}
