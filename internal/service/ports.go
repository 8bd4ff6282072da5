package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
)

// Store is the record-store capability the expense service depends on.
// Implementations must assign monotonically increasing ids on Insert and
// provide per-operation atomicity; cross-operation isolation is not assumed.
type Store interface {
	Insert(ctx context.Context, e core.Expense) (int64, error)
	GetByID(ctx context.Context, id int64) (core.Expense, error)
	ListAll(ctx context.Context) ([]core.Expense, error)
	Update(ctx context.Context, e core.Expense) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) error

	// ListByCategory matches the category exactly, case-sensitive.
	ListByCategory(ctx context.Context, category string) ([]core.Expense, error)
	// SearchByName matches a case-insensitive substring of the name.
	SearchByName(ctx context.Context, keyword string) ([]core.Expense, error)
	// ListByDateRange is inclusive at both endpoints.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]core.Expense, error)
	// ListAboveAmount matches amounts strictly greater than min.
	ListAboveAmount(ctx context.Context, min decimal.Decimal) ([]core.Expense, error)
	SumByCategory(ctx context.Context) ([]core.CategorySummary, error)
}
