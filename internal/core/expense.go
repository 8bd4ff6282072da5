package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Expense is a persisted expense record. ID is assigned by the store on
	// insert and is zero only for records that have never been persisted.
	// All timestamps are UTC.
	Expense struct {
		ID              int64
		Name            string
		Amount          decimal.Decimal
		Category        string
		Description     string
		Tag             string
		TransactionDate time.Time
		EnteredDate     time.Time
		UpdatedAt       time.Time
	}

	// ExpenseInput is the transfer shape for create and update. Updates
	// replace every mutable field wholesale; there are no partial updates.
	ExpenseInput struct {
		Name            string
		Amount          decimal.Decimal
		Category        string
		Description     string
		Tag             string
		TransactionDate time.Time
	}

	// CategorySummary is the grouped-sum aggregation result for one
	// category. Computed on demand, never stored.
	CategorySummary struct {
		Category    string
		TotalAmount decimal.Decimal
		Count       int64
	}
)

// Apply copies every caller-supplied field of in onto e. Identity and audit
// timestamps are left untouched.
func (e *Expense) Apply(in ExpenseInput) {
	e.Name = in.Name
	e.Amount = in.Amount
	e.Category = in.Category
	e.Description = in.Description
	e.Tag = in.Tag
	e.TransactionDate = in.TransactionDate.UTC()
}
