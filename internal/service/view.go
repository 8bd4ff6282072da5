package service

import (
	"time"

	"github.com/shopspring/decimal"

	"expensetracker/internal/core"
)

// ExpenseView is the external projection of a stored expense. Field names
// map 1:1 onto the persisted record; there is no renaming or versioning.
type ExpenseView struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description,omitempty"`
	Tag             string          `json:"tag,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	EnteredDate     time.Time       `json:"enteredDate"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// SummaryView is one row of the category aggregation.
type SummaryView struct {
	Category    string          `json:"category"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int64           `json:"count"`
}

func viewOf(e core.Expense) ExpenseView {
	return ExpenseView{
		ID:              e.ID,
		Name:            e.Name,
		Amount:          e.Amount,
		Category:        e.Category,
		Description:     e.Description,
		Tag:             e.Tag,
		TransactionDate: e.TransactionDate,
		EnteredDate:     e.EnteredDate,
		UpdatedAt:       e.UpdatedAt,
	}
}

func viewsOf(items []core.Expense) []ExpenseView {
	views := make([]ExpenseView, len(items))
	for i, e := range items {
		views[i] = viewOf(e)
	}
	return views
}
