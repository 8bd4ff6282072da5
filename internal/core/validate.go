package core

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Field length limits enforced at the transport boundary, counted in
// characters, not bytes.
const (
	MaxNameLen        = 255
	MaxCategoryLen    = 255
	MaxDescriptionLen = 500
	MaxTagLen         = 100
)

// minAmount is the smallest accepted expense amount.
var minAmount = decimal.New(1, -2) // 0.01

// CheckInput performs transport-level validation of an expense payload and
// accumulates every violation, keyed by field name. The future-date check
// uses now as the wall clock at call time; races between validation and
// persistence are not guarded against.
func CheckInput(in ExpenseInput, now time.Time) FieldErrors {
	fe := FieldErrors{}

	if strings.TrimSpace(in.Name) == "" {
		fe.Add("name", "Name is required")
	} else if utf8.RuneCountInString(in.Name) > MaxNameLen {
		fe.Add("name", "Name must not exceed 255 characters")
	}

	if !in.Amount.IsPositive() {
		fe.Add("amount", "Amount must be greater than zero")
	} else if in.Amount.LessThan(minAmount) {
		fe.Add("amount", "Amount must be at least 0.01")
	}

	if strings.TrimSpace(in.Category) == "" {
		fe.Add("category", "Category is required")
	} else if utf8.RuneCountInString(in.Category) > MaxCategoryLen {
		fe.Add("category", "Category must not exceed 255 characters")
	}

	if utf8.RuneCountInString(in.Description) > MaxDescriptionLen {
		fe.Add("description", "Description must not exceed 500 characters")
	}

	if utf8.RuneCountInString(in.Tag) > MaxTagLen {
		fe.Add("tag", "Tag must not exceed 100 characters")
	}

	if in.TransactionDate.IsZero() {
		fe.Add("transactionDate", "Transaction date is required")
	} else if in.TransactionDate.After(now) {
		fe.Add("transactionDate", "Transaction date cannot be in the future")
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ValidateRules applies the business rules that sit behind the transport
// checks. Rules run in order and the first failure wins. The whitespace
// rules overlap with CheckInput's blank checks; both layers are kept so a
// caller reaching the service directly gets the same protection.
func ValidateRules(in ExpenseInput) error {
	if in.Name != "" && strings.TrimSpace(in.Name) == "" {
		return InvalidInputError{Reason: "Name cannot be empty or just whitespace"}
	}
	if in.Category != "" && strings.TrimSpace(in.Category) == "" {
		return InvalidInputError{Reason: "Category cannot be empty or just whitespace"}
	}
	// Exponent is negative scale: 10.005 has exponent -3.
	if in.Amount.Exponent() < -2 {
		return InvalidInputError{Reason: "Amount cannot have more than 2 decimal places"}
	}
	return nil
}
