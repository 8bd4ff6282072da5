package core

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func validInput(t *testing.T) ExpenseInput {
	t.Helper()
	return ExpenseInput{
		Name:            "Grocery Shopping",
		Amount:          dec(t, "10.00"),
		Category:        "Food",
		TransactionDate: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCheckInputValid(t *testing.T) {
	now := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	if fe := CheckInput(validInput(t), now); fe != nil {
		t.Fatalf("expected no field errors, got %v", fe)
	}
}

func TestCheckInputAccumulatesAllViolations(t *testing.T) {
	now := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	fe := CheckInput(ExpenseInput{}, now)
	for _, field := range []string{"name", "amount", "category", "transactionDate"} {
		if _, ok := fe[field]; !ok {
			t.Errorf("expected violation for %q, got %v", field, fe)
		}
	}
}

func TestCheckInputFields(t *testing.T) {
	now := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		mutate func(*ExpenseInput)
		field  string
		msg    string
	}{
		{"blank name", func(in *ExpenseInput) { in.Name = "   " }, "name", "Name is required"},
		{"long name", func(in *ExpenseInput) { in.Name = strings.Repeat("x", 256) }, "name", "Name must not exceed 255 characters"},
		{"zero amount", func(in *ExpenseInput) { in.Amount = decimal.Zero }, "amount", "Amount must be greater than zero"},
		{"negative amount", func(in *ExpenseInput) { in.Amount = dec(t, "-5") }, "amount", "Amount must be greater than zero"},
		{"sub-cent amount", func(in *ExpenseInput) { in.Amount = dec(t, "0.005") }, "amount", "Amount must be at least 0.01"},
		{"blank category", func(in *ExpenseInput) { in.Category = "" }, "category", "Category is required"},
		{"long category", func(in *ExpenseInput) { in.Category = strings.Repeat("c", 256) }, "category", "Category must not exceed 255 characters"},
		{"long description", func(in *ExpenseInput) { in.Description = strings.Repeat("d", 501) }, "description", "Description must not exceed 500 characters"},
		{"long tag", func(in *ExpenseInput) { in.Tag = strings.Repeat("t", 101) }, "tag", "Tag must not exceed 100 characters"},
		{"missing date", func(in *ExpenseInput) { in.TransactionDate = time.Time{} }, "transactionDate", "Transaction date is required"},
		{"future date", func(in *ExpenseInput) { in.TransactionDate = now.Add(time.Hour) }, "transactionDate", "Transaction date cannot be in the future"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput(t)
			tc.mutate(&in)
			fe := CheckInput(in, now)
			if got := fe[tc.field]; got != tc.msg {
				t.Fatalf("expected %q for %s, got %v", tc.msg, tc.field, fe)
			}
		})
	}
}

func TestCheckInputLimitsCountCharacters(t *testing.T) {
	now := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	// 200 two-byte characters: 400 bytes, but well within the 255-character
	// limit.
	in := validInput(t)
	in.Name = strings.Repeat("é", 200)
	if fe := CheckInput(in, now); fe["name"] != "" {
		t.Fatalf("200-character multibyte name should pass, got %v", fe)
	}

	in = validInput(t)
	in.Name = strings.Repeat("é", 256)
	if fe := CheckInput(in, now); fe["name"] != "Name must not exceed 255 characters" {
		t.Fatalf("256-character name should be rejected, got %v", fe)
	}

	in = validInput(t)
	in.Description = strings.Repeat("ü", 500)
	if fe := CheckInput(in, now); fe["description"] != "" {
		t.Fatalf("500-character multibyte description should pass, got %v", fe)
	}
}

func TestCheckInputSameInstantAllowed(t *testing.T) {
	now := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	in := validInput(t)
	in.TransactionDate = now
	if fe := CheckInput(in, now); fe["transactionDate"] != "" {
		t.Fatalf("same-instant transaction date should pass, got %v", fe)
	}
}

func TestValidateRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ExpenseInput)
		reason string
	}{
		{"ok", func(in *ExpenseInput) {}, ""},
		{"two decimals ok", func(in *ExpenseInput) { in.Amount = dec(t, "10.00") }, ""},
		{"whitespace name", func(in *ExpenseInput) { in.Name = "   " }, "Name cannot be empty or just whitespace"},
		{"whitespace category", func(in *ExpenseInput) { in.Category = "\t " }, "Category cannot be empty or just whitespace"},
		{"three decimals", func(in *ExpenseInput) { in.Amount = dec(t, "10.005") }, "Amount cannot have more than 2 decimal places"},
		{"trailing zero scale", func(in *ExpenseInput) { in.Amount = dec(t, "10.000") }, "Amount cannot have more than 2 decimal places"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput(t)
			tc.mutate(&in)
			err := ValidateRules(in)
			if tc.reason == "" {
				if err != nil {
					t.Fatalf("expected ok, got %v", err)
				}
				return
			}
			inv, ok := err.(InvalidInputError)
			if !ok {
				t.Fatalf("expected InvalidInputError, got %T (%v)", err, err)
			}
			if inv.Reason != tc.reason {
				t.Fatalf("expected %q, got %q", tc.reason, inv.Reason)
			}
		})
	}
}

func TestValidateRulesFirstFailureWins(t *testing.T) {
	in := validInput(t)
	in.Name = " "
	in.Category = " "
	in.Amount = dec(t, "1.005")
	err := ValidateRules(in)
	if err == nil || err.Error() != "Name cannot be empty or just whitespace" {
		t.Fatalf("expected the name rule to fail first, got %v", err)
	}
}
