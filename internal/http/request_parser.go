// This file implements parsing of expense payloads. The same parser serves
// the JSON API and the HTML form handlers, so transport validation behaves
// identically on both surfaces.

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"expensetracker/internal/core"
)

// timestampLayouts are accepted for transactionDate and the range query
// parameters, in order of preference. The second form matches ISO local
// datetimes without a zone; the third is what datetime-local inputs submit.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// requestBodyParser reads the body once and exposes string field access over
// either a JSON object or form-encoded data.
type requestBodyParser struct {
	body     []byte
	jsonData map[string]any
	formData url.Values
}

func newRequestBodyParser(r *http.Request) (*requestBodyParser, error) {
	p := &requestBodyParser{}
	var err error
	p.body, err = io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}

	if len(p.body) == 0 {
		p.formData = url.Values{}
		return p, nil
	}

	if p.body[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(p.body))
		// Numbers stay json.Number so amounts keep their exact scale.
		dec.UseNumber()
		p.jsonData = make(map[string]any)
		if err := dec.Decode(&p.jsonData); err != nil {
			return nil, fmt.Errorf("decode json body: %w", err)
		}
		return p, nil
	}

	p.formData, err = url.ParseQuery(string(p.body))
	if err != nil {
		return nil, fmt.Errorf("parse form body: %w", err)
	}
	return p, nil
}

// get returns the sanitized string value for key from whichever shape the
// body carried.
func (p *requestBodyParser) get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return strings.TrimSpace(sanitizeInput(stringValue(val)))
		}
		return ""
	}
	return strings.TrimSpace(sanitizeInput(p.formData.Get(key)))
}

func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// parseExpenseInput binds and transport-validates an expense payload.
// Every field violation is accumulated; a nil FieldErrors means the input is
// ready for the service.
func parseExpenseInput(r *http.Request) (core.ExpenseInput, core.FieldErrors) {
	p, err := newRequestBodyParser(r)
	if err != nil {
		fe := core.FieldErrors{}
		fe.Add("body", "Request body must be a JSON object or form data")
		return core.ExpenseInput{}, fe
	}
	return bindExpenseInput(p.get)
}

// bindExpenseInput builds a validated ExpenseInput from a field accessor.
// The JSON API and the HTML form handlers both bind through here, so
// transport validation behaves identically on both surfaces.
func bindExpenseInput(get func(string) string) (core.ExpenseInput, core.FieldErrors) {
	fe := core.FieldErrors{}
	in := core.ExpenseInput{
		Name:        get("name"),
		Category:    get("category"),
		Description: get("description"),
		Tag:         get("tag"),
	}

	if raw := get("amount"); raw != "" {
		d, err := core.ParseAmount(raw)
		if err != nil {
			fe.Add("amount", "Amount must be a valid number")
		} else {
			in.Amount = d
		}
	} else {
		fe.Add("amount", "Amount is required")
	}

	if raw := get("transactionDate"); raw != "" {
		ts, err := parseTimestamp(raw)
		if err != nil {
			fe.Add("transactionDate", "Transaction date must be a valid timestamp")
		} else {
			in.TransactionDate = ts
		}
	} else {
		fe.Add("transactionDate", "Transaction date is required")
	}

	for field, msg := range core.CheckInput(in, time.Now()) {
		fe.Add(field, msg)
	}

	if len(fe) == 0 {
		return in, nil
	}
	return in, fe
}

// sanitizeInput removes control characters except tab, newline, and carriage
// return, and trims surrounding whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
