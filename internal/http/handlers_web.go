package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"expensetracker/internal/core"
	"expensetracker/internal/service"
)

// formDateLayout is what datetime-local inputs submit and expect back.
const formDateLayout = "2006-01-02T15:04"

type expenseRow struct {
	ID              int64
	Name            string
	Amount          string
	Category        string
	Tag             string
	TransactionDate string
}

type listPage struct {
	Expenses  []expenseRow
	Search    string
	Category  string
	FlashKind string
	FlashMsg  string
}

type formValues struct {
	Name            string
	Amount          string
	Category        string
	Description     string
	Tag             string
	TransactionDate string
}

type formPage struct {
	IsEdit    bool
	ID        int64
	Values    formValues
	Errors    core.FieldErrors
	FlashKind string
	FlashMsg  string
}

func rowOf(v service.ExpenseView) expenseRow {
	return expenseRow{
		ID:              v.ID,
		Name:            v.Name,
		Amount:          v.Amount.StringFixed(2),
		Category:        v.Category,
		Tag:             v.Tag,
		TransactionDate: v.TransactionDate.Format("2006-01-02 15:04"),
	}
}

func valuesOf(v service.ExpenseView) formValues {
	return formValues{
		Name:            v.Name,
		Amount:          v.Amount.StringFixed(2),
		Category:        v.Category,
		Description:     v.Description,
		Tag:             v.Tag,
		TransactionDate: v.TransactionDate.Format(formDateLayout),
	}
}

// submittedValues echoes the raw form fields back into the redisplayed form.
func submittedValues(r *http.Request) formValues {
	return formValues{
		Name:            r.PostFormValue("name"),
		Amount:          r.PostFormValue("amount"),
		Category:        r.PostFormValue("category"),
		Description:     r.PostFormValue("description"),
		Tag:             r.PostFormValue("tag"),
		TransactionDate: r.PostFormValue("transactionDate"),
	}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "template", name)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution failed", "error", err, "template", name)
	}
}

func (s *Server) handleListPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	search := q.Get("search")
	category := q.Get("category")

	var (
		views []service.ExpenseView
		err   error
	)
	switch {
	case search != "":
		views, err = s.svc.Search(r.Context(), search)
	case category != "":
		views, err = s.svc.ByCategory(r.Context(), category)
	default:
		views, err = s.svc.List(r.Context())
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "List page error", "error", err)
		http.Error(w, "could not load expenses", http.StatusInternalServerError)
		return
	}

	page := listPage{Search: search, Category: category}
	page.FlashKind, page.FlashMsg = readFlash(w, r)
	for _, v := range views {
		page.Expenses = append(page.Expenses, rowOf(v))
	}
	s.render(w, r, http.StatusOK, "list.html", page)
}

func (s *Server) handleNewForm(w http.ResponseWriter, r *http.Request) {
	// Prefill in UTC: zoneless submitted values are parsed as UTC, so the
	// default must come from the same clock.
	page := formPage{
		Values: formValues{TransactionDate: time.Now().UTC().Format(formDateLayout)},
	}
	page.FlashKind, page.FlashMsg = readFlash(w, r)
	s.render(w, r, http.StatusOK, "form.html", page)
}

func (s *Server) handleCreateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in, fe := parseFormInput(r)
	if fe != nil {
		s.render(w, r, http.StatusUnprocessableEntity, "form.html", formPage{
			Values: submittedValues(r),
			Errors: fe,
		})
		return
	}

	if _, err := s.svc.Create(r.Context(), in); err != nil {
		setFlash(w, "error", "Error creating expense: "+userMessage(err))
		http.Redirect(w, r, "/expenses/new", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Expense created successfully!")
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func (s *Server) handleEditForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	view, err := s.svc.Get(r.Context(), id)
	if err != nil {
		setFlash(w, "error", userMessage(err))
		http.Redirect(w, r, "/expenses", http.StatusSeeOther)
		return
	}
	s.render(w, r, http.StatusOK, "form.html", formPage{
		IsEdit: true,
		ID:     id,
		Values: valuesOf(view),
	})
}

func (s *Server) handleUpdateForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	in, fe := parseFormInput(r)
	if fe != nil {
		s.render(w, r, http.StatusUnprocessableEntity, "form.html", formPage{
			IsEdit: true,
			ID:     id,
			Values: submittedValues(r),
			Errors: fe,
		})
		return
	}

	if _, err := s.svc.Update(r.Context(), id, in); err != nil {
		setFlash(w, "error", "Error updating expense: "+userMessage(err))
		http.Redirect(w, r, "/expenses", http.StatusSeeOther)
		return
	}
	setFlash(w, "success", "Expense updated successfully!")
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

func (s *Server) handleDeleteForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := s.svc.Delete(r.Context(), id); err != nil {
		setFlash(w, "error", "Error deleting expense: "+userMessage(err))
	} else {
		setFlash(w, "success", "Expense deleted successfully!")
	}
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}

// parseFormInput binds a parsed HTML form through the same pipeline as the
// API body parser.
func parseFormInput(r *http.Request) (core.ExpenseInput, core.FieldErrors) {
	return bindExpenseInput(func(key string) string {
		return strings.TrimSpace(sanitizeInput(r.PostFormValue(key)))
	})
}

// userMessage keeps unexpected failures generic on the UI while letting the
// taxonomy's client-visible messages through.
func userMessage(err error) string {
	var nf core.NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	var inv core.InvalidInputError
	if errors.As(err, &inv) {
		return inv.Error()
	}
	return "an unexpected error occurred"
}

const flashCookie = "flash"

func setFlash(w http.ResponseWriter, kind, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + msg),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// readFlash consumes the flash cookie, clearing it so the message shows
// exactly once.
func readFlash(w http.ResponseWriter, r *http.Request) (kind, msg string) {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return "", ""
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true})

	decoded, err := url.QueryUnescape(c.Value)
	if err != nil {
		return "", ""
	}
	kind, msg, ok := strings.Cut(decoded, "|")
	if !ok {
		return "", ""
	}
	return kind, msg
}
