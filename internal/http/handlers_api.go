package http

import (
	"net/http"
	"strconv"

	"expensetracker/internal/core"
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

// handleAPIList serves GET /api/expenses with optional search and category
// filters. A search keyword takes priority over a category filter.
func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		views any
		err   error
	)
	switch {
	case q.Get("search") != "":
		views, err = s.svc.Search(r.Context(), q.Get("search"))
	case q.Get("category") != "":
		views, err = s.svc.ByCategory(r.Context(), q.Get("category"))
	default:
		views, err = s.svc.List(r.Context())
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAPIGet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "Expense id must be an integer")
		return
	}
	view, err := s.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAPICreate(w http.ResponseWriter, r *http.Request) {
	in, fe := parseExpenseInput(r)
	if fe != nil {
		writeError(w, r, fe)
		return
	}
	view, err := s.svc.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (s *Server) handleAPIUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "Expense id must be an integer")
		return
	}
	in, fe := parseExpenseInput(r)
	if fe != nil {
		writeError(w, r, fe)
		return
	}
	view, err := s.svc.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAPIDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		badRequest(w, "Expense id must be an integer")
		return
	}
	if err := s.svc.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAPIRange serves GET /api/expenses/range?startDate=...&endDate=...
// with both endpoints inclusive.
func (s *Server) handleAPIRange(w http.ResponseWriter, r *http.Request) {
	fe := core.FieldErrors{}
	start, err := parseTimestamp(r.URL.Query().Get("startDate"))
	if err != nil {
		fe.Add("startDate", "Start date must be a valid timestamp")
	}
	end, err := parseTimestamp(r.URL.Query().Get("endDate"))
	if err != nil {
		fe.Add("endDate", "End date must be a valid timestamp")
	}
	if len(fe) > 0 {
		writeError(w, r, fe)
		return
	}

	views, err := s.svc.ByDateRange(r.Context(), start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// handleAPIAbove serves GET /api/expenses/above?amount=... returning
// expenses strictly greater than the threshold.
func (s *Server) handleAPIAbove(w http.ResponseWriter, r *http.Request) {
	min, err := core.ParseAmount(r.URL.Query().Get("amount"))
	if err != nil {
		badRequest(w, "Amount must be a valid number")
		return
	}
	views, err := s.svc.AboveAmount(r.Context(), min)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleAPISummary(w http.ResponseWriter, r *http.Request) {
	sums, err := s.svc.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sums)
}
