// Package http wires the expense service to its two presentation surfaces:
// a JSON API under /api/expenses and a server-rendered HTML UI under
// /expenses. Both call only the service's public operations.
package http

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"expensetracker/internal/service"
	appweb "expensetracker/web"
)

type Server struct {
	http.Server
	svc       *service.ExpenseService
	templates *template.Template
	limiter   *rateLimiter
}

// NewServer configures routes and templates, returning a ready-to-run
// http.Server.
func NewServer(addr string, svc *service.ExpenseService) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server:  http.Server{Addr: addr},
		svc:     svc,
		limiter: newRateLimiter(defaultRequestsPerMinute),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	// JSON API
	mux.HandleFunc("GET /api/expenses", s.handleAPIList)
	mux.HandleFunc("POST /api/expenses", s.handleAPICreate)
	mux.HandleFunc("GET /api/expenses/summary", s.handleAPISummary)
	mux.HandleFunc("GET /api/expenses/range", s.handleAPIRange)
	mux.HandleFunc("GET /api/expenses/above", s.handleAPIAbove)
	mux.HandleFunc("GET /api/expenses/{id}", s.handleAPIGet)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleAPIUpdate)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleAPIDelete)

	// HTML UI
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /expenses", s.handleListPage)
	mux.HandleFunc("GET /expenses/new", s.handleNewForm)
	mux.HandleFunc("POST /expenses/new", s.handleCreateForm)
	mux.HandleFunc("GET /expenses/edit/{id}", s.handleEditForm)
	mux.HandleFunc("POST /expenses/edit/{id}", s.handleUpdateForm)
	mux.HandleFunc("POST /expenses/delete/{id}", s.handleDeleteForm)

	s.Handler = withRequestContext(s.limiter.middleware(mux))
	s.RegisterOnShutdown(s.limiter.Stop)
	return s
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/expenses", http.StatusSeeOther)
}
