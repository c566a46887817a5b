package http

import (
	"log/slog"
	"net/http"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	// Landing shows a link to the dashboard for active sessions.
	active, err := s.auth.Active(r.Context(), sessionToken(r))
	if err != nil {
		slog.ErrorContext(r.Context(), "Session check failed", "error", err)
	}

	data := struct {
		LoggedIn bool
	}{LoggedIn: active}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleAuthPage(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}
	if err := s.templates.ExecuteTemplate(w, "auth.html", nil); err != nil {
		slog.ErrorContext(r.Context(), "Auth template execution failed", "error", err, "template", "auth.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	snap, err := s.snapshots.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Snapshot load failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	data := struct {
		Name         string
		Tasks        []taskView
		Transactions []transactionView
		Summary      summaryView
	}{
		Name:         snap.Name,
		Tasks:        taskViews(snap.Tasks),
		Transactions: transactionViews(snap.Transactions),
		Summary:      summaryViewOf(core.Summarize(snap.Transactions)),
	}

	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Dashboard template execution failed", "error", err, "template", "dashboard.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
