package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeErrorFragment(w, http.StatusBadRequest, "Formato de requisição inválido")
		return
	}

	desc := sanitizeInput(r.Form.Get("description"))
	amountStr := strings.TrimSpace(r.Form.Get("amount"))
	txType := core.TxType(strings.TrimSpace(r.Form.Get("type")))

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		writeErrorFragment(w, http.StatusUnprocessableEntity, "Valor inválido")
		return
	}

	tx, err := s.snapshots.AddTransaction(r.Context(), desc, core.Money{Cents: cents}, txType)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrEmptyDescription):
			// Empty description is a silent no-op; re-render the list.
			s.renderTransactions(w, r)
			return
		case errors.Is(err, core.ErrInvalidTxType), errors.Is(err, core.ErrInvalidAmount):
			writeErrorFragment(w, http.StatusUnprocessableEntity, "Dados não válidos: "+err.Error())
			return
		default:
			slog.ErrorContext(r.Context(), "Transaction create failed", "error", err)
			writeErrorFragment(w, http.StatusInternalServerError, "Erro ao salvar transação")
			return
		}
	}

	slog.InfoContext(r.Context(), "Transaction recorded",
		"id", tx.ID,
		"type", tx.Type,
		"amount_cents", tx.Amount.Cents)
	w.Header().Set("HX-Trigger", `{"transaction:created": {}}`)
	s.renderTransactions(w, r)
}

func (s *Server) handleTransactionsPartial(w http.ResponseWriter, r *http.Request) {
	s.renderTransactions(w, r)
}

func (s *Server) renderTransactions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	snap, err := s.snapshots.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Snapshot load failed", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao carregar transações")
		return
	}

	data := struct {
		Transactions []transactionView
	}{Transactions: transactionViews(snap.Transactions)}

	if err := s.templates.ExecuteTemplate(w, "transactions.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Transactions template execution failed", "error", err, "template", "transactions.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleSummaryPartial renders the finance totals, recomputed on every call.
func (s *Server) handleSummaryPartial(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	sum, err := s.snapshots.Summary(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary failed", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao calcular resumo")
		return
	}

	data := struct {
		Summary summaryView
	}{Summary: summaryViewOf(sum)}

	if err := s.templates.ExecuteTemplate(w, "summary.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Summary template execution failed", "error", err, "template", "summary.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleInsight asks the advisory service for a short motivational text.
// Failures never surface; the advisor falls back internally.
func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	snap, err := s.snapshots.Snapshot(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Snapshot load failed", "error", err)
		writeErrorFragment(w, http.StatusInternalServerError, "Erro ao carregar dados")
		return
	}

	text := s.advisor.Advise(r.Context(), snap)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(`<div class="insight">` + template.HTMLEscapeString(text) + `</div>`))
}
