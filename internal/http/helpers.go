package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// writeErrorFragment sends an HTMX-friendly inline error.
func writeErrorFragment(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
}

// View models for the templates: everything pre-formatted as strings so the
// templates stay logic-free.
type (
	taskView struct {
		ID        string
		Text      string
		Completed bool
		Category  string
	}

	transactionView struct {
		Description string
		Amount      string
		Income      bool
		Date        string
	}

	summaryView struct {
		Income  string
		Expense string
		Balance string
	}
)

func taskViews(tasks []core.Task) []taskView {
	out := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskView{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Category:  string(t.Category),
		})
	}
	return out
}

func transactionViews(txs []core.Transaction) []transactionView {
	out := make([]transactionView, 0, len(txs))
	for _, tx := range txs {
		out = append(out, transactionView{
			Description: tx.Description,
			Amount:      tx.Amount.Format(),
			Income:      tx.Type == core.Income,
			Date:        tx.Date.Format("02/01/2006"),
		})
	}
	return out
}

func summaryViewOf(sum core.Summary) summaryView {
	return summaryView{
		Income:  sum.Income.Format(),
		Expense: sum.Expense.Format(),
		Balance: sum.Balance.Format(),
	}
}
