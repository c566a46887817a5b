// Package insight produces the short motivational advisory shown on the
// dashboard. The external service is best-effort: a single attempt, and any
// failure collapses into a fixed fallback string.
package insight

import (
	"context"
	"fmt"
	"strings"

	"github.com/LorenzoOliveira534/youpagev1/internal/core"
)

// Fallback is returned whenever the external service cannot be reached or
// answers with nothing usable. Callers never see a raw failure.
const Fallback = "Continue firme! Organize suas tarefas e cuide das suas finanças — pequenos passos todos os dias fazem a diferença."

// Advisor is the inbound port for the insight requester.
type Advisor interface {
	// Advise never returns an error and never mutates stored state.
	Advise(ctx context.Context, snap core.Snapshot) string
}

// BuildPrompt embeds the full task and transaction lists into the Portuguese
// prompt sent to the text-generation service.
func BuildPrompt(snap core.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Você é um assistente de produtividade e finanças pessoais. "+
		"O usuário se chama %s.\n\nTarefas:\n", snap.Name)
	if len(snap.Tasks) == 0 {
		b.WriteString("- (nenhuma tarefa)\n")
	}
	for _, t := range snap.Tasks {
		status := "pendente"
		if t.Completed {
			status = "concluída"
		}
		fmt.Fprintf(&b, "- %s (%s, %s)\n", t.Text, t.Category, status)
	}

	b.WriteString("\nTransações:\n")
	if len(snap.Transactions) == 0 {
		b.WriteString("- (nenhuma transação)\n")
	}
	for _, tx := range snap.Transactions {
		kind := "receita"
		if tx.Type == core.Expense {
			kind = "despesa"
		}
		fmt.Fprintf(&b, "- %s: %s (%s, %s)\n",
			tx.Date.Format("02/01/2006"), tx.Description, tx.Amount.Format(), kind)
	}

	sum := core.Summarize(snap.Transactions)
	fmt.Fprintf(&b, "\nResumo: receitas %s, despesas %s, saldo %s.\n",
		sum.Income.Format(), sum.Expense.Format(), sum.Balance.Format())
	b.WriteString("\nEscreva no máximo três frases curtas, em português, com uma dica " +
		"motivacional e prática baseada nesses dados. Responda apenas com o texto.")
	return b.String()
}
