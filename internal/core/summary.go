package core

// Summary holds the totals derived from a transaction list.
type Summary struct {
	Income  Money
	Expense Money
	Balance Money
}

// Summarize recomputes the totals from scratch on every call. The lists are
// personal-scale, so a full scan is cheaper than maintaining running totals.
func Summarize(txs []Transaction) Summary {
	var income, expense int64
	for _, tx := range txs {
		switch tx.Type {
		case Income:
			income += tx.Amount.Cents
		case Expense:
			expense += tx.Amount.Cents
		}
	}
	return Summary{
		Income:  Money{Cents: income},
		Expense: Money{Cents: expense},
		Balance: Money{Cents: income - expense},
	}
}
