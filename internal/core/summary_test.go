package core

import "testing"

func TestSummarize(t *testing.T) {
	cases := []struct {
		name    string
		txs     []Transaction
		income  int64
		expense int64
		balance int64
	}{
		{name: "empty ledger"},
		{
			name: "salary and rent",
			txs: []Transaction{
				{Description: "Salary", Amount: Money{Cents: 100000}, Type: Income},
				{Description: "Rent", Amount: Money{Cents: 40000}, Type: Expense},
			},
			income:  100000,
			expense: 40000,
			balance: 60000,
		},
		{
			name: "expenses exceed income",
			txs: []Transaction{
				{Amount: Money{Cents: 500}, Type: Income},
				{Amount: Money{Cents: 2000}, Type: Expense},
				{Amount: Money{Cents: 1000}, Type: Expense},
			},
			income:  500,
			expense: 3000,
			balance: -2500,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Summarize(tc.txs)
			if got.Income.Cents != tc.income || got.Expense.Cents != tc.expense || got.Balance.Cents != tc.balance {
				t.Fatalf("got income=%d expense=%d balance=%d", got.Income.Cents, got.Expense.Cents, got.Balance.Cents)
			}
			if got.Balance.Cents != got.Income.Cents-got.Expense.Cents {
				t.Fatal("balance must equal income minus expense")
			}
		})
	}
}
