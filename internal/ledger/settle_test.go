package ledger

import (
	"math"
	"testing"

	"github.com/yuetlam/splitter/internal/models"
)

func TestSuggestDebts(t *testing.T) {
	tests := []struct {
		name         string
		participants []models.Participant
		expenses     []models.Expense
		validateFunc func(t *testing.T, debts []models.Debt)
	}{
		{
			name:         "single payer, two debtors",
			participants: trio(),
			expenses:     []models.Expense{dinner()},
			validateFunc: func(t *testing.T, debts []models.Debt) {
				if len(debts) != 2 {
					t.Fatalf("expected 2 debts, got %d: %+v", len(debts), debts)
				}
				fromTotals := map[string]float64{}
				for _, d := range debts {
					if d.To != "a" {
						t.Errorf("debt to %s, want a", d.To)
					}
					fromTotals[d.From] += d.Amount
				}
				for _, id := range []string{"b", "c"} {
					if math.Abs(fromTotals[id]-100) > Epsilon {
						t.Errorf("%s owes %v in total, want 100", id, fromTotals[id])
					}
				}
			},
		},
		{
			name:         "everyone clear yields no debts",
			participants: trio(),
			expenses: []models.Expense{
				{
					ID: "e1", AmountInBase: 90, PayerID: "a",
					Participants: []models.ExpenseParticipant{
						{UserID: "a", HasPaidBack: true},
						{UserID: "b", HasPaidBack: true},
						{UserID: "c", HasPaidBack: true},
					},
				},
			},
			validateFunc: func(t *testing.T, debts []models.Debt) {
				if len(debts) != 0 {
					t.Errorf("expected no debts, got %+v", debts)
				}
			},
		},
		{
			name:         "largest debtor pairs with largest creditor first",
			participants: []models.Participant{
				{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"},
			},
			expenses: []models.Expense{
				// a fronts 300 for a+c+d, b fronts 60 for b+d.
				{
					ID: "e1", AmountInBase: 300, PayerID: "a",
					Participants: []models.ExpenseParticipant{
						{UserID: "a", HasPaidBack: true},
						{UserID: "c"}, {UserID: "d"},
					},
				},
				{
					ID: "e2", AmountInBase: 60, PayerID: "b",
					Participants: []models.ExpenseParticipant{
						{UserID: "b", HasPaidBack: true},
						{UserID: "d"},
					},
				},
			},
			validateFunc: func(t *testing.T, debts []models.Debt) {
				// Nets: a +200, b +30, c -100, d -130.
				// d is the biggest debtor so it must be matched first,
				// against a, the biggest creditor.
				if len(debts) == 0 {
					t.Fatal("expected debts")
				}
				first := debts[0]
				if first.From != "d" || first.To != "a" {
					t.Errorf("first match = %s->%s, want d->a", first.From, first.To)
				}
				if math.Abs(first.Amount-130) > Epsilon {
					t.Errorf("first amount = %v, want 130", first.Amount)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validateFunc(t, SuggestDebts(tt.participants, tt.expenses))
		})
	}
}

// TestSuggestDebtsCompleteness checks that applying every suggested debt as
// a synthetic settled expense drives all net balances inside the epsilon
// band.
func TestSuggestDebtsCompleteness(t *testing.T) {
	participants := []models.Participant{
		{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"},
	}
	expenses := []models.Expense{
		{
			ID: "e1", AmountInBase: 523.4, PayerID: "a",
			Participants: []models.ExpenseParticipant{
				{UserID: "a", HasPaidBack: true}, {UserID: "b"},
				{UserID: "c"}, {UserID: "d"}, {UserID: "e"},
			},
		},
		{
			ID: "e2", AmountInBase: 118.8, PayerID: "c",
			Participants: []models.ExpenseParticipant{
				{UserID: "b"}, {UserID: "c", HasPaidBack: true}, {UserID: "e"},
			},
		},
		{
			ID: "e3", AmountInBase: 42, PayerID: "e",
			Participants: []models.ExpenseParticipant{
				{UserID: "a"}, {UserID: "e", HasPaidBack: true},
			},
		},
	}

	debts := SuggestDebts(participants, expenses)
	if len(debts) == 0 {
		t.Fatal("expected debts for unbalanced trip")
	}

	// Replay each suggested payment as a one-on-one repayment expense: the
	// debtor fronts the amount and the creditor's share is pre-settled.
	applied := append([]models.Expense(nil), expenses...)
	for i, d := range debts {
		applied = append(applied, models.Expense{
			ID: "repay-" + d.From + "-" + d.To + string(rune('0'+i)),
			AmountInBase: d.Amount,
			PayerID:      d.From,
			Participants: []models.ExpenseParticipant{
				{UserID: d.To},
			},
		})
	}

	for id, bal := range ComputeBalances(participants, applied) {
		if !bal.IsClear {
			t.Errorf("%s net = %v after applying all debts, want clear", id, bal.Net)
		}
	}
}

func TestSuggestDebtsDeterministic(t *testing.T) {
	participants := trio()
	expenses := []models.Expense{dinner()}

	first := SuggestDebts(participants, expenses)
	for i := 0; i < 10; i++ {
		again := SuggestDebts(participants, expenses)
		if len(again) != len(first) {
			t.Fatalf("run %d: %d debts, first run had %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d debt %d = %+v, first run had %+v", i, j, again[j], first[j])
			}
		}
	}
}
