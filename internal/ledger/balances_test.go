package ledger

import (
	"math"
	"testing"

	"github.com/yuetlam/splitter/internal/models"
)

func trio() []models.Participant {
	return []models.Participant{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob"},
		{ID: "c", Name: "Charlie"},
	}
}

// dinner is the canonical fixture: Alice fronts 300 HKD split three ways,
// her own share pre-settled.
func dinner() models.Expense {
	return models.Expense{
		ID:           "e1",
		Description:  "Dinner",
		Amount:       300,
		Currency:     "HKD",
		ExchangeRate: 1,
		AmountInBase: 300,
		PayerID:      "a",
		Participants: []models.ExpenseParticipant{
			{UserID: "a", HasPaidBack: true},
			{UserID: "b"},
			{UserID: "c"},
		},
	}
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name         string
		participants []models.Participant
		expenses     []models.Expense
		validateFunc func(t *testing.T, balances map[string]Balance)
	}{
		{
			name:         "three-way split with self-settled payer",
			participants: trio(),
			expenses:     []models.Expense{dinner()},
			validateFunc: func(t *testing.T, balances map[string]Balance) {
				a := balances["a"]
				if math.Abs(a.Paid-300) > Epsilon {
					t.Errorf("Alice paid = %v, want 300", a.Paid)
				}
				if math.Abs(a.Share-100) > Epsilon {
					t.Errorf("Alice share = %v, want 100", a.Share)
				}
				if math.Abs(a.Net-200) > Epsilon {
					t.Errorf("Alice net = %v, want +200", a.Net)
				}
				for _, id := range []string{"b", "c"} {
					bal := balances[id]
					if math.Abs(bal.Net+100) > Epsilon {
						t.Errorf("%s net = %v, want -100", id, bal.Net)
					}
					if bal.IsClear {
						t.Errorf("%s should not be clear", id)
					}
				}
			},
		},
		{
			name:         "settled shares contribute to share but not net",
			participants: trio(),
			expenses: []models.Expense{
				{
					ID: "e1", AmountInBase: 90, PayerID: "a",
					Participants: []models.ExpenseParticipant{
						{UserID: "a", HasPaidBack: true},
						{UserID: "b", HasPaidBack: true},
						{UserID: "c"},
					},
				},
			},
			validateFunc: func(t *testing.T, balances map[string]Balance) {
				b := balances["b"]
				if math.Abs(b.Share-30) > Epsilon {
					t.Errorf("Bob share = %v, want 30", b.Share)
				}
				if !b.IsClear {
					t.Errorf("Bob net = %v, want clear", b.Net)
				}
				if math.Abs(balances["a"].Net-30) > Epsilon {
					t.Errorf("Alice net = %v, want +30", balances["a"].Net)
				}
			},
		},
		{
			name:         "removed member excluded, share recomputed over survivors",
			participants: trio()[:2], // Charlie removed
			expenses:     []models.Expense{dinner()},
			validateFunc: func(t *testing.T, balances map[string]Balance) {
				if _, ok := balances["c"]; ok {
					t.Error("removed member must not appear in result")
				}
				// Share is 300/2 over the two surviving entries.
				if math.Abs(balances["b"].Net+150) > Epsilon {
					t.Errorf("Bob net = %v, want -150", balances["b"].Net)
				}
				if math.Abs(balances["a"].Net-150) > Epsilon {
					t.Errorf("Alice net = %v, want +150", balances["a"].Net)
				}
			},
		},
		{
			name:         "expense with no participant entries contributes nothing",
			participants: trio(),
			expenses: []models.Expense{
				{ID: "e1", AmountInBase: 500, PayerID: "a"},
			},
			validateFunc: func(t *testing.T, balances map[string]Balance) {
				a := balances["a"]
				if a.Paid != 0 || a.Share != 0 || a.Net != 0 {
					t.Errorf("degenerate expense leaked into balances: %+v", a)
				}
			},
		},
		{
			name:         "all entries stale still credits payer's paid",
			participants: []models.Participant{{ID: "a", Name: "Alice"}},
			expenses: []models.Expense{
				{
					ID: "e1", AmountInBase: 120, PayerID: "a",
					Participants: []models.ExpenseParticipant{
						{UserID: "gone-1"}, {UserID: "gone-2"},
					},
				},
			},
			validateFunc: func(t *testing.T, balances map[string]Balance) {
				a := balances["a"]
				if math.Abs(a.Paid-120) > Epsilon {
					t.Errorf("Alice paid = %v, want 120", a.Paid)
				}
				if a.Net != 0 || a.Share != 0 {
					t.Errorf("stale entries must not affect share/net: %+v", a)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balances := ComputeBalances(tt.participants, tt.expenses)
			if len(balances) != len(tt.participants) {
				t.Fatalf("expected %d balances, got %d", len(tt.participants), len(balances))
			}
			tt.validateFunc(t, balances)
		})
	}
}

func TestComputeBalancesZeroSum(t *testing.T) {
	participants := trio()
	expenses := []models.Expense{
		dinner(),
		{
			ID: "e2", AmountInBase: 77.35, PayerID: "b",
			Participants: []models.ExpenseParticipant{
				{UserID: "b", HasPaidBack: true},
				{UserID: "c"},
			},
		},
		{
			ID: "e3", AmountInBase: 41.2, PayerID: "c",
			Participants: []models.ExpenseParticipant{
				{UserID: "a"}, {UserID: "b"}, {UserID: "c", HasPaidBack: true},
			},
		},
	}

	sumNet := func(expenses []models.Expense) float64 {
		var sum float64
		for _, bal := range ComputeBalances(participants, expenses) {
			sum += bal.Net
		}
		return sum
	}

	if sum := sumNet(expenses); math.Abs(sum) > Epsilon {
		t.Errorf("net balances sum to %v, want ~0", sum)
	}

	// Still zero-sum after an arbitrary settlement toggle.
	toggled := ToggleSettlement(expenses, "e2", "c")
	if sum := sumNet(toggled); math.Abs(sum) > Epsilon {
		t.Errorf("net balances after toggle sum to %v, want ~0", sum)
	}
}
