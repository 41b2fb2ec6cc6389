package ledger

import (
	"math"
	"testing"

	"github.com/yuetlam/splitter/internal/models"
)

func TestToBase(t *testing.T) {
	if got := ToBase(1000, 0.052); math.Abs(got-52) > Epsilon {
		t.Errorf("ToBase(1000, 0.052) = %v, want 52", got)
	}
}

func TestTableDisplay(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name         string
		amountInBase float64
		code         string
		want         float64
	}{
		{name: "base currency is identity", amountInBase: 52, code: "HKD", want: 52},
		{name: "display divides by current rate", amountInBase: 52, code: "JPY", want: 1000},
		{name: "unknown code falls back to base", amountInBase: 52, code: "XXX", want: 52},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Display(tt.amountInBase, tt.code); math.Abs(got-tt.want) > Epsilon {
				t.Errorf("Display(%v, %s) = %v, want %v", tt.amountInBase, tt.code, got, tt.want)
			}
		})
	}
}

// TestRateChangeDoesNotRewriteHistory pins the snapshot rule: an expense
// normalized at entry time keeps its AmountInBase even after the table's
// rate for that currency moves.
func TestRateChangeDoesNotRewriteHistory(t *testing.T) {
	table := Table{"JPY": 0.052}

	rate, ok := table.Rate("JPY")
	if !ok {
		t.Fatal("JPY rate missing")
	}
	exp := models.Expense{
		ID:           "e1",
		Amount:       1000,
		Currency:     "JPY",
		ExchangeRate: rate,
		AmountInBase: ToBase(1000, rate),
		PayerID:      "a",
		Participants: []models.ExpenseParticipant{{UserID: "a", HasPaidBack: true}, {UserID: "b"}},
	}

	table["JPY"] = 0.06

	if math.Abs(exp.AmountInBase-52) > Epsilon {
		t.Errorf("AmountInBase = %v after rate change, want 52", exp.AmountInBase)
	}

	participants := []models.Participant{{ID: "a"}, {ID: "b"}}
	balances := ComputeBalances(participants, []models.Expense{exp})
	if math.Abs(balances["b"].Net+26) > Epsilon {
		t.Errorf("Bob net = %v, want -26 from the frozen snapshot", balances["b"].Net)
	}

	// Display conversion, by contrast, must use the current table.
	if got := table.Display(52, "JPY"); math.Abs(got-866.67) > Epsilon {
		t.Errorf("Display(52, JPY) = %v, want 52/0.06", got)
	}
}
