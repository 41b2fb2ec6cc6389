package ledger

import (
	"math"

	"github.com/yuetlam/splitter/internal/models"
)

// Balance is the aggregate position of one trip member.
type Balance struct {
	// Paid is the total base-currency amount fronted across all expenses
	// where this member is the payer.
	Paid float64

	// Share is the member's summed per-expense share across every expense
	// they validly appear in, regardless of settlement state.
	Share float64

	// Net is the outstanding signed balance considering settlement state.
	// Positive = owed money, negative = owes money.
	Net float64

	// IsClear reports whether Net is within Epsilon of zero.
	IsClear bool
}

// validEntries returns the subset of an expense's participant entries whose
// user still exists in the trip. Removed members' shares are not
// reapportioned; the expense simply accounts for less.
func validEntries(exp *models.Expense, live map[string]bool) []models.ExpenseParticipant {
	var valid []models.ExpenseParticipant
	for _, entry := range exp.Participants {
		if live[entry.UserID] {
			valid = append(valid, entry)
		}
	}
	return valid
}

// liveSet indexes the current members by ID.
func liveSet(participants []models.Participant) map[string]bool {
	live := make(map[string]bool, len(participants))
	for _, p := range participants {
		live[p.ID] = true
	}
	return live
}

// ComputeBalances folds the expense collection into per-member aggregates,
// keyed by participant ID. Only live members appear in the result.
//
// For each expense the share is AmountInBase divided by the number of
// still-live participant entries; entries referencing removed members are
// skipped, and an expense with no live entries contributes nothing to Share
// or Net. Net only moves for entries that are unsettled and not the payer's
// own: the payer gains a share, the ower loses one.
func ComputeBalances(participants []models.Participant, expenses []models.Expense) map[string]Balance {
	live := liveSet(participants)

	balances := make(map[string]Balance, len(participants))
	for _, p := range participants {
		balances[p.ID] = Balance{}
	}

	for i := range expenses {
		exp := &expenses[i]
		if len(exp.Participants) == 0 {
			// Degenerate record; contributes nothing anywhere.
			continue
		}

		if bal, ok := balances[exp.PayerID]; ok {
			bal.Paid += exp.AmountInBase
			balances[exp.PayerID] = bal
		}

		valid := validEntries(exp, live)
		if len(valid) == 0 {
			continue
		}
		share := exp.AmountInBase / float64(len(valid))

		for _, entry := range valid {
			bal := balances[entry.UserID]
			bal.Share += share
			balances[entry.UserID] = bal

			if entry.HasPaidBack || entry.UserID == exp.PayerID {
				continue
			}
			if payerBal, ok := balances[exp.PayerID]; ok {
				payerBal.Net += share
				balances[exp.PayerID] = payerBal
			}
			owerBal := balances[entry.UserID]
			owerBal.Net -= share
			balances[entry.UserID] = owerBal
		}
	}

	for id, bal := range balances {
		bal.IsClear = math.Abs(bal.Net) < Epsilon
		balances[id] = bal
	}
	return balances
}
