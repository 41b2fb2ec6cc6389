package ledger

import "github.com/yuetlam/splitter/internal/models"

// The settlement tracker rewrites the HasPaidBack / SelectedPaymentMethod
// fields embedded in expense records. Each operation returns a new expense
// slice, leaving the input untouched; the caller persists the result.
// Operations targeting ids that do not resolve are silent no-ops, never
// errors, so callers racing with deletions stay idempotent.

// cloneExpenses copies the slice and every participant entry so rewrites
// never alias the caller's data.
func cloneExpenses(expenses []models.Expense) []models.Expense {
	out := make([]models.Expense, len(expenses))
	copy(out, expenses)
	for i := range out {
		entries := make([]models.ExpenseParticipant, len(out[i].Participants))
		copy(entries, out[i].Participants)
		out[i].Participants = entries
	}
	return out
}

// ToggleSettlement flips HasPaidBack for one participant entry in one
// expense.
func ToggleSettlement(expenses []models.Expense, expenseID, userID string) []models.Expense {
	next := cloneExpenses(expenses)
	for i := range next {
		if next[i].ID != expenseID {
			continue
		}
		for j := range next[i].Participants {
			if next[i].Participants[j].UserID == userID {
				next[i].Participants[j].HasPaidBack = !next[i].Participants[j].HasPaidBack
			}
		}
	}
	return next
}

// SettleAllFor marks every share owed by userID as paid across all
// expenses, regardless of counterparty — a blanket "square with everyone".
func SettleAllFor(expenses []models.Expense, userID string) []models.Expense {
	next := cloneExpenses(expenses)
	for i := range next {
		for j := range next[i].Participants {
			if next[i].Participants[j].UserID == userID {
				next[i].Participants[j].HasPaidBack = true
			}
		}
	}
	return next
}

// SettleBetween clears the entire historical debt from fromID to toID: for
// every expense paid by toID, fromID's entry is marked paid and annotated
// with the payment method. This is pairwise reconciliation, not a partial
// payment primitive.
func SettleBetween(expenses []models.Expense, fromID, toID, method string) []models.Expense {
	next := cloneExpenses(expenses)
	for i := range next {
		if next[i].PayerID != toID {
			continue
		}
		for j := range next[i].Participants {
			if next[i].Participants[j].UserID == fromID {
				next[i].Participants[j].HasPaidBack = true
				next[i].Participants[j].SelectedPaymentMethod = method
			}
		}
	}
	return next
}

// UnsettleBetween reverses SettleBetween: every share fromID owes toID is
// marked unpaid again and its payment method cleared.
func UnsettleBetween(expenses []models.Expense, fromID, toID string) []models.Expense {
	next := cloneExpenses(expenses)
	for i := range next {
		if next[i].PayerID != toID {
			continue
		}
		for j := range next[i].Participants {
			if next[i].Participants[j].UserID == fromID {
				next[i].Participants[j].HasPaidBack = false
				next[i].Participants[j].SelectedPaymentMethod = ""
			}
		}
	}
	return next
}

// SettledHistory aggregates every already-paid share between live members,
// grouped by (ower, payer) pair. Amounts are summed shares in base
// currency; the most recently scanned non-empty payment method wins. Pairs
// whose total is within Epsilon are omitted. Result order is the pair's
// first appearance in the expense scan.
func SettledHistory(participants []models.Participant, expenses []models.Expense) []models.SettledRecord {
	live := liveSet(participants)

	type pairKey struct{ from, to string }
	index := make(map[pairKey]int)
	var records []models.SettledRecord

	for i := range expenses {
		exp := &expenses[i]
		if len(exp.Participants) == 0 || !live[exp.PayerID] {
			continue
		}
		valid := validEntries(exp, live)
		if len(valid) == 0 {
			continue
		}
		share := exp.AmountInBase / float64(len(valid))

		for _, entry := range valid {
			if !entry.HasPaidBack || entry.UserID == exp.PayerID {
				continue
			}
			key := pairKey{from: entry.UserID, to: exp.PayerID}
			idx, ok := index[key]
			if !ok {
				idx = len(records)
				index[key] = idx
				records = append(records, models.SettledRecord{From: key.from, To: key.to})
			}
			records[idx].Amount += share
			if entry.SelectedPaymentMethod != "" {
				records[idx].PaymentMethod = entry.SelectedPaymentMethod
			}
		}
	}

	filtered := records[:0]
	for _, rec := range records {
		if rec.Amount > Epsilon {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
