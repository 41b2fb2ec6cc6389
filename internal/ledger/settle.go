package ledger

import (
	"sort"

	"github.com/yuetlam/splitter/internal/models"
)

// SuggestDebts produces an ordered list of suggested payments that would
// bring every member's net balance to (approximately) zero.
//
// The matching is a deterministic greedy heuristic: debtors sorted by
// largest debt first are paired against creditors sorted by largest credit
// first, transferring min(debt, credit) each step. It is not guaranteed to
// minimize the number of transactions; it trades optimality for determinism.
// Ties keep the trip's participant ordering.
func SuggestDebts(participants []models.Participant, expenses []models.Expense) []models.Debt {
	balances := ComputeBalances(participants, expenses)

	type position struct {
		id  string
		net float64
	}

	var debtors, creditors []position
	for _, p := range participants {
		net := balances[p.ID].Net
		switch {
		case net < -Epsilon:
			debtors = append(debtors, position{id: p.ID, net: net})
		case net > Epsilon:
			creditors = append(creditors, position{id: p.ID, net: net})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].net < debtors[j].net // most negative first
	})
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].net > creditors[j].net // most positive first
	})

	var debts []models.Debt
	j := 0
	for i := range debtors {
		for debtors[i].net < -Epsilon && j < len(creditors) {
			if creditors[j].net <= Epsilon {
				j++
				continue
			}

			amount := -debtors[i].net
			if creditors[j].net < amount {
				amount = creditors[j].net
			}
			if amount > Epsilon {
				debts = append(debts, models.Debt{
					From:   debtors[i].id,
					To:     creditors[j].id,
					Amount: amount,
				})
			}

			debtors[i].net += amount
			creditors[j].net -= amount
		}
	}
	return debts
}
