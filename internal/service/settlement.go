package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/yuetlam/splitter/internal/ledger"
	"github.com/yuetlam/splitter/internal/metrics"
	"github.com/yuetlam/splitter/internal/models"
)

// MemberBalance is a participant's aggregate position, converted to the
// requested display currency.
type MemberBalance struct {
	Participant models.Participant `json:"participant"`
	Paid        float64            `json:"paid"`
	Share       float64            `json:"share"`
	Net         float64            `json:"net"`
	IsClear     bool               `json:"isClear"`
}

// Balances computes every member's position for a trip. displayCurrency
// converts the amounts using the current rate table; empty or the base code
// leaves them in base currency. Result order follows the trip's member
// ordering.
func (s *TripService) Balances(ctx context.Context, tripID, displayCurrency string) ([]MemberBalance, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	balances := ledger.ComputeBalances(trip.Participants, trip.Expenses)
	out := make([]MemberBalance, 0, len(trip.Participants))
	for _, p := range trip.Participants {
		bal := balances[p.ID]
		out = append(out, MemberBalance{
			Participant: p,
			Paid:        s.display(bal.Paid, displayCurrency),
			Share:       s.display(bal.Share, displayCurrency),
			Net:         s.display(bal.Net, displayCurrency),
			IsClear:     bal.IsClear,
		})
	}
	return out, nil
}

// SuggestedDebts returns the greedy settlement plan for a trip.
func (s *TripService) SuggestedDebts(ctx context.Context, tripID, displayCurrency string) ([]models.Debt, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	debts := ledger.SuggestDebts(trip.Participants, trip.Expenses)
	for i := range debts {
		debts[i].Amount = s.display(debts[i].Amount, displayCurrency)
	}
	return debts, nil
}

// SettledHistory returns the accumulated settled amounts between pairs.
func (s *TripService) SettledHistory(ctx context.Context, tripID, displayCurrency string) ([]models.SettledRecord, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	records := ledger.SettledHistory(trip.Participants, trip.Expenses)
	for i := range records {
		records[i].Amount = s.display(records[i].Amount, displayCurrency)
	}
	return records, nil
}

// ToggleSettlement flips the paid-back flag for one share of one expense.
func (s *TripService) ToggleSettlement(ctx context.Context, tripID, expenseID, userID string) (*models.Trip, error) {
	return s.applySettlement(ctx, tripID, "toggle", func(expenses []models.Expense) []models.Expense {
		return ledger.ToggleSettlement(expenses, expenseID, userID)
	})
}

// SettleAllFor marks every share owed by userID as paid.
func (s *TripService) SettleAllFor(ctx context.Context, tripID, userID string) (*models.Trip, error) {
	return s.applySettlement(ctx, tripID, "settle_all", func(expenses []models.Expense) []models.Expense {
		return ledger.SettleAllFor(expenses, userID)
	})
}

// SettleBetween clears the full historical debt from one member to another,
// recording the payment method used.
func (s *TripService) SettleBetween(ctx context.Context, tripID, fromID, toID, method string) (*models.Trip, error) {
	if fromID == toID {
		return nil, fmt.Errorf("%w: cannot settle with yourself", ErrInvalidInput)
	}
	return s.applySettlement(ctx, tripID, "settle_between", func(expenses []models.Expense) []models.Expense {
		return ledger.SettleBetween(expenses, fromID, toID, method)
	})
}

// UnsettleBetween reverses SettleBetween for the pair.
func (s *TripService) UnsettleBetween(ctx context.Context, tripID, fromID, toID string) (*models.Trip, error) {
	return s.applySettlement(ctx, tripID, "unsettle_between", func(expenses []models.Expense) []models.Expense {
		return ledger.UnsettleBetween(expenses, fromID, toID)
	})
}

// applySettlement loads the trip, rewrites its expense collection through
// the given ledger operation and persists the new value.
func (s *TripService) applySettlement(ctx context.Context, tripID, op string, rewrite func([]models.Expense) []models.Expense) (*models.Trip, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	trip.Expenses = rewrite(trip.Expenses)
	metrics.SettlementOps.WithLabelValues(op).Inc()
	slog.Debug("settlement applied", "trip_id", tripID, "op", op)
	return s.replace(ctx, trip)
}

// display converts a base-currency amount for presentation. Empty code
// means base currency.
func (s *TripService) display(amountInBase float64, code string) float64 {
	if code == "" || code == ledger.BaseCurrency {
		return amountInBase
	}
	return s.rates.Display(amountInBase, code)
}
