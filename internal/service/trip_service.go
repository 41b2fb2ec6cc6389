package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yuetlam/splitter/internal/ai"
	"github.com/yuetlam/splitter/internal/ledger"
	"github.com/yuetlam/splitter/internal/metrics"
	"github.com/yuetlam/splitter/internal/models"
	"github.com/yuetlam/splitter/internal/notify"
	"github.com/yuetlam/splitter/internal/storage"
)

var (
	// ErrInvalidInput marks user-facing validation failures.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks lookups against missing trips or expenses.
	ErrNotFound = errors.New("not found")
)

// suggestionCurrency is the entry currency assumed for AI-parsed expenses;
// amounts spoken in chat default to it, matching the original client.
const suggestionCurrency = "TWD"

// TripService owns the trip aggregate: membership, expense recording and
// the settlement operations, all computed through the ledger engine and
// persisted as whole-trip replaces.
type TripService struct {
	store storage.Store
	rates ledger.Table
	pub   notify.Publisher
}

// NewTripService creates a trip service over the given store. pub may be a
// notify.NopPublisher when no broker is configured.
func NewTripService(store storage.Store, rates ledger.Table, pub notify.Publisher) *TripService {
	return &TripService{store: store, rates: rates, pub: pub}
}

// Rates exposes the current conversion table (for the currencies endpoint).
func (s *TripService) Rates() ledger.Table {
	return s.rates
}

// CreateTrip creates a trip with the given member names.
func (s *TripService) CreateTrip(ctx context.Context, name, icon string, memberNames []string) (*models.Trip, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: trip name required", ErrInvalidInput)
	}

	trip := &models.Trip{Name: name, Icon: icon}
	for _, memberName := range memberNames {
		memberName = strings.TrimSpace(memberName)
		if memberName == "" {
			continue
		}
		trip.Participants = append(trip.Participants, models.Participant{
			ID:   uuid.New().String(),
			Name: memberName,
		})
	}

	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}
	slog.Info("trip created", "trip_id", trip.ID, "members", len(trip.Participants))
	s.pub.TripChanged(ctx, trip.ID, "updated")
	return trip, nil
}

// GetTrip retrieves a trip aggregate.
func (s *TripService) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return trip, nil
}

// ListTrips returns all trips, newest first.
func (s *TripService) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	return s.store.ListTrips(ctx)
}

// UpdateTrip renames a trip and/or changes its icon.
func (s *TripService) UpdateTrip(ctx context.Context, tripID, name, icon string) (*models.Trip, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if name = strings.TrimSpace(name); name != "" {
		trip.Name = name
	}
	if icon != "" {
		trip.Icon = icon
	}
	return s.replace(ctx, trip)
}

// DeleteTrip removes a trip and all its data.
func (s *TripService) DeleteTrip(ctx context.Context, tripID string) error {
	if err := s.store.DeleteTrip(ctx, tripID); err != nil {
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	slog.Info("trip deleted", "trip_id", tripID)
	s.pub.TripChanged(ctx, tripID, "deleted")
	return nil
}

// AddParticipant adds a member to the trip.
func (s *TripService) AddParticipant(ctx context.Context, tripID, name string) (*models.Trip, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: participant name required", ErrInvalidInput)
	}

	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	trip.Participants = append(trip.Participants, models.Participant{
		ID:   uuid.New().String(),
		Name: name,
	})
	return s.replace(ctx, trip)
}

// RemoveParticipant removes a member. Expenses the member paid are deleted
// outright; expenses where they merely owed a share keep their stored
// record — the ledger excludes the stale reference from all future math.
func (s *TripService) RemoveParticipant(ctx context.Context, tripID, userID string) (*models.Trip, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	members := trip.Participants[:0]
	for _, p := range trip.Participants {
		if p.ID != userID {
			members = append(members, p)
		}
	}
	trip.Participants = members

	expenses := trip.Expenses[:0]
	for _, exp := range trip.Expenses {
		if exp.PayerID != userID {
			expenses = append(expenses, exp)
		}
	}
	trip.Expenses = expenses

	return s.replace(ctx, trip)
}

// ExpenseInput carries the fields needed to record or edit an expense.
type ExpenseInput struct {
	Description    string
	Amount         float64
	Currency       string
	ExchangeRate   float64 // 0 means look up the current table rate
	PayerID        string
	ParticipantIDs []string
	Date           int64 // Unix millis; 0 means now
}

// buildExpense applies the construction rules: the rate is snapshotted, the
// base amount precomputed, and the payer's own share pre-settled.
func (s *TripService) buildExpense(trip *models.Trip, in ExpenseInput) (*models.Expense, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description required", ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if trip.Participant(in.PayerID) == nil {
		return nil, fmt.Errorf("%w: payer must be a trip member", ErrInvalidInput)
	}
	if len(in.ParticipantIDs) == 0 {
		return nil, fmt.Errorf("%w: select at least one participant", ErrInvalidInput)
	}
	for _, id := range in.ParticipantIDs {
		if trip.Participant(id) == nil {
			return nil, fmt.Errorf("%w: unknown participant %s", ErrInvalidInput, id)
		}
	}

	rate := in.ExchangeRate
	if rate == 0 {
		tableRate, ok := s.rates.Rate(in.Currency)
		if !ok {
			return nil, fmt.Errorf("%w: unknown currency %s", ErrInvalidInput, in.Currency)
		}
		rate = tableRate
	}

	date := in.Date
	if date == 0 {
		date = time.Now().UnixMilli()
	}

	shares := make([]models.ExpenseParticipant, len(in.ParticipantIDs))
	for i, id := range in.ParticipantIDs {
		shares[i] = models.ExpenseParticipant{
			UserID:      id,
			HasPaidBack: id == in.PayerID,
		}
	}

	return &models.Expense{
		ID:           uuid.New().String(),
		Description:  strings.TrimSpace(in.Description),
		Amount:       in.Amount,
		Currency:     in.Currency,
		ExchangeRate: rate,
		AmountInBase: ledger.ToBase(in.Amount, rate),
		PayerID:      in.PayerID,
		Participants: shares,
		Date:         date,
	}, nil
}

// AddExpense records a new expense, newest first.
func (s *TripService) AddExpense(ctx context.Context, tripID string, in ExpenseInput) (*models.Trip, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	exp, err := s.buildExpense(trip, in)
	if err != nil {
		return nil, err
	}

	trip.Expenses = append([]models.Expense{*exp}, trip.Expenses...)
	metrics.ExpensesCreated.WithLabelValues(exp.Currency).Inc()
	return s.replace(ctx, trip)
}

// UpdateExpense replaces an existing expense with a freshly constructed
// one. Settlement flags reset to the construction default, matching an
// edit-from-scratch in the original client.
func (s *TripService) UpdateExpense(ctx context.Context, tripID, expenseID string, in ExpenseInput) (*models.Trip, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range trip.Expenses {
		if trip.Expenses[i].ID == expenseID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: expense %s", ErrNotFound, expenseID)
	}

	exp, err := s.buildExpense(trip, in)
	if err != nil {
		return nil, err
	}
	exp.ID = expenseID
	trip.Expenses[idx] = *exp
	return s.replace(ctx, trip)
}

// DeleteExpense removes one expense.
func (s *TripService) DeleteExpense(ctx context.Context, tripID, expenseID string) (*models.Trip, error) {
	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	expenses := trip.Expenses[:0]
	for _, exp := range trip.Expenses {
		if exp.ID != expenseID {
			expenses = append(expenses, exp)
		}
	}
	trip.Expenses = expenses
	return s.replace(ctx, trip)
}

// AddExpenseFromSuggestion converts a parsed suggestion into an expense via
// the normal construction rules. Unknown names become new trip members; the
// payer always shares the cost.
func (s *TripService) AddExpenseFromSuggestion(ctx context.Context, tripID string, sug *ai.Suggestion) (*models.Trip, error) {
	if sug == nil || sug.PayerName == "" {
		return nil, fmt.Errorf("%w: suggestion missing payer", ErrInvalidInput)
	}

	trip, err := s.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	getOrCreate := func(name string) string {
		for _, p := range trip.Participants {
			if strings.EqualFold(p.Name, name) {
				return p.ID
			}
		}
		p := models.Participant{ID: uuid.New().String(), Name: name}
		trip.Participants = append(trip.Participants, p)
		return p.ID
	}

	payerID := getOrCreate(sug.PayerName)
	ids := []string{payerID}
	for _, name := range sug.ParticipantNames {
		id := getOrCreate(name)
		if id != payerID {
			ids = append(ids, id)
		}
	}

	exp, err := s.buildExpense(trip, ExpenseInput{
		Description:    sug.Description,
		Amount:         sug.Amount,
		Currency:       suggestionCurrency,
		PayerID:        payerID,
		ParticipantIDs: ids,
	})
	if err != nil {
		return nil, err
	}

	trip.Expenses = append([]models.Expense{*exp}, trip.Expenses...)
	metrics.ExpensesCreated.WithLabelValues(exp.Currency).Inc()
	return s.replace(ctx, trip)
}

// replace persists the aggregate and broadcasts the change.
func (s *TripService) replace(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	if err := s.store.ReplaceTrip(ctx, trip); err != nil {
		return nil, fmt.Errorf("failed to replace trip: %w", err)
	}
	s.pub.TripChanged(ctx, trip.ID, "updated")
	return trip, nil
}
