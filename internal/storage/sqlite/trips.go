package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yuetlam/splitter/internal/models"
)

// CreateTrip persists a new trip aggregate to the database.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	// Generate IDs if not set
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO trips (id, name, icon, created_at) VALUES (?, ?, ?, ?)",
		trip.ID, trip.Name, trip.Icon, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	if err := insertChildren(ctx, tx, trip); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ReplaceTrip atomically swaps the stored aggregate for the given value.
// The trip row is updated in place; members, expenses and shares are
// re-inserted wholesale. Everything happens in one transaction, so readers
// never observe a half-replaced trip.
func (s *SQLiteStore) ReplaceTrip(ctx context.Context, trip *models.Trip) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE trips SET name = ?, icon = ? WHERE id = ?",
		trip.Name, trip.Icon, trip.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check trip update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("trip not found: %s", trip.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM trip_members WHERE trip_id = ?", trip.ID); err != nil {
		return fmt.Errorf("failed to clear members: %w", err)
	}
	// Deleting expenses cascades to expense_shares.
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE trip_id = ?", trip.ID); err != nil {
		return fmt.Errorf("failed to clear expenses: %w", err)
	}

	if err := insertChildren(ctx, tx, trip); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertChildren writes the trip's members, expenses and shares, preserving
// their slice ordering via position columns.
func insertChildren(ctx context.Context, tx *sql.Tx, trip *models.Trip) error {
	for i, member := range trip.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO trip_members (trip_id, id, name, position) VALUES (?, ?, ?, ?)",
			trip.ID, member.ID, member.Name, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
	}

	for i := range trip.Expenses {
		exp := &trip.Expenses[i]
		if exp.ID == "" {
			exp.ID = uuid.New().String()
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, trip_id, description, amount, currency, exchange_rate, amount_in_base, payer_id, date, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			exp.ID, trip.ID, exp.Description, exp.Amount, exp.Currency,
			exp.ExchangeRate, exp.AmountInBase, exp.PayerID, exp.Date, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for j, share := range exp.Participants {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO expense_shares (expense_id, user_id, has_paid_back, payment_method, position) VALUES (?, ?, ?, ?, ?)",
				exp.ID, share.UserID, share.HasPaidBack, share.SelectedPaymentMethod, j,
			)
			if err != nil {
				return fmt.Errorf("failed to insert expense share: %w", err)
			}
		}
	}
	return nil
}

// GetTrip retrieves a trip by ID, including all members and expenses.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, icon, created_at FROM trips WHERE id = ?",
		tripID,
	).Scan(&trip.ID, &trip.Name, &trip.Icon, &trip.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("trip not found: %s", tripID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM trip_members WHERE trip_id = ? ORDER BY position",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member models.Participant
		if err := rows.Scan(&member.ID, &member.Name); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		trip.Participants = append(trip.Participants, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}

	expRows, err := s.db.QueryContext(ctx,
		`SELECT id, description, amount, currency, exchange_rate, amount_in_base, payer_id, date
		 FROM expenses WHERE trip_id = ? ORDER BY position`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	defer expRows.Close()

	for expRows.Next() {
		var exp models.Expense
		if err := expRows.Scan(&exp.ID, &exp.Description, &exp.Amount, &exp.Currency,
			&exp.ExchangeRate, &exp.AmountInBase, &exp.PayerID, &exp.Date); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}

		shareRows, err := s.db.QueryContext(ctx,
			"SELECT user_id, has_paid_back, payment_method FROM expense_shares WHERE expense_id = ? ORDER BY position",
			exp.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to get expense shares: %w", err)
		}

		for shareRows.Next() {
			var share models.ExpenseParticipant
			if err := shareRows.Scan(&share.UserID, &share.HasPaidBack, &share.SelectedPaymentMethod); err != nil {
				shareRows.Close()
				return nil, fmt.Errorf("failed to scan expense share: %w", err)
			}
			exp.Participants = append(exp.Participants, share)
		}
		shareRows.Close()
		if err := shareRows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate expense shares: %w", err)
		}

		trip.Expenses = append(trip.Expenses, exp)
	}
	if err := expRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return trip, nil
}

// ListTrips returns all trip aggregates, newest first.
func (s *SQLiteStore) ListTrips(ctx context.Context) ([]*models.Trip, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM trips ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan trip id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	trips := make([]*models.Trip, 0, len(ids))
	for _, id := range ids {
		trip, err := s.GetTrip(ctx, id)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

// DeleteTrip removes a trip and, via cascade, its members and expenses.
func (s *SQLiteStore) DeleteTrip(ctx context.Context, tripID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check trip delete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("trip not found: %s", tripID)
	}
	return nil
}
