// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/yuetlam/splitter/internal/models"
)

// Store defines the interface for trip and user persistence.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Trips are stored as whole aggregates: the ledger engine returns new
// participant/expense collection values and the store persists them with a
// single atomic replace-by-id. The store performs no conflict detection;
// concurrent writers get last-write-wins.
type Store interface {
	// CreateTrip persists a new trip and populates ID/CreatedAt if unset.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a full trip aggregate by ID.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips returns all trips, newest first.
	ListTrips(ctx context.Context) ([]*models.Trip, error)

	// ReplaceTrip atomically replaces the stored aggregate with the given
	// value. Returns an error if the trip does not exist.
	ReplaceTrip(ctx context.Context, trip *models.Trip) error

	// DeleteTrip removes a trip and everything belonging to it.
	DeleteTrip(ctx context.Context, tripID string) error

	// CreateUser inserts a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email, or (nil, nil) if absent.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID, or (nil, nil) if absent.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// Close releases any resources held by the store.
	Close() error
}
