package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yuetlam/splitter/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitter-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func sampleTrip() *models.Trip {
	return &models.Trip{
		Name: "Taipei 2026",
		Icon: "Taco.png",
		Participants: []models.Participant{
			{ID: "p1", Name: "Fion"},
			{ID: "p2", Name: "Long"},
		},
		Expenses: []models.Expense{
			{
				Description:  "Night market",
				Amount:       1000,
				Currency:     "TWD",
				ExchangeRate: 0.24,
				AmountInBase: 240,
				PayerID:      "p1",
				Date:         1700000000000,
				Participants: []models.ExpenseParticipant{
					{UserID: "p1", HasPaidBack: true},
					{UserID: "p2"},
				},
			},
		},
	}
}

func TestTripStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTrip generates ID and CreatedAt", func(t *testing.T) {
		trip := sampleTrip()
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		if trip.ID == "" {
			t.Error("Expected trip ID to be generated")
		}
		if trip.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
	})

	t.Run("GetTrip retrieves complete aggregate in order", func(t *testing.T) {
		original := sampleTrip()
		if err := store.CreateTrip(ctx, original); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		retrieved, err := store.GetTrip(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}

		if retrieved.Name != original.Name || retrieved.Icon != original.Icon {
			t.Errorf("trip = %s/%s, want %s/%s", retrieved.Name, retrieved.Icon, original.Name, original.Icon)
		}
		if len(retrieved.Participants) != 2 || retrieved.Participants[0].Name != "Fion" {
			t.Errorf("participants = %+v, order not preserved", retrieved.Participants)
		}
		if len(retrieved.Expenses) != 1 {
			t.Fatalf("expected 1 expense, got %d", len(retrieved.Expenses))
		}

		exp := retrieved.Expenses[0]
		if exp.Currency != "TWD" || exp.ExchangeRate != 0.24 || exp.AmountInBase != 240 {
			t.Errorf("expense snapshot fields lost: %+v", exp)
		}
		if len(exp.Participants) != 2 {
			t.Fatalf("expected 2 shares, got %d", len(exp.Participants))
		}
		if !exp.Participants[0].HasPaidBack || exp.Participants[1].HasPaidBack {
			t.Errorf("share flags lost: %+v", exp.Participants)
		}
	})

	t.Run("ReplaceTrip swaps the whole aggregate", func(t *testing.T) {
		trip := sampleTrip()
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}

		next := *trip
		next.Name = "Taipei again"
		next.Participants = []models.Participant{{ID: "p2", Name: "Long"}}
		next.Expenses = nil

		if err := store.ReplaceTrip(ctx, &next); err != nil {
			t.Fatalf("ReplaceTrip failed: %v", err)
		}

		retrieved, err := store.GetTrip(ctx, trip.ID)
		if err != nil {
			t.Fatalf("GetTrip failed: %v", err)
		}
		if retrieved.Name != "Taipei again" {
			t.Errorf("name = %s, want replaced value", retrieved.Name)
		}
		if len(retrieved.Participants) != 1 || len(retrieved.Expenses) != 0 {
			t.Errorf("children not replaced: %+v", retrieved)
		}
	})

	t.Run("ReplaceTrip on missing trip errors", func(t *testing.T) {
		missing := sampleTrip()
		missing.ID = "no-such-trip"
		if err := store.ReplaceTrip(ctx, missing); err == nil {
			t.Error("expected error for missing trip")
		}
	})

	t.Run("ListTrips returns newest first", func(t *testing.T) {
		fresh := newTestStore(t)

		older := sampleTrip()
		older.CreatedAt = 100
		newer := sampleTrip()
		newer.Name = "Osaka"
		newer.CreatedAt = 200

		for _, trip := range []*models.Trip{older, newer} {
			if err := fresh.CreateTrip(ctx, trip); err != nil {
				t.Fatalf("CreateTrip failed: %v", err)
			}
		}

		trips, err := fresh.ListTrips(ctx)
		if err != nil {
			t.Fatalf("ListTrips failed: %v", err)
		}
		if len(trips) != 2 {
			t.Fatalf("expected 2 trips, got %d", len(trips))
		}
		if trips[0].Name != "Osaka" {
			t.Errorf("first trip = %s, want newest", trips[0].Name)
		}
	})

	t.Run("DeleteTrip cascades", func(t *testing.T) {
		trip := sampleTrip()
		if err := store.CreateTrip(ctx, trip); err != nil {
			t.Fatalf("CreateTrip failed: %v", err)
		}
		if err := store.DeleteTrip(ctx, trip.ID); err != nil {
			t.Fatalf("DeleteTrip failed: %v", err)
		}
		if _, err := store.GetTrip(ctx, trip.ID); err == nil {
			t.Error("expected error for deleted trip")
		}
		if err := store.DeleteTrip(ctx, trip.ID); err == nil {
			t.Error("expected error deleting twice")
		}
	})
}

func TestUserStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser("fion@example.com", "Fion", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "fion@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail == nil || byEmail.ID != user.ID {
		t.Errorf("GetUserByEmail = %+v, want %s", byEmail, user.ID)
	}

	byID, err := store.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID == nil || byID.Email != user.Email {
		t.Errorf("GetUserByID = %+v, want %s", byID, user.Email)
	}

	missing, err := store.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil || missing != nil {
		t.Errorf("missing user = (%+v, %v), want (nil, nil)", missing, err)
	}

	if err := store.CreateUser(ctx, models.NewUser("fion@example.com", "Dup", "hash")); err == nil {
		t.Error("expected unique-email violation")
	}
}
