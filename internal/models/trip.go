package models

// Participant is a member of a trip.
// Identity is the ID; names are display-only and not unique.
type Participant struct {
	// ID is the unique identifier for the participant (UUID format).
	ID string `json:"id"`

	// Name is the display name (e.g., "Fion", "Long").
	Name string `json:"name"`
}

// Trip is the aggregate root: a named group of participants and the
// expenses they share. All ledger computations take a trip snapshot as
// input, and all mutations are persisted as a whole-trip replace.
type Trip struct {
	// ID is the unique identifier for the trip (UUID format).
	ID string `json:"id"`

	// Name is the display name of the trip (e.g., "Tokyo 2025").
	Name string `json:"name"`

	// Icon is an optional icon tag chosen by the client.
	Icon string `json:"icon,omitempty"`

	// Participants is the current member list. Removing a member does not
	// rewrite old expenses; stale references are ignored at computation time.
	Participants []Participant `json:"participants"`

	// Expenses is the recorded expense history, newest first.
	Expenses []Expense `json:"expenses"`

	// CreatedAt is the Unix timestamp when the trip was created.
	CreatedAt int64 `json:"createdAt"`
}

// Participant returns the live member with the given ID, or nil.
func (t *Trip) Participant(id string) *Participant {
	for i := range t.Participants {
		if t.Participants[i].ID == id {
			return &t.Participants[i]
		}
	}
	return nil
}
