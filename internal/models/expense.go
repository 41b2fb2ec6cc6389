package models

// ExpenseParticipant is one member's stake in an expense: who owes a share,
// whether that share has been paid back, and how.
type ExpenseParticipant struct {
	// UserID references a trip participant. The reference may go stale if
	// the member is later removed; stale entries are kept in storage but
	// excluded from balance math.
	UserID string `json:"userId"`

	// HasPaidBack marks this share as settled. The payer's own entry is
	// conventionally created as settled.
	HasPaidBack bool `json:"hasPaidBack"`

	// SelectedPaymentMethod records how the share was settled
	// (e.g., "FPS", "LINE Pay"). Empty when unsettled or unknown.
	SelectedPaymentMethod string `json:"selectedPaymentMethod,omitempty"`
}

// Expense represents one paid bill, split equally among its participants.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Description is the human-readable label (e.g., "Dinner at Mong Kok").
	Description string `json:"description"`

	// Amount is the value in the original entry currency.
	Amount float64 `json:"amount"`

	// Currency is the original entry currency code (e.g., "JPY").
	Currency string `json:"currency"`

	// ExchangeRate is the rate snapshot captured at entry time:
	// 1 unit of Currency = ExchangeRate units of the base currency.
	// It is a historical fact and is never recomputed.
	ExchangeRate float64 `json:"exchangeRate"`

	// AmountInBase is Amount * ExchangeRate, precomputed at entry time so
	// historical totals stay fixed when the rate table changes.
	AmountInBase float64 `json:"amountInBase"`

	// PayerID is the participant who fronted the money.
	PayerID string `json:"payerId"`

	// Participants is the ordered set of members who owe a share,
	// optionally including the payer.
	Participants []ExpenseParticipant `json:"participants"`

	// Date is the expense instant as a Unix timestamp in milliseconds.
	Date int64 `json:"date"`
}
