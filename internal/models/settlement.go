package models

// Debt is a suggested payment that would move both parties toward a zero
// balance. Amounts are in the base currency. Debts are derived by the ledger
// engine and never stored.
type Debt struct {
	// From is the participant who owes.
	From string `json:"from"`

	// To is the participant who is owed.
	To string `json:"to"`

	// Amount is the suggested payment size in base currency.
	Amount float64 `json:"amount"`
}

// SettledRecord is the accumulated history of shares already marked paid
// between an ordered pair of participants. Derived, never stored.
type SettledRecord struct {
	// From is the participant who paid.
	From string `json:"from"`

	// To is the payer they reimbursed.
	To string `json:"to"`

	// Amount is the summed settled shares in base currency.
	Amount float64 `json:"amount"`

	// PaymentMethod is the most recently recorded non-empty method for the
	// pair, if any.
	PaymentMethod string `json:"paymentMethod,omitempty"`
}
