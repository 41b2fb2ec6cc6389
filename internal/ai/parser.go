// Package ai is the natural-language expense parsing collaborator. It turns
// a free-form description ("Dinner at Mong Kok, 800 HKD, paid by Alan,
// shared with Bob") into a structured suggestion the trip service converts
// into an expense via the normal construction rules. The ledger engine
// never depends on this package.
package ai

import "context"

// Suggestion is the best-effort parse of a free-form expense description.
type Suggestion struct {
	Description      string   `json:"description"`
	Amount           float64  `json:"amount"`
	PayerName        string   `json:"payerName"`
	ParticipantNames []string `json:"participantNames"`
}

// Parser produces expense suggestions from prompts. participantNames gives
// the model the current member list so "everyone" can be resolved.
type Parser interface {
	Parse(ctx context.Context, prompt string, participantNames []string) (*Suggestion, error)
}
