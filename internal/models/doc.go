// Package models defines the core domain models for Splitter.
//
// # Current Models
//
//   - Trip: the aggregate root — a group of participants plus the expenses
//     they recorded together. Persistence operates on whole trips.
//   - Participant: a member of a trip, identified by an opaque ID.
//   - Expense: one paid bill, with a frozen exchange-rate snapshot and the
//     per-member settlement state embedded in its participant entries.
//   - Debt / SettledRecord: derived values produced by the ledger engine;
//     they are never stored.
//   - User: a registered account used for API authentication.
//
// # Design Principles
//
// 1. **Snapshot semantics**: Expense.AmountInBase is precomputed at entry
// time so later rate-table edits never rewrite history.
// 2. **Avoid circular references**: relationships use ID strings, not
// pointers.
// 3. **Settlement state lives in the expense**: there is no separate ledger
// of payments; HasPaidBack on each participant entry is the source of truth.
package models
