// Package ledger is the pure computation core of Splitter: it folds a trip
// snapshot (participants + expenses) into per-member balances, suggests a
// set of pairwise payments that would clear those balances, and rewrites the
// per-share settlement flags embedded in expense records.
//
// Every function here is side-effect free and recomputes from scratch; there
// is no cached intermediate state. Mutating operations return a new expense
// slice for the caller to persist. Amounts are float64 in the base currency
// with a shared Epsilon absorbing floating-point noise.
package ledger
