package ledger

// BaseCurrency is the fixed reference currency. Every AmountInBase, net
// balance and Debt amount is expressed in it.
const BaseCurrency = "HKD"

// Epsilon is the band within which a base-currency balance counts as zero.
// It is applied consistently by the accumulator, the matcher and the
// settled-history aggregation.
const Epsilon = 0.01

// Table maps a currency code to its conversion rate:
// 1 unit of the code = rate units of BaseCurrency.
type Table map[string]float64

// DefaultTable returns the built-in rate table. Rates here are only a
// convenience for entry-time snapshots and display conversion; editing them
// never changes amounts already recorded on expenses.
func DefaultTable() Table {
	return Table{
		"TWD": 0.24,
		"HKD": 1,
		"JPY": 0.052,
		"USD": 7.8,
		"EUR": 8.5,
		"GBP": 9.8,
		"CNY": 1.08,
		"KRW": 0.0058,
		"THB": 0.22,
	}
}

// Rate looks up the current rate for a code.
func (t Table) Rate(code string) (float64, bool) {
	rate, ok := t[code]
	return rate, ok
}

// ToBase normalizes an entered amount using a rate snapshot. The caller is
// expected to freeze both the rate and the result onto the expense record.
func ToBase(amount, rate float64) float64 {
	return amount * rate
}

// Display converts a base-currency amount into the given display currency
// using the current table. This is the inverse direction from entry-time
// normalization. Unknown codes fall back to a rate of 1, i.e. the base
// amount is shown unchanged.
func (t Table) Display(amountInBase float64, code string) float64 {
	rate, ok := t[code]
	if !ok || rate == 0 {
		return amountInBase
	}
	return amountInBase / rate
}
