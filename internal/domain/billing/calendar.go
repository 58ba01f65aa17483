// Package billing implements the credit-card installment model: due-date
// arithmetic, installment expansion, monthly aggregation, limit utilization
// and completion alerts. Everything here is pure; functions take in-memory
// card/purchase snapshots and never touch storage.
package billing

import "time"

// internal date layout; display formatting lives at the API boundary.
const dateLayout = "2006-01-02"

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// ClampDay clamps day into [1, DaysInMonth(year, month)].
func ClampDay(year int, month time.Month, day int) int {
	max := DaysInMonth(year, month)
	if day < 1 {
		return 1
	}
	if day > max {
		return max
	}
	return day
}

// AddMonthsClamped moves base forward by months and places the result on
// dayWanted, clamped to the target month's length. The clamp is applied per
// target month independently: a day-31 schedule lands on the 30th in a
// 30-day month and back on the 31st when a longer month comes around again.
func AddMonthsClamped(base time.Time, months int, dayWanted int) time.Time {
	target := time.Date(base.Year(), base.Month()+time.Month(months), 1, 0, 0, 0, 0, time.Local)
	day := ClampDay(target.Year(), target.Month(), dayWanted)
	return time.Date(target.Year(), target.Month(), day, 0, 0, 0, 0, time.Local)
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(iso string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, iso, time.Local)
}

// FormatDate renders a date in the internal YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatDisplayDate renders a date in the DD/MM/YYYY display form.
func FormatDisplayDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// NormalizePaymentDay coerces a card's payment day into [1, 31].
// Zero means unset and falls back to the default of 10.
func NormalizePaymentDay(day int) int {
	if day == 0 {
		day = 10
	}
	if day < 1 {
		return 1
	}
	if day > 31 {
		return 31
	}
	return day
}

// DueDate computes the due date of the Nth installment of a purchase.
// Installment 1 is due the month after the purchase month, on the card's
// payment day clamped to that month's length; installment k falls k-1
// months later with the day re-clamped each time.
//
// goodPurchaseDay is accepted for parity with the stored card model but
// does not influence the result. Whether purchases on or after that day
// should roll into the next billing cycle is an open product decision;
// until it is made, the billing month is derived from the purchase month
// alone.
func DueDate(purchaseDate time.Time, goodPurchaseDay, paymentDay, installmentIndex int) time.Time {
	_ = goodPurchaseDay

	pay := NormalizePaymentDay(paymentDay)
	first := AddMonthsClamped(purchaseDate, 1, pay)

	offset := installmentIndex - 1
	if offset < 0 {
		offset = 0
	}
	return AddMonthsClamped(first, offset, pay)
}
