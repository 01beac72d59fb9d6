package invoice

import "invotrack/internal/domain/client"

// Applicable reports whether a client with the given invoicing frequency is
// expected to be invoiced in the given month (zero-indexed, 0 = January).
// Pure and total; evaluated at read time, never persisted, so a frequency
// change retroactively reshapes which historical cells apply.
func Applicable(freq client.Frequency, month int) bool {
	if month < 0 || month > 11 {
		return false
	}
	switch freq {
	case client.FrequencyMonthly:
		return true
	case client.FrequencyQuarterly:
		return month%3 == 0 // Jan, Apr, Jul, Oct
	case client.FrequencySemiAnnual:
		return month%6 == 0 // Jan, Jul
	case client.FrequencyAnnual:
		return month == 0 // Jan only
	}
	return false
}
