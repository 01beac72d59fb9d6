package client

import "time"

// Frequency is how often a client expects to be invoiced.
type Frequency string

const (
	FrequencyMonthly    Frequency = "Monthly"
	FrequencyQuarterly  Frequency = "Quarterly"
	FrequencySemiAnnual Frequency = "Semi-Annually"
	FrequencyAnnual     Frequency = "Annually"
)

// Frequencies lists every valid invoicing frequency, in display order.
var Frequencies = []Frequency{
	FrequencyMonthly,
	FrequencyQuarterly,
	FrequencySemiAnnual,
	FrequencyAnnual,
}

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencySemiAnnual, FrequencyAnnual:
		return true
	}
	return false
}

// ParseFrequency converts a string into a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(s)
	if !f.Valid() {
		return "", ErrInvalidFrequency
	}
	return f, nil
}

// Client is a billable entity being tracked.
type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Frequency    Frequency `json:"frequency"`
	Instructions string    `json:"instructions"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
