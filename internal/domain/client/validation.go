package client

import "strings"

// Validate checks the invariants every stored client must satisfy.
func Validate(c Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Frequency.Valid() {
		return ErrInvalidFrequency
	}
	return nil
}
