package domain

import "github.com/google/uuid"

// NewID generates a UUIDv7 string. UUIDv7 sorts by creation time, which keeps
// history listings in insertion order.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ValidID reports whether s is a well-formed UUID.
func ValidID(s string) bool {
	return uuid.Validate(s) == nil
}
