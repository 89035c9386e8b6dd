package enums

import "fmt"

// TableStatus tracks the floor state of a dining table.
type TableStatus string

const (
	TableStatusAvailable      TableStatus = "available"
	TableStatusOccupied       TableStatus = "occupied"
	TableStatusReserved       TableStatus = "reserved"
	TableStatusNeedsAttention TableStatus = "needs_attention"
	TableStatusCleaning       TableStatus = "cleaning"
)

var validTableStatuses = []TableStatus{
	TableStatusAvailable,
	TableStatusOccupied,
	TableStatusReserved,
	TableStatusNeedsAttention,
	TableStatusCleaning,
}

// String implements fmt.Stringer.
func (s TableStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known TableStatus.
func (s TableStatus) IsValid() bool {
	for _, candidate := range validTableStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// Seatable reports whether a new dine-in order may claim the table.
func (s TableStatus) Seatable() bool {
	return s == TableStatusAvailable || s == TableStatusReserved
}

// ParseTableStatus converts raw input into a TableStatus.
func ParseTableStatus(value string) (TableStatus, error) {
	for _, candidate := range validTableStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid table status %q", value)
}
