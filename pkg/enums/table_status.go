package enums

import "fmt"

// TableStatus describes whether a dining table currently holds an open order.
type TableStatus string

const (
	TableStatusAvailable TableStatus = "available"
	TableStatusOccupied  TableStatus = "occupied"
)

var validTableStatuses = []TableStatus{
	TableStatusAvailable,
	TableStatusOccupied,
}

// IsValid reports whether the value matches the canonical table status enum.
func (s TableStatus) IsValid() bool {
	for _, candidate := range validTableStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTableStatus converts the raw string to TableStatus.
func ParseTableStatus(value string) (TableStatus, error) {
	for _, candidate := range validTableStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid table status %q", value)
}
