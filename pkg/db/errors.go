package db

import "strings"

// IsUniqueViolation reports whether err carries a Postgres unique
// violation. The register and staff-create flows use it to map a
// duplicate email or username that slipped past the pre-insert lookup
// onto a conflict response instead of a 5xx. With constraintName set
// the match is pinned to that constraint; empty matches any duplicate
// key error. String matching keeps the helper free of a driver import.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}
