package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var upiHandleRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9.\-_]{1,99}@[a-z]{2,64}$`)

// NormalizeUPIHandle lowercases a UPI handle and validates its format.
// Valid handles look like "name@bank": an alphanumeric local part that may
// contain dots, hyphens and underscores, followed by a provider suffix.
func NormalizeUPIHandle(value string) (string, error) {
	normalized := strings.TrimSpace(strings.ToLower(value))
	if !upiHandleRegex.MatchString(normalized) {
		return "", fmt.Errorf("invalid UPI ID. Expected a handle like name@bank")
	}
	return normalized, nil
}
