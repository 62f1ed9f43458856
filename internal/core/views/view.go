// Package views holds the view models of the leave-management screens.
// Each view exclusively owns its fetched collection and filter state and
// coordinates with sibling views only through bus messages; a command
// success never mutates local state directly, it triggers an authoritative
// re-fetch instead.
package views

import (
	"fmt"
	"strings"

	"github.com/leavedesk/leavedesk/internal/apperrors"
)

// needConfirm gates a destructive command. When the user has not yet
// confirmed, it returns ErrConfirmationRequired wrapped with the prompt to
// display, and the command must not fire.
func needConfirm(confirmed bool, prompt string) error {
	if confirmed {
		return nil
	}
	return fmt.Errorf("%s: %w", prompt, apperrors.ErrConfirmationRequired)
}

// initialsFor derives two-letter avatar initials from an employee name,
// falling back to "UU" for unknown users.
func initialsFor(name string) string {
	parts := strings.Fields(strings.TrimSpace(name))
	switch {
	case len(parts) > 1:
		return strings.ToUpper(firstRunes(parts[0], 1) + firstRunes(parts[len(parts)-1], 1))
	case len(parts) == 1:
		return strings.ToUpper(firstRunes(parts[0], 2))
	default:
		return "UU"
	}
}

// firstRunes takes up to n runes so multibyte names keep valid initials.
func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

// displayName falls back to a placeholder when the gateway did not resolve
// the employee reference.
func displayName(name string) string {
	if name == "" {
		return "Unknown User"
	}
	return name
}
