package booking

import "groomify/models"

// allowedTransitions is the complete legal transition table. A status absent
// from the map, or mapped to an empty set, is terminal.
var allowedTransitions = map[string][]string{
	models.StatusPreBooked: {models.StatusConfirmed, models.StatusRejected, models.StatusExpired},
	models.StatusConfirmed: {models.StatusCancelled, models.StatusCompleted, models.StatusNoShow},
}

// CanTransition reports whether from -> to is a legal move.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the legal target statuses for a status.
func AllowedTransitions(from string) []string {
	return allowedTransitions[from]
}

// requiredFrom returns the only status a transition to `to` may start from.
// Every target in the table is reachable from exactly one source.
func requiredFrom(to string) string {
	for from, targets := range allowedTransitions {
		for _, next := range targets {
			if next == to {
				return from
			}
		}
	}
	return ""
}
