package workflow

import (
	"fmt"

	"github.com/chamberhq/services-portal-api/internal/models"
)

// transitions is the allowed status graph for the base record model.
// SUBMITTED → UNDER_REVIEW → {APPROVED | REJECTED | PENDING_INFO} → CLOSED,
// with PENDING_INFO able to return to UNDER_REVIEW once the applicant responds.
var transitions = map[models.Status][]models.Status{
	models.StatusSubmitted:   {models.StatusUnderReview},
	models.StatusUnderReview: {models.StatusApproved, models.StatusRejected, models.StatusPendingInfo},
	models.StatusPendingInfo: {models.StatusUnderReview, models.StatusClosed},
	models.StatusApproved:    {models.StatusClosed},
	models.StatusRejected:    {models.StatusClosed},
	models.StatusClosed:      {},
}

// TransitionError reports a requested status unreachable from the current one
type TransitionError struct {
	From models.Status
	To   models.Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// Next returns the statuses reachable from the given status
func Next(from models.Status) []models.Status {
	next := transitions[from]
	out := make([]models.Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether the requested transition is in the allowed graph
func CanTransition(from, to models.Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Validate returns nil for an allowed transition and a TransitionError otherwise.
// A no-op request (from == to) is not an error; callers treat it as accepted
// without side effects.
func Validate(from, to models.Status) error {
	if from == to {
		return nil
	}
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// IsTerminal reports whether no further staff-driven transition is expected.
// APPROVED and REJECTED can still be administratively closed, but the review
// outcome is final once either is reached.
func IsTerminal(status models.Status) bool {
	switch status {
	case models.StatusApproved, models.StatusRejected, models.StatusClosed:
		return true
	}
	return false
}

// IsResolved reports whether the record counts toward resolution metrics
func IsResolved(status models.Status) bool {
	return IsTerminal(status)
}

// IsOpen reports whether the record still needs staff attention
func IsOpen(status models.Status) bool {
	return !IsTerminal(status)
}

// OpenStatuses returns the statuses counted as open on the dashboard
func OpenStatuses() []models.Status {
	return []models.Status{models.StatusSubmitted, models.StatusUnderReview, models.StatusPendingInfo}
}

// ResolvedStatuses returns the statuses counted as resolved on the dashboard
func ResolvedStatuses() []models.Status {
	return []models.Status{models.StatusApproved, models.StatusRejected, models.StatusClosed}
}
