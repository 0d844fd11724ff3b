package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chamberhq/services-portal-api/internal/models"
)

func allStatuses() []models.Status {
	return []models.Status{
		models.StatusSubmitted,
		models.StatusUnderReview,
		models.StatusApproved,
		models.StatusRejected,
		models.StatusPendingInfo,
		models.StatusClosed,
	}
}

func TestCanTransition_AllowedPairs(t *testing.T) {
	allowed := []struct {
		from models.Status
		to   models.Status
	}{
		{models.StatusSubmitted, models.StatusUnderReview},
		{models.StatusUnderReview, models.StatusApproved},
		{models.StatusUnderReview, models.StatusRejected},
		{models.StatusUnderReview, models.StatusPendingInfo},
		{models.StatusPendingInfo, models.StatusUnderReview},
		{models.StatusPendingInfo, models.StatusClosed},
		{models.StatusApproved, models.StatusClosed},
		{models.StatusRejected, models.StatusClosed},
	}

	for _, pair := range allowed {
		assert.True(t, CanTransition(pair.from, pair.to),
			"expected %s -> %s to be allowed", pair.from, pair.to)
	}
}

func TestValidate_DisallowedPairsReturnTransitionError(t *testing.T) {
	for _, from := range allStatuses() {
		for _, to := range allStatuses() {
			if from == to || CanTransition(from, to) {
				continue
			}
			err := Validate(from, to)
			assert.Error(t, err, "expected %s -> %s to be rejected", from, to)

			var terr *TransitionError
			assert.True(t, errors.As(err, &terr))
			assert.Equal(t, from, terr.From)
			assert.Equal(t, to, terr.To)
		}
	}
}

func TestValidate_NoOpIsAccepted(t *testing.T) {
	for _, status := range allStatuses() {
		assert.NoError(t, Validate(status, status))
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.StatusApproved))
	assert.True(t, IsTerminal(models.StatusRejected))
	assert.True(t, IsTerminal(models.StatusClosed))
	assert.False(t, IsTerminal(models.StatusSubmitted))
	assert.False(t, IsTerminal(models.StatusUnderReview))
	assert.False(t, IsTerminal(models.StatusPendingInfo))
}

func TestClosedHasNoSuccessors(t *testing.T) {
	assert.Empty(t, Next(models.StatusClosed))
}

func TestOpenAndResolvedPartitionAllStatuses(t *testing.T) {
	seen := make(map[models.Status]bool)
	for _, s := range OpenStatuses() {
		assert.True(t, IsOpen(s))
		seen[s] = true
	}
	for _, s := range ResolvedStatuses() {
		assert.True(t, IsResolved(s))
		assert.False(t, seen[s], "status %s is both open and resolved", s)
		seen[s] = true
	}
	assert.Len(t, seen, len(allStatuses()))
}
