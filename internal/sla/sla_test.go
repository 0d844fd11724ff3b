package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestEvaluate_Buckets(t *testing.T) {
	now := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		daysAgo    int
		slaDays    *int
		wantBucket Bucket
	}{
		{"one day elapsed within a 2-day SLA", 1, intPtr(2), BucketHealthy},
		{"four days elapsed against a 2-day SLA", 4, intPtr(2), BucketWatch},
		{"eight days elapsed against a 2-day SLA", 8, intPtr(2), BucketCritical},
		{"submitted just now", 0, intPtr(2), BucketHealthy},
		{"exactly at the SLA boundary", 2, intPtr(2), BucketHealthy},
		{"no SLA defined, fresh record", 1, nil, BucketNA},
		{"no SLA defined, ancient record", 40, nil, BucketNA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitted := now.AddDate(0, 0, -tt.daysAgo)
			result := Evaluate(submitted, tt.slaDays, now)
			assert.Equal(t, tt.wantBucket, result.Bucket)
			assert.Equal(t, tt.daysAgo, result.DaysElapsed)
		})
	}
}

func TestEvaluate_RemainingAndOverdue(t *testing.T) {
	now := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)

	onTime := Evaluate(now.AddDate(0, 0, -1), intPtr(3), now)
	assert.NotNil(t, onTime.DaysRemaining)
	assert.Equal(t, 2, *onTime.DaysRemaining)
	assert.Nil(t, onTime.OverdueDays)
	assert.Equal(t, "2d remaining", onTime.Label)

	overdue := Evaluate(now.AddDate(0, 0, -5), intPtr(3), now)
	assert.Nil(t, overdue.DaysRemaining)
	assert.NotNil(t, overdue.OverdueDays)
	assert.Equal(t, 2, *overdue.OverdueDays)
	assert.Equal(t, "2d overdue", overdue.Label)
}

func TestEvaluate_NoSLANeverComputes(t *testing.T) {
	now := time.Now()
	result := Evaluate(now.AddDate(0, 0, -100), nil, now)
	assert.Equal(t, BucketNA, result.Bucket)
	assert.Equal(t, "N/A", result.Label)
	assert.Nil(t, result.DaysRemaining)
	assert.Nil(t, result.OverdueDays)
}

func TestCohortBucket(t *testing.T) {
	now := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, BucketHealthy, CohortBucket(nil, now))

	fresh := now.AddDate(0, 0, -1)
	assert.Equal(t, BucketHealthy, CohortBucket(&fresh, now))

	aging := now.AddDate(0, 0, -4)
	assert.Equal(t, BucketWatch, CohortBucket(&aging, now))

	stale := now.AddDate(0, 0, -8)
	assert.Equal(t, BucketCritical, CohortBucket(&stale, now))
}

func TestAverageResolutionDays(t *testing.T) {
	assert.Equal(t, 0.0, AverageResolutionDays(nil))
	assert.Equal(t, 0.0, AverageResolutionDays([]float64{}))
	assert.Equal(t, 2.0, AverageResolutionDays([]float64{1, 2, 3}))
	assert.Equal(t, 1.8, AverageResolutionDays([]float64{1.5, 2.1}))
	assert.Equal(t, 0.5, AverageResolutionDays([]float64{0.5}))
}

func TestFormatAverageResolution(t *testing.T) {
	assert.Equal(t, "—", FormatAverageResolution(0))
	assert.Equal(t, "2.5d", FormatAverageResolution(2.5))
	assert.Equal(t, "1.0d", FormatAverageResolution(1.0))
}
