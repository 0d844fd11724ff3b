package sla

import (
	"fmt"
	"math"
	"time"
)

// Bucket is the three-way aging signal rendered on status badges and
// dashboard tiles. N/A applies when a service kind has no defined SLA.
type Bucket string

const (
	BucketHealthy  Bucket = "healthy"
	BucketWatch    Bucket = "watch"
	BucketCritical Bucket = "critical"
	BucketNA       Bucket = "n/a"
)

// Aging thresholds in days. Watch covers items 3-7 days old past due,
// critical anything older than 7 days.
const (
	watchThresholdDays    = 3
	criticalThresholdDays = 7
)

// Result is the derived SLA signal for a single record
type Result struct {
	DaysElapsed   int
	DaysRemaining *int
	OverdueDays   *int
	Bucket        Bucket
	Label         string
}

// Evaluate derives the SLA signal for one record from its submission time and
// the per-service-kind SLA duration. A nil slaDays means the kind has no
// defined SLA and always yields the N/A bucket.
func Evaluate(submittedAt time.Time, slaDays *int, now time.Time) Result {
	elapsed := daysBetween(submittedAt, now)

	if slaDays == nil {
		return Result{
			DaysElapsed: elapsed,
			Bucket:      BucketNA,
			Label:       "N/A",
		}
	}

	remaining := *slaDays - elapsed
	if remaining >= 0 {
		return Result{
			DaysElapsed:   elapsed,
			DaysRemaining: &remaining,
			Bucket:        BucketHealthy,
			Label:         fmt.Sprintf("%dd remaining", remaining),
		}
	}

	overdue := -remaining
	bucket := BucketWatch
	if elapsed > criticalThresholdDays {
		bucket = BucketCritical
	}
	return Result{
		DaysElapsed: elapsed,
		OverdueDays: &overdue,
		Bucket:      bucket,
		Label:       fmt.Sprintf("%dd overdue", overdue),
	}
}

// CohortBucket derives the dashboard tile signal from the oldest unresolved
// item in a cohort. No pending items means healthy.
func CohortBucket(oldestSubmitted *time.Time, now time.Time) Bucket {
	if oldestSubmitted == nil {
		return BucketHealthy
	}
	age := daysBetween(*oldestSubmitted, now)
	switch {
	case age > criticalThresholdDays:
		return BucketCritical
	case age >= watchThresholdDays:
		return BucketWatch
	default:
		return BucketHealthy
	}
}

// AverageResolutionDays is the mean of per-record resolution durations in
// days, rounded to one decimal. An empty set yields 0.
func AverageResolutionDays(resolutionDays []float64) float64 {
	if len(resolutionDays) == 0 {
		return 0
	}
	var sum float64
	for _, d := range resolutionDays {
		sum += d
	}
	return math.Round(sum/float64(len(resolutionDays))*10) / 10
}

// FormatAverageResolution renders the aggregate for display; an empty cohort
// shows an em-dash rather than "0d".
func FormatAverageResolution(avg float64) string {
	if avg == 0 {
		return "—"
	}
	return fmt.Sprintf("%.1fd", avg)
}

func daysBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	return int(to.Sub(from).Hours() / 24)
}
