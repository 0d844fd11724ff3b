package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chamberhq/services-portal-api/internal/dao"
	"github.com/chamberhq/services-portal-api/internal/models"
	"github.com/chamberhq/services-portal-api/internal/sla"
	"github.com/chamberhq/services-portal-api/internal/workflow"
	"github.com/chamberhq/services-portal-api/pkg/utils"
)

const resolutionWindowDays = 30

// StatsService computes the operations dashboard tiles. All aggregates are
// derived fresh per read; nothing is cached.
type StatsService struct {
	applicationDAO *dao.ApplicationDAO
	legacyDAO      *dao.LegacyDAO
	logger         *logrus.Logger
}

// NewStatsService creates a new stats service instance
func NewStatsService(applicationDAO *dao.ApplicationDAO, legacyDAO *dao.LegacyDAO, logger *logrus.Logger) *StatsService {
	return &StatsService{
		applicationDAO: applicationDAO,
		legacyDAO:      legacyDAO,
		logger:         logger,
	}
}

// GetStats computes the dashboard tile values at the given instant
func (s *StatsService) GetStats(ctx context.Context, now time.Time) (*models.StatsResponse, error) {
	totalOpen, err := s.applicationDAO.CountWithStatuses(ctx, workflow.OpenStatuses())
	if err != nil {
		return nil, fmt.Errorf("failed to count open applications: %w", err)
	}

	legacyByStatus, err := s.legacyDAO.CountByStatusNotInBase(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to count legacy applications: %w", err)
	}
	for rawStatus, count := range legacyByStatus {
		if workflow.IsOpen(models.NormalizeLegacyStatus(models.Status(rawStatus))) {
			totalOpen += count
		}
	}

	pendingReview, err := s.applicationDAO.CountWithStatuses(ctx, []models.Status{models.StatusSubmitted, models.StatusUnderReview})
	if err != nil {
		return nil, fmt.Errorf("failed to count pending applications: %w", err)
	}
	for rawStatus, count := range legacyByStatus {
		switch models.NormalizeLegacyStatus(models.Status(rawStatus)) {
		case models.StatusSubmitted, models.StatusUnderReview:
			pendingReview += count
		}
	}

	resolvedToday, err := s.applicationDAO.CountResolvedSince(ctx, utils.StartOfDayMillis(now))
	if err != nil {
		return nil, fmt.Errorf("failed to count resolved applications: %w", err)
	}

	windowStart := utils.DaysAgoMillis(now, resolutionWindowDays)
	pairs, err := s.applicationDAO.GetResolutionPairsSince(ctx, windowStart)
	if err != nil {
		return nil, fmt.Errorf("failed to get resolution pairs: %w", err)
	}

	durations := make([]float64, 0, len(pairs))
	for _, pair := range pairs {
		durations = append(durations, float64(pair.ReviewedTime-pair.SubmittedTime)/float64(24*time.Hour/time.Millisecond))
	}
	avg := sla.AverageResolutionDays(durations)

	oldest, err := s.applicationDAO.GetOldestUnresolvedTime(ctx, workflow.OpenStatuses())
	if err != nil {
		return nil, fmt.Errorf("failed to get oldest unresolved time: %w", err)
	}

	// Legacy records age too; the legacy table stores raw status names, so the
	// open set includes the pre-migration spelling of PENDING_INFO
	legacyOpen := append(workflow.OpenStatuses(), models.LegacyStatusCorrections)
	legacyOldest, err := s.legacyDAO.GetOldestOpenTimeNotInBase(ctx, legacyOpen)
	if err != nil {
		return nil, fmt.Errorf("failed to get oldest open legacy time: %w", err)
	}
	if legacyOldest != nil && (oldest == nil || *legacyOldest < *oldest) {
		oldest = legacyOldest
	}

	var oldestTime *time.Time
	if oldest != nil {
		t := utils.MillisToTime(*oldest)
		oldestTime = &t
	}

	return &models.StatsResponse{
		TotalOpen:            totalOpen,
		PendingReview:        pendingReview,
		ResolvedToday:        resolvedToday,
		AvgResolutionDays:    avg,
		AvgResolutionDisplay: sla.FormatAverageResolution(avg),
		AgingBucket:          string(sla.CohortBucket(oldestTime, now)),
	}, nil
}
