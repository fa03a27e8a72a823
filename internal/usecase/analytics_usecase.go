package usecase

import (
	"context"
	"math"
	"time"

	"placementhub-backend/internal/domain"
	"placementhub-backend/internal/scoring"
	"placementhub-backend/pkg/apperror"
)

type analyticsUsecase struct {
	repo domain.AnalyticsRepository
	now  func() time.Time
}

func NewAnalyticsUsecase(repo domain.AnalyticsRepository) domain.AnalyticsUsecase {
	return &analyticsUsecase{repo: repo, now: time.Now}
}

// GetAnalytics returns dashboard statistics with derived placement rate
func (u *analyticsUsecase) GetAnalytics(ctx context.Context) (*domain.PlacementAnalytics, error) {
	if _, err := requireAdmin(ctx, "Only admins can view analytics"); err != nil {
		return nil, err
	}

	now := u.now()
	stats, err := u.repo.GetAnalytics(ctx, now.AddDate(0, 0, -scoring.ApplicationDays))
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if stats.TotalStudents > 0 {
		stats.PlacementRate = round2(float64(stats.PlacedStudents) / float64(stats.TotalStudents) * 100)
	}
	stats.AverageReadiness = round2(stats.AverageReadiness)
	stats.GeneratedAt = now
	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
