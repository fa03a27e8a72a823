package domain

import (
	"context"
	"time"
)

// PlacementAnalytics feeds the admin dashboard
type PlacementAnalytics struct {
	TotalStudents         int64            `json:"totalStudents"`
	TotalDrives           int64            `json:"totalDrives"`
	DrivesByStatus        map[string]int64 `json:"drivesByStatus"`
	TotalApplications     int64            `json:"totalApplications"`
	ApplicationsByStatus  map[string]int64 `json:"applicationsByStatus"`
	PlacedStudents        int64            `json:"placedStudents"`
	PlacementRate         float64          `json:"placementRate"`
	AverageReadiness      float64          `json:"averageReadiness"`
	MockInterviewsLast30d int64            `json:"mockInterviewsLast30d"`
	GeneratedAt           time.Time        `json:"generatedAt"`
}

type AnalyticsRepository interface {
	// GetAnalytics fills the raw counts; derived rates are left to the usecase.
	GetAnalytics(ctx context.Context, since time.Time) (*PlacementAnalytics, error)
}

type AnalyticsUsecase interface {
	GetAnalytics(ctx context.Context) (*PlacementAnalytics, error)
}
