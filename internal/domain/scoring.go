package domain

import (
	"context"

	"placementhub-backend/internal/scoring"
)

// ForecastRequest asks how many students clear a GPA floor. With
// TotalStudents set the fixed-bucket simulation is used; otherwise the
// real student population is counted.
type ForecastRequest struct {
	GPAMin        float64  `json:"gpa_min" binding:"gpa"`
	TotalStudents *int     `json:"total_students" binding:"omitempty,gte=0,lte=1000000"`
	Branches      []string `json:"branches" binding:"omitempty,max=20"`
}

// Forecast modes
const (
	ForecastModeSimulated = "simulated"
	ForecastModeActual    = "actual"
)

type ForecastResult struct {
	GPAMin           float64 `json:"gpaMin"`
	TotalStudents    int     `json:"totalStudents"`
	EligibleStudents int     `json:"eligibleStudents"`
	EligibleRatio    float64 `json:"eligibleRatio"`
	Mode             string  `json:"mode"`
}

type ScoringUsecase interface {
	Suitability(in scoring.SuitabilityInput) scoring.MatchResult
	DistanceToDream(in scoring.DistanceInput) float64
	// Readiness recomputes the student's score and persists it as the latest snapshot.
	Readiness(ctx context.Context, studentID string) (*scoring.Readiness, error)
	MatchDrive(ctx context.Context, userID string, driveID int64) (*scoring.MatchResult, error)
	Forecast(ctx context.Context, req ForecastRequest) (*ForecastResult, error)
}
