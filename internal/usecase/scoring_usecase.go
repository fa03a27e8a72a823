package usecase

import (
	"context"
	"errors"
	"math"
	"time"

	"placementhub-backend/internal/domain"
	"placementhub-backend/internal/scoring"
	"placementhub-backend/pkg/apperror"
	"placementhub-backend/pkg/logger"

	"github.com/google/uuid"
)

type scoringUsecase struct {
	studentRepo     domain.StudentRepository
	applicationRepo domain.ApplicationRepository
	mockRepo        domain.MockInterviewRepository
	driveRepo       domain.DriveRepository
	now             func() time.Time
}

func NewScoringUsecase(
	studentRepo domain.StudentRepository,
	applicationRepo domain.ApplicationRepository,
	mockRepo domain.MockInterviewRepository,
	driveRepo domain.DriveRepository,
) domain.ScoringUsecase {
	return &scoringUsecase{
		studentRepo:     studentRepo,
		applicationRepo: applicationRepo,
		mockRepo:        mockRepo,
		driveRepo:       driveRepo,
		now:             time.Now,
	}
}

func (u *scoringUsecase) Suitability(in scoring.SuitabilityInput) scoring.MatchResult {
	return scoring.Suitability(in)
}

func (u *scoringUsecase) DistanceToDream(in scoring.DistanceInput) float64 {
	return scoring.Distance(in)
}

// Readiness recomputes the placement readiness score from current data and
// stores it on the profile. An empty studentID means the caller.
func (u *scoringUsecase) Readiness(ctx context.Context, studentID string) (*scoring.Readiness, error) {
	callerID, role := domain.Caller(ctx)
	if callerID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if studentID == "" {
		studentID = callerID
	}
	if _, err := uuid.Parse(studentID); err != nil {
		return nil, apperror.BadRequest("Invalid student id")
	}
	if studentID != callerID && role != domain.RoleAdmin {
		return nil, apperror.Forbidden("You can only view your own readiness score")
	}

	profile, err := u.studentRepo.GetByUserID(ctx, studentID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	// Missing related rows contribute nothing; a failed read is treated the same.
	stats, err := u.mockRepo.StatsByUserID(ctx, studentID)
	if err != nil {
		logger.Log.Warn("Readiness: mock interview stats unavailable", "student_id", studentID, "error", err)
		stats = domain.MockInterviewStats{}
	}

	now := u.now()
	recent, err := u.applicationRepo.CountSince(ctx, studentID, now.AddDate(0, 0, -scoring.ApplicationDays))
	if err != nil {
		logger.Log.Warn("Readiness: application count unavailable", "student_id", studentID, "error", err)
		recent = 0
	}

	result := scoring.ComputeReadiness(scoring.ReadinessInput{
		Profile:                 profileSignals(profile),
		MockInterviewsCompleted: stats.Completed,
		MockInterviewAverage:    stats.AverageScore,
		RecentApplications:      recent,
	})

	if profile != nil {
		if err := u.studentRepo.SaveReadinessSnapshot(ctx, studentID, result.ReadinessScore, now); err != nil {
			logger.Log.Error("Readiness: failed to save snapshot", "student_id", studentID, "error", err)
		}
	}

	return &result, nil
}

// MatchDrive scores the caller's stored profile against a drive's requirements.
func (u *scoringUsecase) MatchDrive(ctx context.Context, userID string, driveID int64) (*scoring.MatchResult, error) {
	drive, err := u.driveRepo.GetByID(ctx, driveID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Drive not found")
		}
		return nil, err
	}
	if _, role := domain.Caller(ctx); role != domain.RoleAdmin && drive.Status == domain.DriveStatusDraft {
		return nil, apperror.NotFound("Drive not found")
	}

	profile, err := u.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.NotFound("Student profile not found")
	}

	result := scoring.Suitability(scoring.SuitabilityInput{
		Skills:          profile.Skills,
		GPA:             profile.GPA,
		RequiredSkills:  drive.RequiredSkills,
		PreferredSkills: drive.PreferredSkills,
		GPAMin:          drive.MinGPA,
	})
	return &result, nil
}

// Forecast estimates how many students clear a GPA floor. A caller supplied
// batch size runs the bucket simulation; otherwise real profiles are counted.
func (u *scoringUsecase) Forecast(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastResult, error) {
	if _, err := requireAdmin(ctx, "Only admins can run eligibility forecasts"); err != nil {
		return nil, err
	}
	if req.GPAMin < 0 || req.GPAMin > 10 {
		return nil, apperror.BadRequest("gpa_min must be between 0 and 10")
	}

	if req.TotalStudents != nil {
		total := *req.TotalStudents
		if total < 0 {
			return nil, apperror.BadRequest("total_students cannot be negative")
		}
		return &domain.ForecastResult{
			GPAMin:           req.GPAMin,
			TotalStudents:    total,
			EligibleStudents: scoring.ForecastEligible(req.GPAMin, total),
			EligibleRatio:    scoring.ForecastRatio(req.GPAMin),
			Mode:             domain.ForecastModeSimulated,
		}, nil
	}

	total, err := u.studentRepo.Count(ctx, domain.StudentFilter{Branches: req.Branches})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	gpaMin := req.GPAMin
	eligible, err := u.studentRepo.Count(ctx, domain.StudentFilter{Branches: req.Branches, MinGPA: &gpaMin})
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var ratio float64
	if total > 0 {
		ratio = math.Round(float64(eligible)/float64(total)*10000) / 10000
	}
	return &domain.ForecastResult{
		GPAMin:           req.GPAMin,
		TotalStudents:    int(total),
		EligibleStudents: int(eligible),
		EligibleRatio:    ratio,
		Mode:             domain.ForecastModeActual,
	}, nil
}
