package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"placementhub-backend/internal/domain"
	"placementhub-backend/pkg/apperror"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	driveRepo       domain.DriveRepository
	studentRepo     domain.StudentRepository
	now             func() time.Time
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	driveRepo domain.DriveRepository,
	studentRepo domain.StudentRepository,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		driveRepo:       driveRepo,
		studentRepo:     studentRepo,
		now:             time.Now,
	}
}

// Apply submits the student's application to a published drive they are eligible for
func (uc *applicationUsecase) Apply(ctx context.Context, userID string, driveID int64, coverNote string) (*domain.Application, error) {
	// 1. Validate drive exists and is open
	drive, err := uc.getDrive(ctx, driveID)
	if err != nil {
		return nil, err
	}
	if drive.Status != domain.DriveStatusPublished {
		return nil, apperror.BadRequest("Drive is not open for applications")
	}
	if !drive.AcceptsApplications(uc.now()) {
		return nil, apperror.BadRequest("Application deadline has passed")
	}

	// 2. Validate eligibility against the student profile
	profile, err := uc.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if profile == nil {
		return nil, apperror.Forbidden("Complete your profile before applying")
	}
	if profile.GPA < drive.MinGPA {
		return nil, apperror.Forbidden(fmt.Sprintf("Your GPA does not meet the minimum requirement of %.2f", drive.MinGPA))
	}
	if !branchEligible(drive.EligibleBranches, profile.Branch) {
		return nil, apperror.Forbidden("Your branch is not eligible for this drive")
	}

	// 3. Check for duplicate application
	exists, err := uc.applicationRepo.CheckExists(ctx, driveID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this drive")
	}

	// 4. Create application
	var coverNotePtr *string
	if note := strings.TrimSpace(coverNote); note != "" {
		coverNotePtr = &note
	}

	app := &domain.Application{
		DriveID:       driveID,
		StudentUserID: userID,
		CoverNote:     coverNotePtr,
		Status:        domain.ApplicationStatusApplied,
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.Internal(err)
	}

	app.DriveTitle = &drive.Title
	app.CompanyName = &drive.CompanyName
	return app, nil
}

// GetMyApplications returns all applications for the current user
func (uc *applicationUsecase) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	return uc.applicationRepo.GetByUserID(ctx, userID)
}

// ListByDrive returns all applications for a drive (admin only)
func (uc *applicationUsecase) ListByDrive(ctx context.Context, driveID int64) ([]domain.Application, error) {
	if _, err := requireAdmin(ctx, "Only admins can view drive applications"); err != nil {
		return nil, err
	}
	if _, err := uc.getDrive(ctx, driveID); err != nil {
		return nil, err
	}
	return uc.applicationRepo.GetByDriveID(ctx, driveID)
}

// UpdateStatus moves an application along applied → shortlisted → selected, or to rejected
func (uc *applicationUsecase) UpdateStatus(ctx context.Context, applicationID int64, status string) (*domain.Application, error) {
	if _, err := requireAdmin(ctx, "Only admins can update application status"); err != nil {
		return nil, err
	}

	// 1. Validate status
	validStatuses := map[string]bool{
		domain.ApplicationStatusShortlisted: true,
		domain.ApplicationStatusSelected:    true,
		domain.ApplicationStatusRejected:    true,
	}
	if !validStatuses[status] {
		return nil, apperror.BadRequest("Invalid status. Must be: shortlisted, selected, or rejected")
	}

	// 2. Get application
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, err
	}
	if app.Status == status {
		return app, nil
	}
	if !domain.CanTransition(app.Status, status) {
		return nil, apperror.Conflict(fmt.Sprintf("Cannot change application status from %s to %s", app.Status, status))
	}

	// 3. Update status (also updates updated_at in repository)
	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}
	app.Status = status
	app.UpdatedAt = uc.now()
	return app, nil
}

func (uc *applicationUsecase) getDrive(ctx context.Context, driveID int64) (*domain.Drive, error) {
	drive, err := uc.driveRepo.GetByID(ctx, driveID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Drive not found")
		}
		return nil, err
	}
	return drive, nil
}

// branchEligible treats an empty eligibility list as open to every branch
func branchEligible(eligible []string, branch string) bool {
	if len(eligible) == 0 {
		return true
	}
	branch = strings.TrimSpace(branch)
	for _, b := range eligible {
		if strings.EqualFold(strings.TrimSpace(b), branch) {
			return true
		}
	}
	return false
}
