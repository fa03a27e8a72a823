package domain

import (
	"context"
	"time"
)

// Application status constants
const (
	ApplicationStatusApplied     = "applied"
	ApplicationStatusShortlisted = "shortlisted"
	ApplicationStatusSelected    = "selected"
	ApplicationStatusRejected    = "rejected"
)

// applicationTransitions lists the statuses reachable from each status.
var applicationTransitions = map[string][]string{
	ApplicationStatusApplied:     {ApplicationStatusShortlisted, ApplicationStatusRejected},
	ApplicationStatusShortlisted: {ApplicationStatusSelected, ApplicationStatusRejected},
}

// CanTransition reports whether an application may move from one status to another.
func CanTransition(from, to string) bool {
	for _, s := range applicationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Application represents a student's application to a drive
type Application struct {
	ID            int64     `json:"id"`
	DriveID       int64     `json:"drive_id"`
	StudentUserID string    `json:"student_user_id"`
	Status        string    `json:"status"` // applied → shortlisted → selected / rejected
	CoverNote     *string   `json:"cover_note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Joined data for list responses
	StudentName *string  `json:"student_name,omitempty"`
	StudentGPA  *float64 `json:"student_gpa,omitempty"`
	DriveTitle  *string  `json:"drive_title,omitempty"`
	CompanyName *string  `json:"company_name,omitempty"`
}

// ApplicationExportRow is one line of the admin spreadsheet export.
type ApplicationExportRow struct {
	ApplicationID  int64
	StudentName    string
	Email          string
	Branch         string
	GPA            float64
	GraduationYear int
	Skills         []string
	ReadinessScore *float64
	Status         string
	AppliedAt      time.Time
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByDriveID(ctx context.Context, driveID int64) ([]Application, error)
	GetByUserID(ctx context.Context, userID string) ([]Application, error)
	CheckExists(ctx context.Context, driveID int64, userID string) (bool, error)
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	ExportRows(ctx context.Context, driveID int64) ([]ApplicationExportRow, error)
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Student operations
	Apply(ctx context.Context, userID string, driveID int64, coverNote string) (*Application, error)
	GetMyApplications(ctx context.Context, userID string) ([]Application, error)

	// Admin operations
	ListByDrive(ctx context.Context, driveID int64) ([]Application, error)
	UpdateStatus(ctx context.Context, applicationID int64, status string) (*Application, error)
	Export(ctx context.Context, driveID int64, format string) ([]byte, string, error)
}
