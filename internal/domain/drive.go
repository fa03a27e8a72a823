package domain

import (
	"context"
	"time"
)

// Drive status constants
const (
	DriveStatusDraft     = "draft"
	DriveStatusPublished = "published"
	DriveStatusClosed    = "closed"
)

// Drive is a company's recruitment event together with its job requirements.
type Drive struct {
	ID               int64      `json:"id"`
	CompanyName      string     `json:"company_name"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	RequiredSkills   []string   `json:"required_skills"`
	PreferredSkills  []string   `json:"preferred_skills"`
	MinGPA           float64    `json:"min_gpa"`
	SalaryMin        *float64   `json:"salary_min,omitempty"`
	SalaryMax        *float64   `json:"salary_max,omitempty"`
	Location         string     `json:"location"`
	EligibleBranches []string   `json:"eligible_branches"`
	DriveDate        *time.Time `json:"drive_date,omitempty"`
	Deadline         *time.Time `json:"deadline,omitempty"`
	Status           string     `json:"status"`
	CreatedBy        string     `json:"created_by"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// AcceptsApplications reports whether the drive is published and still before its deadline.
func (d *Drive) AcceptsApplications(now time.Time) bool {
	if d.Status != DriveStatusPublished {
		return false
	}
	return d.Deadline == nil || now.Before(*d.Deadline)
}

type DriveRepository interface {
	Create(ctx context.Context, drive *Drive) error
	GetByID(ctx context.Context, id int64) (*Drive, error)
	// Fetch lists drives newest first; an empty status returns every status.
	Fetch(ctx context.Context, status string, limit, offset int) ([]Drive, int64, error)
	Update(ctx context.Context, drive *Drive) error
	Delete(ctx context.Context, id int64) error
}

type DriveUsecase interface {
	CreateDrive(ctx context.Context, drive *Drive) error
	GetDrive(ctx context.Context, id int64) (*Drive, error)
	ListDrives(ctx context.Context, status string, page, pageSize int) (*PaginatedResult[Drive], error)
	UpdateDrive(ctx context.Context, drive *Drive) error
	DeleteDrive(ctx context.Context, id int64) error
	ShadowProfile(ctx context.Context, driveID int64) (*ShadowProfile, error)
}

// ShadowRecord is one previously selected student, stripped of identity.
type ShadowRecord struct {
	GPA    float64
	Branch string
	Skills []string
}

// SkillCount is a skill and how many shadow records list it.
type SkillCount struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// ShadowProfile aggregates anonymized statistics about students selected in
// drives that share required skills with a given drive.
type ShadowProfile struct {
	DriveID      int64          `json:"driveId"`
	SampleSize   int            `json:"sampleSize"`
	Sufficient   bool           `json:"sufficient"`
	AverageGPA   float64        `json:"averageGpa"`
	MinGPA       float64        `json:"minGpa"`
	CommonSkills []SkillCount   `json:"commonSkills"`
	Branches     map[string]int `json:"branches"`
}

type ShadowRepository interface {
	// SelectedWithSkills returns students selected in any drive whose
	// required skills overlap skills (case-insensitive).
	SelectedWithSkills(ctx context.Context, skills []string) ([]ShadowRecord, error)
}
