package domain

import (
	"context"
	"time"
)

// StudentProfile is the placement profile of one student, keyed by Supabase user id.
type StudentProfile struct {
	UserID              string     `json:"user_id"`
	FullName            string     `json:"full_name" validate:"required,min=2,max=100,valid_name,no_emoji"`
	GPA                 float64    `json:"gpa" validate:"gpa"`
	Branch              string     `json:"branch" validate:"max=60"`
	GraduationYear      int        `json:"graduation_year" validate:"grad_year"`
	Skills              []string   `json:"skills" validate:"skill_list"`
	ResumeURL           string     `json:"resume_url" validate:"omitempty,url"`
	GithubURL           string     `json:"github_url" validate:"omitempty,url"`
	LinkedinURL         string     `json:"linkedin_url" validate:"omitempty,url"`
	ProfileCompleteness int        `json:"profile_completeness"`
	ReadinessScore      *float64   `json:"readiness_score,omitempty"`
	ReadinessUpdatedAt  *time.Time `json:"readiness_updated_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// StudentFilter narrows the student population for forecasts.
type StudentFilter struct {
	Branches []string
	MinGPA   *float64
}

type StudentRepository interface {
	// GetByUserID returns (nil, nil) when the student has no profile yet.
	GetByUserID(ctx context.Context, userID string) (*StudentProfile, error)
	Upsert(ctx context.Context, profile *StudentProfile) error
	// SaveReadinessSnapshot overwrites the stored score; last write wins.
	SaveReadinessSnapshot(ctx context.Context, userID string, score float64, at time.Time) error
	Count(ctx context.Context, filter StudentFilter) (int64, error)
}

type StudentUsecase interface {
	GetProfile(ctx context.Context, userID string) (*StudentProfile, error)
	UpdateProfile(ctx context.Context, profile *StudentProfile) (*StudentProfile, error)
}
