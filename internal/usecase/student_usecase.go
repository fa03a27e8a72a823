package usecase

import (
	"context"
	"strings"
	"time"

	"placementhub-backend/internal/domain"
	"placementhub-backend/internal/scoring"
	"placementhub-backend/pkg/apperror"
	"placementhub-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type studentUsecase struct {
	repo     domain.StudentRepository
	validate *validator.Validate
}

func NewStudentUsecase(repo domain.StudentRepository, validate *validator.Validate) domain.StudentUsecase {
	return &studentUsecase{
		repo:     repo,
		validate: validate,
	}
}

func (u *studentUsecase) GetProfile(ctx context.Context, userID string) (*domain.StudentProfile, error) {
	// Security: Ownership Check
	ctxUserID, role := domain.Caller(ctx)
	if ctxUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != userID && role != domain.RoleAdmin {
		return nil, apperror.Forbidden("You can only view your own profile")
	}

	profile, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Student profile not found")
	}
	return profile, nil
}

// UpdateProfile creates or replaces the caller's profile and recomputes its completeness.
func (u *studentUsecase) UpdateProfile(ctx context.Context, profile *domain.StudentProfile) (*domain.StudentProfile, error) {
	// Security: Verify context user matches profile user (IDOR prevention on update)
	ctxUserID, _ := domain.Caller(ctx)
	if ctxUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	// Force the UserID to be the context user, ensuring they can't update someone else's profile
	profile.UserID = ctxUserID
	profile.FullName = strings.TrimSpace(profile.FullName)
	profile.Branch = strings.TrimSpace(profile.Branch)
	profile.Skills = dedupeSkills(profile.Skills)

	if err := u.validate.Struct(profile); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	profile.ProfileCompleteness = scoring.ProfileCompleteness(profileSignals(profile))

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := u.repo.Upsert(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// profileSignals projects a stored profile onto the readiness inputs.
// A nil profile yields zero signals.
func profileSignals(p *domain.StudentProfile) scoring.ProfileSignals {
	if p == nil {
		return scoring.ProfileSignals{}
	}
	return scoring.ProfileSignals{
		GPA:            p.GPA,
		SkillsCount:    len(p.Skills),
		Branch:         p.Branch,
		GraduationYear: p.GraduationYear,
		ResumeURL:      p.ResumeURL,
		GithubURL:      p.GithubURL,
		LinkedinURL:    p.LinkedinURL,
	}
}

// dedupeSkills trims entries and drops case-insensitive repeats, keeping first spelling.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
