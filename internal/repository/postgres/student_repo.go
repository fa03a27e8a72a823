package postgres

import (
	"context"
	"errors"
	"time"

	"placementhub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type studentRepo struct {
	db *pgxpool.Pool
}

func NewStudentRepository(db *pgxpool.Pool) domain.StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) GetByUserID(ctx context.Context, userID string) (*domain.StudentProfile, error) {
	query := `
		SELECT user_id, full_name, COALESCE(gpa, 0), COALESCE(branch, ''), COALESCE(graduation_year, 0),
		       COALESCE(skills, '{}'), COALESCE(resume_url, ''), COALESCE(github_url, ''), COALESCE(linkedin_url, ''),
		       profile_completeness, readiness_score, readiness_updated_at, created_at, updated_at
		FROM student_profiles
		WHERE user_id = $1`

	var p domain.StudentProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.FullName, &p.GPA, &p.Branch, &p.GraduationYear,
		pq.Array(&p.Skills), &p.ResumeURL, &p.GithubURL, &p.LinkedinURL,
		&p.ProfileCompleteness, &p.ReadinessScore, &p.ReadinessUpdatedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Upsert creates or replaces the editable profile fields. The readiness
// snapshot columns are owned by SaveReadinessSnapshot and left untouched.
func (r *studentRepo) Upsert(ctx context.Context, p *domain.StudentProfile) error {
	query := `
		INSERT INTO student_profiles (
			user_id, full_name, gpa, branch, graduation_year, skills,
			resume_url, github_url, linkedin_url, profile_completeness, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			gpa = EXCLUDED.gpa,
			branch = EXCLUDED.branch,
			graduation_year = EXCLUDED.graduation_year,
			skills = EXCLUDED.skills,
			resume_url = EXCLUDED.resume_url,
			github_url = EXCLUDED.github_url,
			linkedin_url = EXCLUDED.linkedin_url,
			profile_completeness = EXCLUDED.profile_completeness,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at, readiness_score, readiness_updated_at`

	return r.db.QueryRow(ctx, query,
		p.UserID, p.FullName, p.GPA, p.Branch, p.GraduationYear, pq.Array(p.Skills),
		p.ResumeURL, p.GithubURL, p.LinkedinURL, p.ProfileCompleteness, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.CreatedAt, &p.ReadinessScore, &p.ReadinessUpdatedAt)
}

func (r *studentRepo) SaveReadinessSnapshot(ctx context.Context, userID string, score float64, at time.Time) error {
	query := `UPDATE student_profiles SET readiness_score = $2, readiness_updated_at = $3 WHERE user_id = $1`
	_, err := r.db.Exec(ctx, query, userID, score, at)
	return err
}

func (r *studentRepo) Count(ctx context.Context, filter domain.StudentFilter) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM student_profiles
		WHERE (cardinality($1::text[]) = 0 OR LOWER(branch) = ANY($1::text[]))
		  AND ($2::numeric IS NULL OR gpa >= $2::numeric)`

	var total int64
	err := r.db.QueryRow(ctx, query, pq.Array(lowerAll(filter.Branches)), filter.MinGPA).Scan(&total)
	return total, err
}
