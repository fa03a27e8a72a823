package postgres

import (
	"context"

	"placementhub-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type shadowRepo struct {
	db *pgxpool.Pool
}

func NewShadowRepository(db *pgxpool.Pool) domain.ShadowRepository {
	return &shadowRepo{db: db}
}

// SelectedWithSkills never returns identifying columns; each student appears once
// however many overlapping drives selected them.
func (r *shadowRepo) SelectedWithSkills(ctx context.Context, skills []string) ([]domain.ShadowRecord, error) {
	wanted := lowerAll(skills)
	if len(wanted) == 0 {
		return []domain.ShadowRecord{}, nil
	}

	query := `
		SELECT DISTINCT ON (sp.user_id)
			COALESCE(sp.gpa, 0), COALESCE(sp.branch, ''), COALESCE(sp.skills, '{}')
		FROM applications a
		JOIN drives d ON d.id = a.drive_id
		JOIN student_profiles sp ON sp.user_id = a.student_user_id
		WHERE a.status = $1
		  AND EXISTS (
			SELECT 1 FROM unnest(d.required_skills) rs WHERE LOWER(TRIM(rs)) = ANY($2::text[])
		  )
		ORDER BY sp.user_id`

	rows, err := r.db.Query(ctx, query, domain.ApplicationStatusSelected, pq.Array(wanted))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []domain.ShadowRecord{}
	for rows.Next() {
		var rec domain.ShadowRecord
		if err := rows.Scan(&rec.GPA, &rec.Branch, pq.Array(&rec.Skills)); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
