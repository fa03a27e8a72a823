package postgres

import (
	"context"
	"time"

	"placementhub-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type analyticsRepo struct {
	db *pgxpool.Pool
}

func NewAnalyticsRepository(db *pgxpool.Pool) domain.AnalyticsRepository {
	return &analyticsRepo{db: db}
}

// GetAnalytics fetches the raw dashboard counts
func (r *analyticsRepo) GetAnalytics(ctx context.Context, since time.Time) (*domain.PlacementAnalytics, error) {
	a := &domain.PlacementAnalytics{
		DrivesByStatus:       map[string]int64{},
		ApplicationsByStatus: map[string]int64{},
	}

	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(AVG(readiness_score), 0)::float8
		FROM student_profiles`).Scan(&a.TotalStudents, &a.AverageReadiness)
	if err != nil {
		return nil, err
	}

	if err := r.countByStatus(ctx, `SELECT status, COUNT(*) FROM drives GROUP BY status`, a.DrivesByStatus, &a.TotalDrives); err != nil {
		return nil, err
	}
	if err := r.countByStatus(ctx, `SELECT status, COUNT(*) FROM applications GROUP BY status`, a.ApplicationsByStatus, &a.TotalApplications); err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `SELECT COUNT(DISTINCT student_user_id) FROM applications WHERE status = $1`,
		domain.ApplicationStatusSelected).Scan(&a.PlacedStudents)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRow(ctx, `SELECT COUNT(*) FROM mock_interviews WHERE completed AND created_at >= $1`, since).
		Scan(&a.MockInterviewsLast30d)
	if err != nil {
		return nil, err
	}

	return a, nil
}

func (r *analyticsRepo) countByStatus(ctx context.Context, query string, into map[string]int64, total *int64) error {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int64
		if err := rows.Scan(&status, &n); err != nil {
			return err
		}
		into[status] = n
		*total += n
	}
	return rows.Err()
}
