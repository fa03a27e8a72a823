package postgres

import (
	"context"
	"time"

	"placementhub-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type mockInterviewRepo struct {
	db *pgxpool.Pool
}

func NewMockInterviewRepository(db *pgxpool.Pool) domain.MockInterviewRepository {
	return &mockInterviewRepo{db: db}
}

func (r *mockInterviewRepo) Create(ctx context.Context, m *domain.MockInterview) error {
	query := `INSERT INTO mock_interviews (student_user_id, role, question, answer, score, feedback, completed, created_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return r.db.QueryRow(ctx, query,
		m.StudentUserID, m.Role, m.Question, m.Answer, m.Score, m.Feedback, m.Completed, m.CreatedAt,
	).Scan(&m.ID)
}

func (r *mockInterviewRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]domain.MockInterview, error) {
	query := `SELECT id, student_user_id, role, question, answer, score, COALESCE(feedback, ''), completed, created_at
              FROM mock_interviews WHERE student_user_id = $1
              ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interviews := []domain.MockInterview{}
	for rows.Next() {
		var m domain.MockInterview
		if err := rows.Scan(&m.ID, &m.StudentUserID, &m.Role, &m.Question, &m.Answer, &m.Score, &m.Feedback, &m.Completed, &m.CreatedAt); err != nil {
			return nil, err
		}
		interviews = append(interviews, m)
	}
	return interviews, rows.Err()
}

func (r *mockInterviewRepo) StatsByUserID(ctx context.Context, userID string) (domain.MockInterviewStats, error) {
	query := `SELECT COUNT(*), COALESCE(AVG(score), 0)::float8
              FROM mock_interviews WHERE student_user_id = $1 AND completed`
	var stats domain.MockInterviewStats
	err := r.db.QueryRow(ctx, query, userID).Scan(&stats.Completed, &stats.AverageScore)
	return stats, err
}
