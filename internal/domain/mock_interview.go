package domain

import (
	"context"
	"time"
)

// MockInterview is one answered practice question and its evaluation.
type MockInterview struct {
	ID            int64     `json:"id"`
	StudentUserID string    `json:"student_user_id"`
	Role          string    `json:"role"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	Score         float64   `json:"score"`
	Feedback      string    `json:"feedback"`
	Completed     bool      `json:"completed"`
	CreatedAt     time.Time `json:"created_at"`
}

// MockInterviewStats summarizes completed mock interviews of one student.
type MockInterviewStats struct {
	Completed    int
	AverageScore float64
}

type MockInterviewRepository interface {
	Create(ctx context.Context, m *MockInterview) error
	ListByUserID(ctx context.Context, userID string, limit int) ([]MockInterview, error)
	StatsByUserID(ctx context.Context, userID string) (MockInterviewStats, error)
}
