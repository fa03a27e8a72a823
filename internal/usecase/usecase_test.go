package usecase_test

import (
	"context"
	"time"

	"placementhub-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

const (
	studentID = "6f1c2d7e-1b3a-4c5d-9e8f-0a1b2c3d4e5f"
	otherID   = "0b9e8d7c-6a5b-4c3d-8e2f-1a0b9c8d7e6f"
	adminID   = "a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"
)

func studentCtx(id string) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, id)
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleStudent)
}

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, adminID)
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleAdmin)
}

// Mock Repositories
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockStudentRepo struct {
	mock.Mock
}

func (m *MockStudentRepo) GetByUserID(ctx context.Context, userID string) (*domain.StudentProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentProfile), args.Error(1)
}
func (m *MockStudentRepo) Upsert(ctx context.Context, profile *domain.StudentProfile) error {
	return m.Called(ctx, profile).Error(0)
}
func (m *MockStudentRepo) SaveReadinessSnapshot(ctx context.Context, userID string, score float64, at time.Time) error {
	return m.Called(ctx, userID, score, at).Error(0)
}
func (m *MockStudentRepo) Count(ctx context.Context, filter domain.StudentFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockDriveRepo struct {
	mock.Mock
}

func (m *MockDriveRepo) Create(ctx context.Context, drive *domain.Drive) error {
	return m.Called(ctx, drive).Error(0)
}
func (m *MockDriveRepo) GetByID(ctx context.Context, id int64) (*domain.Drive, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Drive), args.Error(1)
}
func (m *MockDriveRepo) Fetch(ctx context.Context, status string, limit, offset int) ([]domain.Drive, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Drive), args.Get(1).(int64), args.Error(2)
}
func (m *MockDriveRepo) Update(ctx context.Context, drive *domain.Drive) error {
	return m.Called(ctx, drive).Error(0)
}
func (m *MockDriveRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockShadowRepo struct {
	mock.Mock
}

func (m *MockShadowRepo) SelectedWithSkills(ctx context.Context, skills []string) ([]domain.ShadowRecord, error) {
	args := m.Called(ctx, skills)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShadowRecord), args.Error(1)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByDriveID(ctx context.Context, driveID int64) ([]domain.Application, error) {
	args := m.Called(ctx, driveID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) CheckExists(ctx context.Context, driveID int64, userID string) (bool, error) {
	args := m.Called(ctx, driveID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	args := m.Called(ctx, userID, since)
	return args.Int(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *MockApplicationRepo) ExportRows(ctx context.Context, driveID int64) ([]domain.ApplicationExportRow, error) {
	args := m.Called(ctx, driveID)
	return args.Get(0).([]domain.ApplicationExportRow), args.Error(1)
}

type MockInterviewRepo struct {
	mock.Mock
}

func (m *MockInterviewRepo) Create(ctx context.Context, mi *domain.MockInterview) error {
	return m.Called(ctx, mi).Error(0)
}
func (m *MockInterviewRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]domain.MockInterview, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.MockInterview), args.Error(1)
}
func (m *MockInterviewRepo) StatsByUserID(ctx context.Context, userID string) (domain.MockInterviewStats, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.MockInterviewStats), args.Error(1)
}

type MockAnalyticsRepo struct {
	mock.Mock
}

func (m *MockAnalyticsRepo) GetAnalytics(ctx context.Context, since time.Time) (*domain.PlacementAnalytics, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlacementAnalytics), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type MockPrepCache struct {
	mock.Mock
}

func (m *MockPrepCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Bool(1), args.Error(2)
}
func (m *MockPrepCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}
