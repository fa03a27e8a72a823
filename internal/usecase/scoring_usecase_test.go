package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"placementhub-backend/internal/domain"
	"placementhub-backend/internal/scoring"
	"placementhub-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type scoringFixture struct {
	students *MockStudentRepo
	apps     *MockApplicationRepo
	mocks    *MockInterviewRepo
	drives   *MockDriveRepo
	uc       domain.ScoringUsecase
}

func newScoringFixture() *scoringFixture {
	f := &scoringFixture{
		students: new(MockStudentRepo),
		apps:     new(MockApplicationRepo),
		mocks:    new(MockInterviewRepo),
		drives:   new(MockDriveRepo),
	}
	f.uc = usecase.NewScoringUsecase(f.students, f.apps, f.mocks, f.drives)
	return f
}

func fullProfile() *domain.StudentProfile {
	return &domain.StudentProfile{
		UserID:         studentID,
		FullName:       "Asha Rao",
		GPA:            8.5,
		Branch:         "CSE",
		GraduationYear: 2026,
		Skills:         []string{"Python", "React", "Go", "SQL", "Docker"},
		ResumeURL:      "https://cdn.example.edu/asha.pdf",
		GithubURL:      "https://github.com/asha",
		LinkedinURL:    "https://linkedin.com/in/asha",
	}
}

func TestReadiness(t *testing.T) {
	t.Run("own score is computed and persisted", func(t *testing.T) {
		f := newScoringFixture()
		ctx := studentCtx(studentID)

		f.students.On("GetByUserID", ctx, studentID).Return(fullProfile(), nil)
		f.mocks.On("StatsByUserID", ctx, studentID).Return(domain.MockInterviewStats{Completed: 1, AverageScore: 70}, nil)
		f.apps.On("CountSince", ctx, studentID, mock.AnythingOfType("time.Time")).Return(5, nil)
		f.students.On("SaveReadinessSnapshot", ctx, studentID, 80.0, mock.AnythingOfType("time.Time")).Return(nil)

		r, err := f.uc.Readiness(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, 80.0, r.ReadinessScore)
		assert.Equal(t, scoring.Level{Label: "Highly Ready", Color: "green"}, r.Level)
		assert.Equal(t, scoring.Breakdown{ProfileCompleteness: 35, MockInterviews: 10, ApplicationActivity: 35}, r.Breakdown)
		f.students.AssertExpectations(t)
	})

	t.Run("students cannot read others", func(t *testing.T) {
		f := newScoringFixture()
		_, err := f.uc.Readiness(studentCtx(studentID), otherID)
		requireAppError(t, err, http.StatusForbidden)
	})

	t.Run("invalid student id", func(t *testing.T) {
		f := newScoringFixture()
		_, err := f.uc.Readiness(adminCtx(), "not-a-uuid")
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		f := newScoringFixture()
		_, err := f.uc.Readiness(context.Background(), studentID)
		requireAppError(t, err, http.StatusUnauthorized)
	})

	t.Run("missing rows count as zero and nothing is persisted", func(t *testing.T) {
		f := newScoringFixture()
		ctx := adminCtx()

		f.students.On("GetByUserID", ctx, otherID).Return(nil, nil)
		f.mocks.On("StatsByUserID", ctx, otherID).Return(domain.MockInterviewStats{}, errors.New("relation does not exist"))
		f.apps.On("CountSince", ctx, otherID, mock.Anything).Return(0, errors.New("timeout"))

		r, err := f.uc.Readiness(ctx, otherID)
		require.NoError(t, err)
		assert.Equal(t, 0.0, r.ReadinessScore)
		assert.Equal(t, "Getting Started", r.Level.Label)
		assert.NotEmpty(t, r.Tips)
		f.students.AssertNotCalled(t, "SaveReadinessSnapshot", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("profile read failure is a 500", func(t *testing.T) {
		f := newScoringFixture()
		ctx := studentCtx(studentID)
		f.students.On("GetByUserID", ctx, studentID).Return(nil, errors.New("connection reset"))

		_, err := f.uc.Readiness(ctx, studentID)
		requireAppError(t, err, http.StatusInternalServerError)
	})

	t.Run("snapshot failure does not fail the request", func(t *testing.T) {
		f := newScoringFixture()
		ctx := studentCtx(studentID)

		f.students.On("GetByUserID", ctx, studentID).Return(fullProfile(), nil)
		f.mocks.On("StatsByUserID", ctx, studentID).Return(domain.MockInterviewStats{}, nil)
		f.apps.On("CountSince", ctx, studentID, mock.Anything).Return(0, nil)
		f.students.On("SaveReadinessSnapshot", ctx, studentID, 35.0, mock.Anything).Return(errors.New("deadlock"))

		r, err := f.uc.Readiness(ctx, studentID)
		require.NoError(t, err)
		assert.Equal(t, 35.0, r.ReadinessScore)
	})
}

func TestMatchDrive(t *testing.T) {
	f := newScoringFixture()
	ctx := studentCtx(studentID)

	f.drives.On("GetByID", ctx, int64(4)).Return(&domain.Drive{
		ID:              4,
		Status:          domain.DriveStatusPublished,
		RequiredSkills:  []string{"Python", "React", "System Design"},
		PreferredSkills: []string{"Docker"},
		MinGPA:          7.5,
	}, nil)
	f.students.On("GetByUserID", ctx, studentID).Return(&domain.StudentProfile{Skills: []string{"Python", "React"}, GPA: 8.5}, nil)

	result, err := f.uc.MatchDrive(ctx, studentID, 4)
	require.NoError(t, err)
	assert.Equal(t, 40.0, result.Score)
	assert.Equal(t, []string{"Python", "React"}, result.MatchedSkills)
	assert.Equal(t, []string{"System Design", "Docker"}, result.MissingSkills)
}

func TestForecast(t *testing.T) {
	t.Run("simulation with explicit batch size", func(t *testing.T) {
		f := newScoringFixture()
		total := 150

		res, err := f.uc.Forecast(adminCtx(), domain.ForecastRequest{GPAMin: 8.0, TotalStudents: &total})
		require.NoError(t, err)
		assert.Equal(t, domain.ForecastResult{
			GPAMin:           8.0,
			TotalStudents:    150,
			EligibleStudents: 45,
			EligibleRatio:    0.3,
			Mode:             domain.ForecastModeSimulated,
		}, *res)
	})

	t.Run("actual counts when batch size omitted", func(t *testing.T) {
		f := newScoringFixture()
		ctx := adminCtx()
		branches := []string{"CSE"}

		f.students.On("Count", ctx, mock.MatchedBy(func(fl domain.StudentFilter) bool { return fl.MinGPA == nil })).Return(int64(200), nil)
		f.students.On("Count", ctx, mock.MatchedBy(func(fl domain.StudentFilter) bool {
			return fl.MinGPA != nil && *fl.MinGPA == 7.0 && len(fl.Branches) == 1
		})).Return(int64(50), nil)

		res, err := f.uc.Forecast(ctx, domain.ForecastRequest{GPAMin: 7.0, Branches: branches})
		require.NoError(t, err)
		assert.Equal(t, 200, res.TotalStudents)
		assert.Equal(t, 50, res.EligibleStudents)
		assert.Equal(t, 0.25, res.EligibleRatio)
		assert.Equal(t, domain.ForecastModeActual, res.Mode)
	})

	t.Run("empty population", func(t *testing.T) {
		f := newScoringFixture()
		ctx := adminCtx()
		f.students.On("Count", ctx, mock.Anything).Return(int64(0), nil)

		res, err := f.uc.Forecast(ctx, domain.ForecastRequest{GPAMin: 6})
		require.NoError(t, err)
		assert.Zero(t, res.EligibleRatio)
	})

	t.Run("admin only", func(t *testing.T) {
		f := newScoringFixture()
		_, err := f.uc.Forecast(studentCtx(studentID), domain.ForecastRequest{GPAMin: 6})
		requireAppError(t, err, http.StatusForbidden)
	})
}
