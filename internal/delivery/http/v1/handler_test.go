package v1_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"placementhub-backend/config"
	"placementhub-backend/internal/delivery/http/response"
	v1 "placementhub-backend/internal/delivery/http/v1"
	"placementhub-backend/internal/domain"
	"placementhub-backend/internal/usecase"
	"placementhub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	jwtSecret = "handler-test-secret-0123456789abcdef"
	studentID = "7b0e3c9e-3f4a-4a51-9d8e-1c2b3a4d5e6f"
	adminID   = "0f9e8d7c-6b5a-4c3d-8e2f-1a0b9c8d7e6f"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockAuthUC struct{ mock.Mock }

func (m *mockAuthUC) EnsureUserExists(ctx context.Context, user *domain.User) (*domain.User, error) {
	role := domain.RoleStudent
	if user.ID == adminID {
		role = domain.RoleAdmin
	}
	return &domain.User{ID: user.ID, Email: user.Email, Role: role}, nil
}
func (m *mockAuthUC) AssignRole(ctx context.Context, userID, role string) error {
	return m.Called(userID, role).Error(0)
}
func (m *mockAuthUC) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockApplicationUC struct{ mock.Mock }

func (m *mockApplicationUC) Apply(ctx context.Context, userID string, driveID int64, coverNote string) (*domain.Application, error) {
	args := m.Called(userID, driveID, coverNote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *mockApplicationUC) GetMyApplications(ctx context.Context, userID string) ([]domain.Application, error) {
	args := m.Called(userID)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Error(1)
}
func (m *mockApplicationUC) ListByDrive(ctx context.Context, driveID int64) ([]domain.Application, error) {
	args := m.Called(driveID)
	apps, _ := args.Get(0).([]domain.Application)
	return apps, args.Error(1)
}
func (m *mockApplicationUC) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Application, error) {
	args := m.Called(id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *mockApplicationUC) Export(ctx context.Context, driveID int64, format string) ([]byte, string, error) {
	args := m.Called(driveID, format)
	data, _ := args.Get(0).([]byte)
	return data, args.String(1), args.Error(2)
}

type stubHealth struct {
	healthy bool
}

func (s stubHealth) Check(ctx context.Context) (bool, map[string]string) {
	if s.healthy {
		return true, map[string]string{"status": "ok", "postgres": "up"}
	}
	return false, map[string]string{"status": "degraded", "postgres": "down"}
}

type testServer struct {
	engine *gin.Engine
	authUC *mockAuthUC
	appUC  *mockApplicationUC
}

func newServer(health v1.HealthChecker) *testServer {
	authUC := new(mockAuthUC)
	appUC := new(mockApplicationUC)

	cfg := &config.Config{
		SupabaseJWTSecret:        jwtSecret,
		FrontendURL:              "http://localhost:3000",
		RateLimitWindowSeconds:   60,
		RateLimitGlobalThreshold: 100000,
		RateLimitAIThreshold:     100000,
	}

	engine := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ApplicationUC: appUC,
		// Suitability, distance and simulated forecasts never touch a repository.
		ScoringUC: usecase.NewScoringUsecase(nil, nil, nil, nil),
		Health:    health,
		Config:    cfg,
	})
	return &testServer{engine: engine, authUC: authUC, appUC: appUC}
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"email": sub + "@example.edu",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func (s *testServer) do(method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func TestSuitabilityReturnsBareBody(t *testing.T) {
	s := newServer(nil)

	w := s.do(http.MethodPost, "/v1/suitability", "", map[string]interface{}{
		"skills":           []string{"Python", "React"},
		"gpa":              8.5,
		"required_skills":  []string{"Python", "React", "System Design"},
		"preferred_skills": []string{"Docker"},
		"gpa_min":          7.5,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"score":40,"matchedSkills":["Python","React"],"missingSkills":["System Design","Docker"]}`, w.Body.String())
}

func TestSuitabilityRejectsMalformedBody(t *testing.T) {
	s := newServer(nil)

	w := s.do(http.MethodPost, "/v1/suitability", "", map[string]interface{}{"gpa": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.RequestID)
}

func TestDistanceToDream(t *testing.T) {
	s := newServer(nil)

	w := s.do(http.MethodPost, "/v1/distance-to-dream", "", map[string]interface{}{
		"studentSkills":   []string{"Go", "SQL"},
		"studentGPA":      8,
		"requiredSkills":  []string{"go", "sql"},
		"preferredSkills": []string{},
		"minGPA":          7,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"distance":0}`, w.Body.String())
}

func TestSuitabilityAcceptsAnyNumericScale(t *testing.T) {
	s := newServer(nil)
	required := make([]string, 101)
	for i := range required {
		required[i] = fmt.Sprintf("skill-%d", i)
	}

	w := s.do(http.MethodPost, "/v1/suitability", "", map[string]interface{}{
		"skills":          []string{"skill-1", "skill-2"},
		"gpa":             85,
		"required_skills": required,
		"gpa_min":         60,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Score float64 `json:"score"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.GreaterOrEqual(t, body.Score, 0.0)
	assert.LessOrEqual(t, body.Score, 100.0)
}

func TestDistanceToDreamKeepsPrecision(t *testing.T) {
	s := newServer(nil)

	w := s.do(http.MethodPost, "/v1/distance-to-dream", "", map[string]interface{}{
		"studentSkills":  []string{"Go"},
		"studentGPA":     8,
		"requiredSkills": []string{"Go", "SQL", "K8s"},
		"minGPA":         7,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var body v1.DistanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.InDelta(t, 100-0.7*(100.0/3)-20-10, body.Distance, 1e-9)
	assert.NotEqual(t, 46.67, body.Distance)
}

func TestDistanceToDreamWithoutMinimumGPA(t *testing.T) {
	s := newServer(nil)

	w := s.do(http.MethodPost, "/v1/distance-to-dream", "", map[string]interface{}{
		"studentSkills":  []string{"Go"},
		"studentGPA":     -2,
		"requiredSkills": []string{"Go"},
		"minGPA":         0,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"distance":20}`, w.Body.String())
}

func TestForecast(t *testing.T) {
	s := newServer(nil)
	body := map[string]interface{}{"gpa_min": 8.0, "total_students": 150}

	t.Run("requires auth", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/v1/forecast", "", body).Code)
	})

	t.Run("students are forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/v1/forecast", bearer(t, studentID), body).Code)
	})

	t.Run("simulated for admins", func(t *testing.T) {
		w := s.do(http.MethodPost, "/v1/forecast", bearer(t, adminID), body)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"gpaMin":8,"totalStudents":150,"eligibleStudents":45,"eligibleRatio":0.3,"mode":"simulated"}`, w.Body.String())
	})
}

func TestReadinessRejectsBadStudentID(t *testing.T) {
	s := newServer(nil)

	w := s.do(http.MethodGet, "/v1/readiness?studentId=not-a-uuid", bearer(t, studentID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApply(t *testing.T) {
	s := newServer(nil)

	t.Run("duplicate is a conflict", func(t *testing.T) {
		s.appUC.On("Apply", studentID, int64(7), "").Return(nil, apperror.Conflict("You have already applied to this drive")).Once()

		w := s.do(http.MethodPost, "/v1/drives/7/apply", bearer(t, studentID), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("created with cover note", func(t *testing.T) {
		s.appUC.On("Apply", studentID, int64(7), "hire me").
			Return(&domain.Application{ID: 3, DriveID: 7, StudentUserID: studentID, Status: domain.ApplicationStatusApplied}, nil).Once()

		w := s.do(http.MethodPost, "/v1/drives/7/apply", bearer(t, studentID), map[string]string{"cover_note": "hire me"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		w := s.do(http.MethodPost, "/v1/drives/abc/apply", bearer(t, studentID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("admins cannot apply", func(t *testing.T) {
		w := s.do(http.MethodPost, "/v1/drives/7/apply", bearer(t, adminID), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	s.appUC.AssertExpectations(t)
}

func TestAdminExport(t *testing.T) {
	s := newServer(nil)
	s.appUC.On("Export", int64(4), "csv").Return([]byte("a,b\n"), "drive_4_applications.csv", nil)

	w := s.do(http.MethodGet, "/v1/admin/drives/4/applications/export?format=csv", bearer(t, adminID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "attachment; filename=drive_4_applications.csv", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "a,b\n", w.Body.String())
}

func TestAdminStatusUpdateValidation(t *testing.T) {
	s := newServer(nil)

	w := s.do(http.MethodPatch, "/v1/admin/applications/9", bearer(t, adminID), map[string]string{"status": "applied"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	s.appUC.On("UpdateStatus", int64(9), "shortlisted").Return(nil, errors.New("db down")).Once()
	w = s.do(http.MethodPatch, "/v1/admin/applications/9", bearer(t, adminID), map[string]string{"status": "shortlisted"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAuthMe(t *testing.T) {
	s := newServer(nil)
	s.authUC.On("GetCurrentUser", studentID).Return(&domain.User{ID: studentID, Role: domain.RoleStudent}, nil)

	w := s.do(http.MethodGet, "/v1/auth/me", bearer(t, studentID), nil)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data domain.User `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, studentID, body.Data.ID)
}

func TestHealth(t *testing.T) {
	w := newServer(stubHealth{healthy: true}).do(http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = newServer(stubHealth{healthy: false}).do(http.MethodGet, "/v1/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
