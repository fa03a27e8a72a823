package usecase_test

import (
	"bytes"
	"net/http"
	"strings"
	"testing"
	"time"

	"placementhub-backend/internal/domain"
	"placementhub-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type applicationFixture struct {
	apps     *MockApplicationRepo
	drives   *MockDriveRepo
	students *MockStudentRepo
	uc       domain.ApplicationUsecase
}

func newApplicationFixture() *applicationFixture {
	f := &applicationFixture{
		apps:     new(MockApplicationRepo),
		drives:   new(MockDriveRepo),
		students: new(MockStudentRepo),
	}
	f.uc = usecase.NewApplicationUsecase(f.apps, f.drives, f.students)
	return f
}

func openDrive() *domain.Drive {
	deadline := time.Now().Add(48 * time.Hour)
	return &domain.Drive{
		ID:               1,
		Title:            "SDE Intern",
		CompanyName:      "Acme",
		MinGPA:           7.0,
		EligibleBranches: []string{"CSE", "IT"},
		Deadline:         &deadline,
		Status:           domain.DriveStatusPublished,
	}
}

func TestApply(t *testing.T) {
	eligible := &domain.StudentProfile{UserID: studentID, GPA: 8.1, Branch: "cse"}

	t.Run("success", func(t *testing.T) {
		f := newApplicationFixture()
		ctx := studentCtx(studentID)

		f.drives.On("GetByID", ctx, int64(1)).Return(openDrive(), nil)
		f.students.On("GetByUserID", ctx, studentID).Return(eligible, nil)
		f.apps.On("CheckExists", ctx, int64(1), studentID).Return(false, nil)
		f.apps.On("Create", ctx, mock.AnythingOfType("*domain.Application")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Application).ID = 42 }).
			Return(nil)

		app, err := f.uc.Apply(ctx, studentID, 1, "  Keen to join  ")
		require.NoError(t, err)
		assert.Equal(t, int64(42), app.ID)
		assert.Equal(t, domain.ApplicationStatusApplied, app.Status)
		require.NotNil(t, app.CoverNote)
		assert.Equal(t, "Keen to join", *app.CoverNote)
		assert.Equal(t, "Acme", *app.CompanyName)
	})

	t.Run("unpublished drive", func(t *testing.T) {
		f := newApplicationFixture()
		ctx := studentCtx(studentID)
		drive := openDrive()
		drive.Status = domain.DriveStatusClosed
		f.drives.On("GetByID", ctx, int64(1)).Return(drive, nil)

		_, err := f.uc.Apply(ctx, studentID, 1, "")
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("deadline passed", func(t *testing.T) {
		f := newApplicationFixture()
		ctx := studentCtx(studentID)
		drive := openDrive()
		past := time.Now().Add(-time.Hour)
		drive.Deadline = &past
		f.drives.On("GetByID", ctx, int64(1)).Return(drive, nil)

		_, err := f.uc.Apply(ctx, studentID, 1, "")
		appErr := requireAppError(t, err, http.StatusBadRequest)
		assert.Contains(t, appErr.Message, "deadline")
	})

	t.Run("missing drive", func(t *testing.T) {
		f := newApplicationFixture()
		ctx := studentCtx(studentID)
		f.drives.On("GetByID", ctx, int64(1)).Return(nil, domain.ErrNotFound)

		_, err := f.uc.Apply(ctx, studentID, 1, "")
		requireAppError(t, err, http.StatusNotFound)
	})

	t.Run("no profile", func(t *testing.T) {
		f := newApplicationFixture()
		ctx := studentCtx(studentID)
		f.drives.On("GetByID", ctx, int64(1)).Return(openDrive(), nil)
		f.students.On("GetByUserID", ctx, studentID).Return(nil, nil)

		_, err := f.uc.Apply(ctx, studentID, 1, "")
		requireAppError(t, err, http.StatusForbidden)
	})

	t.Run("gpa below minimum", func(t *testing.T) {
		f := newApplicationFixture()
		ctx := studentCtx(studentID)
		f.drives.On("GetByID", ctx, int64(1)).Return(openDrive(), nil)
		f.students.On("GetByUserID", ctx, studentID).Return(&domain.StudentProfile{GPA: 6.5, Branch: "CSE"}, nil)

		_, err := f.uc.Apply(ctx, studentID, 1, "")
		appErr := requireAppError(t, err, http.StatusForbidden)
		assert.Contains(t, appErr.Message, "7.00")
	})

	t.Run("branch not eligible", func(t *testing.T) {
		f := newApplicationFixture()
		ctx := studentCtx(studentID)
		f.drives.On("GetByID", ctx, int64(1)).Return(openDrive(), nil)
		f.students.On("GetByUserID", ctx, studentID).Return(&domain.StudentProfile{GPA: 9, Branch: "MECH"}, nil)

		_, err := f.uc.Apply(ctx, studentID, 1, "")
		requireAppError(t, err, http.StatusForbidden)
	})

	t.Run("duplicate", func(t *testing.T) {
		f := newApplicationFixture()
		ctx := studentCtx(studentID)
		f.drives.On("GetByID", ctx, int64(1)).Return(openDrive(), nil)
		f.students.On("GetByUserID", ctx, studentID).Return(eligible, nil)
		f.apps.On("CheckExists", ctx, int64(1), studentID).Return(true, nil)

		_, err := f.uc.Apply(ctx, studentID, 1, "")
		requireAppError(t, err, http.StatusConflict)
		f.apps.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	t.Run("students are forbidden", func(t *testing.T) {
		f := newApplicationFixture()
		_, err := f.uc.UpdateStatus(studentCtx(studentID), 1, domain.ApplicationStatusSelected)
		requireAppError(t, err, http.StatusForbidden)
	})

	t.Run("rejects unknown target status", func(t *testing.T) {
		f := newApplicationFixture()
		_, err := f.uc.UpdateStatus(adminCtx(), 1, domain.ApplicationStatusApplied)
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("applied cannot jump to selected", func(t *testing.T) {
		f := newApplicationFixture()
		ctx := adminCtx()
		f.apps.On("GetByID", ctx, int64(1)).Return(&domain.Application{ID: 1, Status: domain.ApplicationStatusApplied}, nil)

		_, err := f.uc.UpdateStatus(ctx, 1, domain.ApplicationStatusSelected)
		requireAppError(t, err, http.StatusConflict)
	})

	t.Run("applied to shortlisted", func(t *testing.T) {
		f := newApplicationFixture()
		ctx := adminCtx()
		f.apps.On("GetByID", ctx, int64(1)).Return(&domain.Application{ID: 1, Status: domain.ApplicationStatusApplied}, nil)
		f.apps.On("UpdateStatus", ctx, int64(1), domain.ApplicationStatusShortlisted).Return(nil)

		app, err := f.uc.UpdateStatus(ctx, 1, domain.ApplicationStatusShortlisted)
		require.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusShortlisted, app.Status)
	})

	t.Run("terminal statuses stay terminal", func(t *testing.T) {
		f := newApplicationFixture()
		ctx := adminCtx()
		f.apps.On("GetByID", ctx, int64(1)).Return(&domain.Application{ID: 1, Status: domain.ApplicationStatusRejected}, nil)

		_, err := f.uc.UpdateStatus(ctx, 1, domain.ApplicationStatusShortlisted)
		requireAppError(t, err, http.StatusConflict)
	})

	t.Run("missing application", func(t *testing.T) {
		f := newApplicationFixture()
		ctx := adminCtx()
		f.apps.On("GetByID", ctx, int64(1)).Return(nil, domain.ErrNotFound)

		_, err := f.uc.UpdateStatus(ctx, 1, domain.ApplicationStatusRejected)
		requireAppError(t, err, http.StatusNotFound)
	})
}

func TestExportApplications(t *testing.T) {
	score := 72.5
	rows := []domain.ApplicationExportRow{{
		ApplicationID:  9,
		StudentName:    "Asha Rao",
		Email:          "asha@example.edu",
		Branch:         "CSE",
		GPA:            8.4,
		GraduationYear: 2026,
		Skills:         []string{"Go", "SQL"},
		ReadinessScore: &score,
		Status:         domain.ApplicationStatusShortlisted,
		AppliedAt:      time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}}

	setup := func() *applicationFixture {
		f := newApplicationFixture()
		f.drives.On("GetByID", mock.Anything, int64(1)).Return(openDrive(), nil)
		f.apps.On("ExportRows", mock.Anything, int64(1)).Return(rows, nil)
		return f
	}

	t.Run("csv", func(t *testing.T) {
		f := setup()
		data, filename, err := f.uc.Export(adminCtx(), 1, "csv")
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(filename, ".csv"))

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "APPLICATION ID,FULL NAME,EMAIL"))
		assert.Equal(t, `9,Asha Rao,asha@example.edu,CSE,8.4,2026,"Go, SQL",72.5,shortlisted,2026-03-01T10:00:00Z`, lines[1])
	})

	t.Run("xlsx by default", func(t *testing.T) {
		f := setup()
		data, filename, err := f.uc.Export(adminCtx(), 1, "")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(filename, "drive_1_applications_"))
		assert.True(t, strings.HasSuffix(filename, ".xlsx"))

		book, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer book.Close()

		header, err := book.GetCellValue("Applications", "B1")
		require.NoError(t, err)
		assert.Equal(t, "FULL NAME", header)

		name, err := book.GetCellValue("Applications", "B2")
		require.NoError(t, err)
		assert.Equal(t, "Asha Rao", name)
	})

	t.Run("formula-like text is quoted", func(t *testing.T) {
		hostile := rows[0]
		hostile.StudentName = "=1+1"
		hostile.Skills = []string{"+cmd", "SQL"}

		f := newApplicationFixture()
		f.drives.On("GetByID", mock.Anything, int64(1)).Return(openDrive(), nil)
		f.apps.On("ExportRows", mock.Anything, int64(1)).Return([]domain.ApplicationExportRow{hostile}, nil)

		data, _, err := f.uc.Export(adminCtx(), 1, "csv")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, `9,'=1+1,asha@example.edu,CSE,8.4,2026,"'+cmd, SQL",72.5,shortlisted,2026-03-01T10:00:00Z`, lines[1])

		data, _, err = f.uc.Export(adminCtx(), 1, "xlsx")
		require.NoError(t, err)
		book, err := excelize.OpenReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer book.Close()

		name, err := book.GetCellValue("Applications", "B2")
		require.NoError(t, err)
		assert.Equal(t, "'=1+1", name)
		skills, err := book.GetCellValue("Applications", "G2")
		require.NoError(t, err)
		assert.Equal(t, "'+cmd, SQL", skills)
	})

	t.Run("unknown format", func(t *testing.T) {
		f := newApplicationFixture()
		_, _, err := f.uc.Export(adminCtx(), 1, "pdf")
		requireAppError(t, err, http.StatusBadRequest)
	})

	t.Run("students are forbidden", func(t *testing.T) {
		f := newApplicationFixture()
		_, _, err := f.uc.Export(studentCtx(studentID), 1, "csv")
		requireAppError(t, err, http.StatusForbidden)
	})
}
