package usecase_test

import (
	"net/http"
	"testing"

	"placementhub-backend/internal/domain"
	"placementhub-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateDrive(t *testing.T) {
	t.Run("students cannot create drives", func(t *testing.T) {
		uc := usecase.NewDriveUsecase(new(MockDriveRepo), new(MockShadowRepo))
		err := uc.CreateDrive(studentCtx(studentID), &domain.Drive{Title: "SDE", CompanyName: "Acme"})
		requireAppError(t, err, http.StatusForbidden)
	})

	t.Run("defaults to draft and records the creator", func(t *testing.T) {
		repo := new(MockDriveRepo)
		uc := usecase.NewDriveUsecase(repo, new(MockShadowRepo))
		ctx := adminCtx()

		repo.On("Create", ctx, mock.MatchedBy(func(d *domain.Drive) bool {
			return d.Status == domain.DriveStatusDraft && d.CreatedBy == adminID
		})).Return(nil)

		drive := &domain.Drive{Title: " SDE Intern ", CompanyName: "Acme", RequiredSkills: []string{"Go", "go"}}
		require.NoError(t, uc.CreateDrive(ctx, drive))
		assert.Equal(t, "SDE Intern", drive.Title)
		assert.Equal(t, []string{"Go"}, drive.RequiredSkills)
		repo.AssertExpectations(t)
	})

	t.Run("rejects inverted salary range", func(t *testing.T) {
		low, high := 10.0, 5.0
		uc := usecase.NewDriveUsecase(new(MockDriveRepo), new(MockShadowRepo))
		err := uc.CreateDrive(adminCtx(), &domain.Drive{Title: "SDE", CompanyName: "Acme", SalaryMin: &low, SalaryMax: &high})
		requireAppError(t, err, http.StatusBadRequest)
	})
}

func TestListDrives(t *testing.T) {
	t.Run("students only see published drives", func(t *testing.T) {
		repo := new(MockDriveRepo)
		uc := usecase.NewDriveUsecase(repo, new(MockShadowRepo))
		ctx := studentCtx(studentID)

		repo.On("Fetch", ctx, domain.DriveStatusPublished, 10, 10).
			Return([]domain.Drive{{ID: 11}}, int64(21), nil)

		page, err := uc.ListDrives(ctx, domain.DriveStatusDraft, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 3, page.TotalPages)
		assert.Len(t, page.Data, 1)
	})

	t.Run("page size is capped", func(t *testing.T) {
		repo := new(MockDriveRepo)
		uc := usecase.NewDriveUsecase(repo, new(MockShadowRepo))
		ctx := adminCtx()

		repo.On("Fetch", ctx, "", 100, 0).Return([]domain.Drive{}, int64(0), nil)

		page, err := uc.ListDrives(ctx, "", 0, 500)
		require.NoError(t, err)
		assert.Equal(t, 100, page.PageSize)
		assert.Equal(t, 0, page.TotalPages)
	})

	t.Run("admin status filter is validated", func(t *testing.T) {
		uc := usecase.NewDriveUsecase(new(MockDriveRepo), new(MockShadowRepo))
		_, err := uc.ListDrives(adminCtx(), "archived", 1, 10)
		requireAppError(t, err, http.StatusBadRequest)
	})
}

func TestGetDriveHidesDrafts(t *testing.T) {
	repo := new(MockDriveRepo)
	uc := usecase.NewDriveUsecase(repo, new(MockShadowRepo))

	repo.On("GetByID", mock.Anything, int64(5)).Return(&domain.Drive{ID: 5, Status: domain.DriveStatusDraft}, nil)

	_, err := uc.GetDrive(studentCtx(studentID), 5)
	requireAppError(t, err, http.StatusNotFound)

	drive, err := uc.GetDrive(adminCtx(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), drive.ID)
}

func TestUpdateDriveKeepsCreator(t *testing.T) {
	repo := new(MockDriveRepo)
	uc := usecase.NewDriveUsecase(repo, new(MockShadowRepo))
	ctx := adminCtx()

	repo.On("GetByID", ctx, int64(3)).Return(&domain.Drive{ID: 3, Status: domain.DriveStatusPublished, CreatedBy: otherID}, nil)
	repo.On("Update", ctx, mock.MatchedBy(func(d *domain.Drive) bool {
		return d.CreatedBy == otherID && d.Status == domain.DriveStatusPublished
	})).Return(nil)

	require.NoError(t, uc.UpdateDrive(ctx, &domain.Drive{ID: 3, Title: "SDE", CompanyName: "Acme"}))
	repo.AssertExpectations(t)
}

func TestDeleteDriveNotFound(t *testing.T) {
	repo := new(MockDriveRepo)
	uc := usecase.NewDriveUsecase(repo, new(MockShadowRepo))
	ctx := adminCtx()

	repo.On("Delete", ctx, int64(9)).Return(domain.ErrNotFound)

	requireAppError(t, uc.DeleteDrive(ctx, 9), http.StatusNotFound)
}

func TestShadowProfile(t *testing.T) {
	drive := &domain.Drive{ID: 7, Status: domain.DriveStatusPublished, RequiredSkills: []string{"Go", "SQL"}}

	t.Run("small samples are suppressed", func(t *testing.T) {
		driveRepo, shadowRepo := new(MockDriveRepo), new(MockShadowRepo)
		uc := usecase.NewDriveUsecase(driveRepo, shadowRepo)
		ctx := studentCtx(studentID)

		driveRepo.On("GetByID", ctx, int64(7)).Return(drive, nil)
		shadowRepo.On("SelectedWithSkills", ctx, drive.RequiredSkills).Return([]domain.ShadowRecord{
			{GPA: 9.1, Branch: "CSE", Skills: []string{"Go"}},
			{GPA: 8.2, Branch: "ECE", Skills: []string{"SQL"}},
		}, nil)

		profile, err := uc.ShadowProfile(ctx, 7)
		require.NoError(t, err)
		assert.False(t, profile.Sufficient)
		assert.Equal(t, 2, profile.SampleSize)
		assert.Zero(t, profile.AverageGPA)
		assert.Empty(t, profile.CommonSkills)
		assert.Empty(t, profile.Branches)
	})

	t.Run("aggregates sufficient samples", func(t *testing.T) {
		driveRepo, shadowRepo := new(MockDriveRepo), new(MockShadowRepo)
		uc := usecase.NewDriveUsecase(driveRepo, shadowRepo)
		ctx := studentCtx(studentID)

		driveRepo.On("GetByID", ctx, int64(7)).Return(drive, nil)
		shadowRepo.On("SelectedWithSkills", ctx, drive.RequiredSkills).Return([]domain.ShadowRecord{
			{GPA: 9.0, Branch: "CSE", Skills: []string{"Go", "SQL", "go"}},
			{GPA: 8.0, Branch: "CSE", Skills: []string{"SQL", "Docker"}},
			{GPA: 7.5, Branch: "ECE", Skills: []string{"sql"}},
		}, nil)

		profile, err := uc.ShadowProfile(ctx, 7)
		require.NoError(t, err)
		assert.True(t, profile.Sufficient)
		assert.Equal(t, 3, profile.SampleSize)
		assert.Equal(t, 8.17, profile.AverageGPA)
		assert.Equal(t, 7.5, profile.MinGPA)
		assert.Equal(t, map[string]int{"CSE": 2, "ECE": 1}, profile.Branches)
		assert.Equal(t, []domain.SkillCount{
			{Skill: "sql", Count: 3},
			{Skill: "docker", Count: 1},
			{Skill: "go", Count: 1},
		}, profile.CommonSkills)
	})
}
