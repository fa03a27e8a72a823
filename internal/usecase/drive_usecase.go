package usecase

import (
	"context"
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"placementhub-backend/internal/domain"
	"placementhub-backend/pkg/apperror"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	// Shadow profiles below this sample size would expose individual students.
	minShadowSample = 3
	maxCommonSkills = 10
)

type driveUsecase struct {
	driveRepo  domain.DriveRepository
	shadowRepo domain.ShadowRepository
}

func NewDriveUsecase(driveRepo domain.DriveRepository, shadowRepo domain.ShadowRepository) domain.DriveUsecase {
	return &driveUsecase{
		driveRepo:  driveRepo,
		shadowRepo: shadowRepo,
	}
}

func (u *driveUsecase) CreateDrive(ctx context.Context, drive *domain.Drive) error {
	userID, err := requireAdmin(ctx, "Only admins can create drives")
	if err != nil {
		return err
	}

	if drive.Status == "" {
		drive.Status = domain.DriveStatusDraft
	}
	if err := validateDrive(drive); err != nil {
		return err
	}

	drive.CreatedBy = userID
	drive.CreatedAt = time.Now()
	drive.UpdatedAt = drive.CreatedAt

	if err := u.driveRepo.Create(ctx, drive); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// GetDrive hides unpublished drives from students.
func (u *driveUsecase) GetDrive(ctx context.Context, id int64) (*domain.Drive, error) {
	drive, err := u.driveRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Drive not found")
		}
		return nil, err
	}

	if _, role := domain.Caller(ctx); role != domain.RoleAdmin && drive.Status == domain.DriveStatusDraft {
		return nil, apperror.NotFound("Drive not found")
	}
	return drive, nil
}

// ListDrives returns one page of drives. Students only ever see published drives.
func (u *driveUsecase) ListDrives(ctx context.Context, status string, page, pageSize int) (*domain.PaginatedResult[domain.Drive], error) {
	if _, role := domain.Caller(ctx); role != domain.RoleAdmin {
		status = domain.DriveStatusPublished
	} else if status != "" && !validDriveStatus(status) {
		return nil, apperror.BadRequest("Status must be draft, published or closed")
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	offset := (page - 1) * pageSize

	drives, total, err := u.driveRepo.Fetch(ctx, status, pageSize, offset)
	if err != nil {
		return nil, err
	}

	return &domain.PaginatedResult[domain.Drive]{
		Data:       drives,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}

func (u *driveUsecase) UpdateDrive(ctx context.Context, drive *domain.Drive) error {
	if _, err := requireAdmin(ctx, "Only admins can update drives"); err != nil {
		return err
	}

	existing, err := u.driveRepo.GetByID(ctx, drive.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Drive not found")
		}
		return err
	}

	if drive.Status == "" {
		drive.Status = existing.Status
	}
	if err := validateDrive(drive); err != nil {
		return err
	}

	drive.CreatedBy = existing.CreatedBy
	drive.CreatedAt = existing.CreatedAt
	drive.UpdatedAt = time.Now()

	return u.driveRepo.Update(ctx, drive)
}

func (u *driveUsecase) DeleteDrive(ctx context.Context, id int64) error {
	if _, err := requireAdmin(ctx, "Only admins can delete drives"); err != nil {
		return err
	}
	if err := u.driveRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Drive not found")
		}
		return err
	}
	return nil
}

// ShadowProfile summarizes students previously selected in drives that share
// required skills with this one. Small samples return only their size.
func (u *driveUsecase) ShadowProfile(ctx context.Context, driveID int64) (*domain.ShadowProfile, error) {
	drive, err := u.GetDrive(ctx, driveID)
	if err != nil {
		return nil, err
	}

	profile := &domain.ShadowProfile{
		DriveID:      drive.ID,
		CommonSkills: []domain.SkillCount{},
		Branches:     map[string]int{},
	}

	records, err := u.shadowRepo.SelectedWithSkills(ctx, drive.RequiredSkills)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	profile.SampleSize = len(records)
	if len(records) < minShadowSample {
		return profile, nil
	}
	profile.Sufficient = true

	var gpaSum float64
	profile.MinGPA = records[0].GPA
	skillCounts := map[string]int{}
	for _, rec := range records {
		gpaSum += rec.GPA
		if rec.GPA < profile.MinGPA {
			profile.MinGPA = rec.GPA
		}
		if branch := strings.TrimSpace(rec.Branch); branch != "" {
			profile.Branches[branch]++
		}
		seen := map[string]bool{}
		for _, s := range rec.Skills {
			key := strings.ToLower(strings.TrimSpace(s))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			skillCounts[key]++
		}
	}
	profile.AverageGPA = math.Round(gpaSum/float64(len(records))*100) / 100

	for skill, count := range skillCounts {
		profile.CommonSkills = append(profile.CommonSkills, domain.SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(profile.CommonSkills, func(i, j int) bool {
		a, b := profile.CommonSkills[i], profile.CommonSkills[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Skill < b.Skill
	})
	if len(profile.CommonSkills) > maxCommonSkills {
		profile.CommonSkills = profile.CommonSkills[:maxCommonSkills]
	}

	return profile, nil
}

func validateDrive(d *domain.Drive) error {
	d.CompanyName = strings.TrimSpace(d.CompanyName)
	d.Title = strings.TrimSpace(d.Title)
	d.RequiredSkills = dedupeSkills(d.RequiredSkills)
	d.PreferredSkills = dedupeSkills(d.PreferredSkills)
	d.EligibleBranches = dedupeSkills(d.EligibleBranches)

	if d.Title == "" {
		return apperror.BadRequest("Title is required")
	}
	if d.CompanyName == "" {
		return apperror.BadRequest("Company name is required")
	}
	if !validDriveStatus(d.Status) {
		return apperror.BadRequest("Status must be draft, published or closed")
	}
	if d.MinGPA < 0 || d.MinGPA > 10 {
		return apperror.BadRequest("Minimum GPA must be between 0 and 10")
	}
	if d.SalaryMin != nil && d.SalaryMax != nil && *d.SalaryMin > *d.SalaryMax {
		return apperror.BadRequest("SalaryMin cannot be greater than SalaryMax")
	}
	if d.DriveDate != nil && d.Deadline != nil && d.Deadline.After(*d.DriveDate) {
		return apperror.BadRequest("Deadline cannot be after the drive date")
	}
	return nil
}

func validDriveStatus(status string) bool {
	switch status {
	case domain.DriveStatusDraft, domain.DriveStatusPublished, domain.DriveStatusClosed:
		return true
	}
	return false
}

// requireAdmin returns the caller's id when the caller is an admin.
func requireAdmin(ctx context.Context, message string) (string, error) {
	userID, role := domain.Caller(ctx)
	if userID == "" {
		return "", apperror.Unauthorized("User not authenticated")
	}
	if role != domain.RoleAdmin {
		return "", apperror.Forbidden(message)
	}
	return userID, nil
}
