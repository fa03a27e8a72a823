package postgres

import (
	"context"
	"errors"
	"time"

	"placementhub-backend/internal/domain"
	"placementhub-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The (drive_id, student_user_id) unique
// index backs the duplicate check done by the usecase.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (drive_id, student_user_id, status, cover_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationStatusApplied
	}

	err := r.db.QueryRow(ctx, query,
		app.DriveID,
		app.StudentUserID,
		app.Status,
		app.CoverNote,
		app.CreatedAt,
		app.UpdatedAt,
	).Scan(&app.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgUniqueViolation:
				return apperror.Conflict("You have already applied to this drive")
			case pgForeignKeyViolation:
				return apperror.NotFound("Drive not found")
			}
		}
		return err
	}
	return nil
}

// GetByID retrieves an application by ID with joined student and drive data
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT
			a.id, a.drive_id, a.student_user_id, a.status, a.cover_note, a.created_at, a.updated_at,
			COALESCE(sp.full_name, u.email) as student_name,
			sp.gpa as student_gpa,
			d.title as drive_title,
			d.company_name
		FROM applications a
		LEFT JOIN users u ON a.student_user_id = u.id
		LEFT JOIN student_profiles sp ON a.student_user_id = sp.user_id
		LEFT JOIN drives d ON a.drive_id = d.id
		WHERE a.id = $1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.DriveID, &app.StudentUserID, &app.Status, &app.CoverNote, &app.CreatedAt, &app.UpdatedAt,
		&app.StudentName, &app.StudentGPA, &app.DriveTitle, &app.CompanyName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetByDriveID retrieves all applications for a drive with joined student data
func (r *applicationRepo) GetByDriveID(ctx context.Context, driveID int64) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.drive_id, a.student_user_id, a.status, a.cover_note, a.created_at, a.updated_at,
			COALESCE(sp.full_name, u.email) as student_name,
			sp.gpa as student_gpa
		FROM applications a
		LEFT JOIN users u ON a.student_user_id = u.id
		LEFT JOIN student_profiles sp ON a.student_user_id = sp.user_id
		WHERE a.drive_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, driveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.DriveID, &app.StudentUserID, &app.Status, &app.CoverNote, &app.CreatedAt, &app.UpdatedAt,
			&app.StudentName, &app.StudentGPA,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// GetByUserID retrieves all applications for a student with drive titles
func (r *applicationRepo) GetByUserID(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.drive_id, a.student_user_id, a.status, a.cover_note, a.created_at, a.updated_at,
			d.title as drive_title,
			d.company_name
		FROM applications a
		LEFT JOIN drives d ON a.drive_id = d.id
		WHERE a.student_user_id = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applications := []domain.Application{}
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.DriveID, &app.StudentUserID, &app.Status, &app.CoverNote, &app.CreatedAt, &app.UpdatedAt,
			&app.DriveTitle, &app.CompanyName,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// CheckExists checks if an application already exists for the drive/student combination
func (r *applicationRepo) CheckExists(ctx context.Context, driveID int64, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE drive_id = $1 AND student_user_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, driveID, userID).Scan(&exists)
	return exists, err
}

// CountSince counts applications a student submitted at or after since
func (r *applicationRepo) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM applications WHERE student_user_id = $1 AND created_at >= $2`
	var count int
	err := r.db.QueryRow(ctx, query, userID, since).Scan(&count)
	return count, err
}

// UpdateStatus updates the status of an application and sets updated_at
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExportRows flattens every application of a drive for the spreadsheet export
func (r *applicationRepo) ExportRows(ctx context.Context, driveID int64) ([]domain.ApplicationExportRow, error) {
	query := `
		SELECT
			a.id,
			COALESCE(sp.full_name, ''),
			COALESCE(u.email, ''),
			COALESCE(sp.branch, ''),
			COALESCE(sp.gpa, 0),
			COALESCE(sp.graduation_year, 0),
			COALESCE(sp.skills, '{}'),
			sp.readiness_score,
			a.status,
			a.created_at
		FROM applications a
		LEFT JOIN users u ON a.student_user_id = u.id
		LEFT JOIN student_profiles sp ON a.student_user_id = sp.user_id
		WHERE a.drive_id = $1
		ORDER BY a.created_at ASC`

	rows, err := r.db.Query(ctx, query, driveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.ApplicationExportRow{}
	for rows.Next() {
		var row domain.ApplicationExportRow
		if err := rows.Scan(
			&row.ApplicationID, &row.StudentName, &row.Email, &row.Branch, &row.GPA,
			&row.GraduationYear, pq.Array(&row.Skills), &row.ReadinessScore, &row.Status, &row.AppliedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
