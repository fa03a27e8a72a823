package postgres

import (
	"context"
	"errors"

	"placementhub-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const driveColumns = `id, company_name, title, COALESCE(description, ''), COALESCE(required_skills, '{}'), COALESCE(preferred_skills, '{}'),
	min_gpa, salary_min, salary_max, COALESCE(location, ''), COALESCE(eligible_branches, '{}'), drive_date, deadline,
	status, created_by, created_at, updated_at`

type driveRepo struct {
	db *pgxpool.Pool
}

func NewDriveRepository(db *pgxpool.Pool) domain.DriveRepository {
	return &driveRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDrive(row rowScanner) (*domain.Drive, error) {
	var d domain.Drive
	err := row.Scan(
		&d.ID, &d.CompanyName, &d.Title, &d.Description, pq.Array(&d.RequiredSkills), pq.Array(&d.PreferredSkills),
		&d.MinGPA, &d.SalaryMin, &d.SalaryMax, &d.Location, pq.Array(&d.EligibleBranches), &d.DriveDate, &d.Deadline,
		&d.Status, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driveRepo) Create(ctx context.Context, d *domain.Drive) error {
	query := `INSERT INTO drives (company_name, title, description, required_skills, preferred_skills, min_gpa, salary_min, salary_max,
              location, eligible_branches, drive_date, deadline, status, created_by, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	return r.db.QueryRow(ctx, query,
		d.CompanyName, d.Title, d.Description, pq.Array(d.RequiredSkills), pq.Array(d.PreferredSkills), d.MinGPA,
		d.SalaryMin, d.SalaryMax, d.Location, pq.Array(d.EligibleBranches), d.DriveDate, d.Deadline,
		d.Status, d.CreatedBy, d.CreatedAt, d.UpdatedAt,
	).Scan(&d.ID)
}

func (r *driveRepo) GetByID(ctx context.Context, id int64) (*domain.Drive, error) {
	d, err := scanDrive(r.db.QueryRow(ctx, `SELECT `+driveColumns+` FROM drives WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *driveRepo) Fetch(ctx context.Context, status string, limit, offset int) ([]domain.Drive, int64, error) {
	query := `SELECT ` + driveColumns + ` FROM drives
              WHERE ($1 = '' OR status = $1)
              ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	drives := []domain.Drive{}
	for rows.Next() {
		d, err := scanDrive(rows)
		if err != nil {
			return nil, 0, err
		}
		drives = append(drives, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM drives WHERE ($1 = '' OR status = $1)`, status).Scan(&total); err != nil {
		return nil, 0, err
	}

	return drives, total, nil
}

func (r *driveRepo) Update(ctx context.Context, d *domain.Drive) error {
	query := `UPDATE drives SET company_name = $2, title = $3, description = $4, required_skills = $5, preferred_skills = $6,
              min_gpa = $7, salary_min = $8, salary_max = $9, location = $10, eligible_branches = $11, drive_date = $12,
              deadline = $13, status = $14, updated_at = $15
              WHERE id = $1`
	result, err := r.db.Exec(ctx, query,
		d.ID, d.CompanyName, d.Title, d.Description, pq.Array(d.RequiredSkills), pq.Array(d.PreferredSkills),
		d.MinGPA, d.SalaryMin, d.SalaryMax, d.Location, pq.Array(d.EligibleBranches), d.DriveDate,
		d.Deadline, d.Status, d.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *driveRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM drives WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
