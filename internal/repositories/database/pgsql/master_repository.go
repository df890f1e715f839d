package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolworks/fee_management_app/internal/apperrors"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	portsrepo "github.com/schoolworks/fee_management_app/internal/core/ports/repositories"
	"github.com/schoolworks/fee_management_app/internal/models"
	"github.com/schoolworks/fee_management_app/internal/utils/mapping"
)

// Master-data repositories. Branch, academic year and student rows are written by
// the admissions side of the system; the fee core only reads them.

type PgxBranchRepository struct {
	pool *pgxpool.Pool
}

// newPgxBranchRepository creates a new repository for branch lookups.
func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{pool: pool}
}

var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

// FindBranchByNameOrCode resolves a branch display name or short code.
func (r *PgxBranchRepository) FindBranchByNameOrCode(ctx context.Context, nameOrCode string) (*domain.Branch, error) {
	query := `
		SELECT branch_id, name, code, location_code, location_name
		FROM branches
		WHERE name = $1 OR code = $1
		LIMIT 1;
	`
	var m models.Branch
	err := r.pool.QueryRow(ctx, query, nameOrCode).Scan(
		&m.BranchID,
		&m.Name,
		&m.Code,
		&m.LocationCode,
		&m.LocationName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find branch %q: %w", nameOrCode, err)
	}

	branch := mapping.ToDomainBranch(m)
	return &branch, nil
}

type PgxAcademicYearRepository struct {
	pool *pgxpool.Pool
}

// newPgxAcademicYearRepository creates a new repository for academic year lookups.
func newPgxAcademicYearRepository(pool *pgxpool.Pool) portsrepo.AcademicYearRepositoryFacade {
	return &PgxAcademicYearRepository{pool: pool}
}

var _ portsrepo.AcademicYearRepositoryFacade = (*PgxAcademicYearRepository)(nil)

// FindAcademicYearByCode resolves a year code like "2025-2026".
func (r *PgxAcademicYearRepository) FindAcademicYearByCode(ctx context.Context, code string) (*domain.AcademicYear, error) {
	query := `
		SELECT academic_year_id, code
		FROM academic_years
		WHERE code = $1;
	`
	var m models.AcademicYear
	err := r.pool.QueryRow(ctx, query, code).Scan(&m.AcademicYearID, &m.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find academic year %q: %w", code, err)
	}

	year := mapping.ToDomainAcademicYear(m)
	return &year, nil
}

type PgxStudentRepository struct {
	pool *pgxpool.Pool
}

// newPgxStudentRepository creates a new repository for student lookups.
func newPgxStudentRepository(pool *pgxpool.Pool) portsrepo.StudentRepositoryFacade {
	return &PgxStudentRepository{pool: pool}
}

var _ portsrepo.StudentRepositoryFacade = (*PgxStudentRepository)(nil)

const studentColumns = `student_id, name, class_name, section, branch, location, academic_year, is_new_admission, status`

// FindStudentByID retrieves a student by its ID.
func (r *PgxStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = $1;`

	var m models.Student
	err := r.pool.QueryRow(ctx, query, studentID).Scan(
		&m.StudentID,
		&m.Name,
		&m.ClassName,
		&m.Section,
		&m.Branch,
		&m.Location,
		&m.AcademicYear,
		&m.IsNewAdmission,
		&m.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find student by ID %s: %w", studentID, err)
	}

	student := mapping.ToDomainStudent(m)
	return &student, nil
}

// FindStudentsByIDs retrieves students keyed by ID. Missing IDs are simply absent
// from the map, not an error.
func (r *PgxStudentRepository) FindStudentsByIDs(ctx context.Context, studentIDs []string) (map[string]domain.Student, error) {
	if len(studentIDs) == 0 {
		return map[string]domain.Student{}, nil
	}

	query := `SELECT ` + studentColumns + ` FROM students WHERE student_id = ANY($1);`

	rows, err := r.pool.Query(ctx, query, studentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query students by IDs: %w", err)
	}
	defer rows.Close()

	students := make(map[string]domain.Student, len(studentIDs))
	for rows.Next() {
		var m models.Student
		if err := rows.Scan(
			&m.StudentID,
			&m.Name,
			&m.ClassName,
			&m.Section,
			&m.Branch,
			&m.Location,
			&m.AcademicYear,
			&m.IsNewAdmission,
			&m.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student row: %w", err)
		}
		students[m.StudentID] = mapping.ToDomainStudent(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}

	return students, nil
}
