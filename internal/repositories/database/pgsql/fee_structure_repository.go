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

type PgxFeeStructureRepository struct {
	pool *pgxpool.Pool
}

// newPgxFeeStructureRepository creates a new repository for class fee templates
// and installment definitions.
func newPgxFeeStructureRepository(pool *pgxpool.Pool) *PgxFeeStructureRepository {
	return &PgxFeeStructureRepository{pool: pool}
}

var _ portsrepo.FeeStructureReader = (*PgxFeeStructureRepository)(nil)
var _ portsrepo.FeeInstallmentReader = (*PgxFeeStructureRepository)(nil)

const feeStructureColumns = `fee_structure_id, class_name, fee_type_id, fee_type_name, academic_year, branch, location,
	       total_amount, monthly_amount, installments_count, is_new_admission, fee_group,
	       created_at, created_by, last_updated_at, last_updated_by`

func scanFeeStructure(row pgx.Row) (models.FeeStructure, error) {
	var m models.FeeStructure
	err := row.Scan(
		&m.FeeStructureID,
		&m.ClassName,
		&m.FeeTypeID,
		&m.FeeTypeName,
		&m.AcademicYear,
		&m.Branch,
		&m.Location,
		&m.TotalAmount,
		&m.MonthlyAmount,
		&m.InstallmentsCount,
		&m.IsNewAdmission,
		&m.FeeGroup,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindFeeStructureByID retrieves a single template.
func (r *PgxFeeStructureRepository) FindFeeStructureByID(ctx context.Context, feeStructureID string) (*domain.FeeStructure, error) {
	query := `SELECT ` + feeStructureColumns + ` FROM class_fee_structures WHERE fee_structure_id = $1;`

	m, err := scanFeeStructure(r.pool.QueryRow(ctx, query, feeStructureID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find fee structure by ID %s: %w", feeStructureID, err)
	}

	structure := mapping.ToDomainFeeStructure(m)
	return &structure, nil
}

// FindFeeStructures lists templates for a class, year and exact branch. The branch
// match is deliberately strict: "All" templates are returned only when branch is
// literally "All".
func (r *PgxFeeStructureRepository) FindFeeStructures(ctx context.Context, className, academicYear, branch string) ([]domain.FeeStructure, error) {
	query := `
		SELECT ` + feeStructureColumns + `
		FROM class_fee_structures
		WHERE class_name = $1 AND academic_year = $2 AND branch = $3
		ORDER BY fee_group, fee_type_name;
	`
	rows, err := r.pool.Query(ctx, query, className, academicYear, branch)
	if err != nil {
		return nil, fmt.Errorf("failed to query fee structures for class %s: %w", className, err)
	}
	defer rows.Close()

	var structures []domain.FeeStructure
	for rows.Next() {
		m, err := scanFeeStructure(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fee structure row: %w", err)
		}
		structures = append(structures, mapping.ToDomainFeeStructure(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fee structure rows: %w", err)
	}

	return structures, nil
}

// FindInstallmentsForBranchYear lists definitions visible to a branch (its own plus
// "All"-scoped ones), ordered chronologically.
func (r *PgxFeeStructureRepository) FindInstallmentsForBranchYear(ctx context.Context, branch, academicYear string) ([]domain.FeeInstallment, error) {
	query := `
		SELECT fee_installment_id, installment_no, title, branch, location, academic_year,
		       start_date, end_date, last_pay_date, fee_type_id,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM fee_installments
		WHERE (branch = $1 OR branch = 'All') AND academic_year = $2
		ORDER BY start_date, installment_no;
	`
	rows, err := r.pool.Query(ctx, query, branch, academicYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments for branch %s: %w", branch, err)
	}
	defer rows.Close()

	var installments []domain.FeeInstallment
	for rows.Next() {
		var m models.FeeInstallment
		if err := rows.Scan(
			&m.FeeInstallmentID,
			&m.InstallmentNo,
			&m.Title,
			&m.Branch,
			&m.Location,
			&m.AcademicYear,
			&m.StartDate,
			&m.EndDate,
			&m.LastPayDate,
			&m.FeeTypeID,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		installments = append(installments, mapping.ToDomainFeeInstallment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installment rows: %w", err)
	}

	return installments, nil
}
