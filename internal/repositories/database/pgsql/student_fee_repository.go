package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolworks/fee_management_app/internal/apperrors"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	portsrepo "github.com/schoolworks/fee_management_app/internal/core/ports/repositories"
	"github.com/schoolworks/fee_management_app/internal/models"
	"github.com/schoolworks/fee_management_app/internal/utils/mapping"
)

type PgxStudentFeeRepository struct {
	BaseRepository
}

// newPgxStudentFeeRepository creates a new repository for student obligations.
func newPgxStudentFeeRepository(pool *pgxpool.Pool) portsrepo.StudentFeeRepositoryWithTx {
	return &PgxStudentFeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.StudentFeeRepositoryWithTx = (*PgxStudentFeeRepository)(nil)

const studentFeeColumns = `fee_id, student_id, fee_type_id, fee_type_name, academic_year, period,
	       total_fee, paid_amount, concession, due_amount, status, due_date, is_active,
	       created_at, created_by, last_updated_at, last_updated_by`

const insertStudentFeeQuery = `
	INSERT INTO student_fees (fee_id, student_id, fee_type_id, fee_type_name, academic_year, period,
		total_fee, paid_amount, concession, due_amount, status, due_date, is_active,
		created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
`

const updateStudentFeeQuery = `
	UPDATE student_fees
	SET total_fee = $2,
	    paid_amount = $3,
	    concession = $4,
	    due_amount = $5,
	    status = $6,
	    due_date = $7,
	    is_active = $8,
	    last_updated_at = $9,
	    last_updated_by = $10
	WHERE fee_id = $1;
`

func scanStudentFee(row pgx.Row) (models.StudentFee, error) {
	var m models.StudentFee
	err := row.Scan(
		&m.FeeID,
		&m.StudentID,
		&m.FeeTypeID,
		&m.FeeTypeName,
		&m.AcademicYear,
		&m.Period,
		&m.TotalFee,
		&m.PaidAmount,
		&m.Concession,
		&m.DueAmount,
		&m.Status,
		&m.DueDate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertArgs(m models.StudentFee) []interface{} {
	return []interface{}{
		m.FeeID, m.StudentID, m.FeeTypeID, m.FeeTypeName, m.AcademicYear, m.Period,
		m.TotalFee, m.PaidAmount, m.Concession, m.DueAmount, m.Status, m.DueDate, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

func updateArgs(m models.StudentFee) []interface{} {
	return []interface{}{
		m.FeeID,
		m.TotalFee, m.PaidAmount, m.Concession, m.DueAmount, m.Status, m.DueDate, m.IsActive,
		m.LastUpdatedAt, m.LastUpdatedBy,
	}
}

// FindStudentFeeByID retrieves an obligation by its ID.
func (r *PgxStudentFeeRepository) FindStudentFeeByID(ctx context.Context, feeID string) (*domain.StudentFee, error) {
	query := `SELECT ` + studentFeeColumns + ` FROM student_fees WHERE fee_id = $1;`

	m, err := scanStudentFee(r.Pool.QueryRow(ctx, query, feeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find obligation by ID %s: %w", feeID, err)
	}

	fee := mapping.ToDomainStudentFee(m)
	return &fee, nil
}

// FindStudentFeesByIDs retrieves obligations keyed by ID. Missing IDs are absent
// from the map.
func (r *PgxStudentFeeRepository) FindStudentFeesByIDs(ctx context.Context, feeIDs []string) (map[string]domain.StudentFee, error) {
	if len(feeIDs) == 0 {
		return map[string]domain.StudentFee{}, nil
	}

	query := `SELECT ` + studentFeeColumns + ` FROM student_fees WHERE fee_id = ANY($1);`

	rows, err := r.Pool.Query(ctx, query, feeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query obligations by IDs: %w", err)
	}
	defer rows.Close()

	fees := make(map[string]domain.StudentFee, len(feeIDs))
	for rows.Next() {
		m, err := scanStudentFee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan obligation row: %w", err)
		}
		fees[m.FeeID] = mapping.ToDomainStudentFee(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating obligation rows: %w", err)
	}

	return fees, nil
}

// FindStudentFeesByStudent lists a student's active obligations for a year.
func (r *PgxStudentFeeRepository) FindStudentFeesByStudent(ctx context.Context, studentID, academicYear string) ([]domain.StudentFee, error) {
	query := `
		SELECT ` + studentFeeColumns + `
		FROM student_fees
		WHERE student_id = $1 AND academic_year = $2 AND is_active = TRUE;
	`
	rows, err := r.Pool.Query(ctx, query, studentID, academicYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query obligations for student %s: %w", studentID, err)
	}
	defer rows.Close()

	var ms []models.StudentFee
	for rows.Next() {
		m, err := scanStudentFee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan obligation row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating obligation rows: %w", err)
	}

	return mapping.ToDomainStudentFeeSlice(ms), nil
}

// ExistsStudentFee reports whether any obligation exists for the
// (student, fee type, year) key, regardless of period.
func (r *PgxStudentFeeRepository) ExistsStudentFee(ctx context.Context, studentID, feeTypeID, academicYear string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM student_fees
			WHERE student_id = $1 AND fee_type_id = $2 AND academic_year = $3 AND is_active = TRUE
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, studentID, feeTypeID, academicYear).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existing obligations for student %s: %w", studentID, err)
	}
	return exists, nil
}

// SaveStudentFees inserts a batch of obligations in one transaction. The whole
// batch commits or none of it does.
func (r *PgxStudentFeeRepository) SaveStudentFees(ctx context.Context, fees []domain.StudentFee) error {
	if len(fees) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, fee := range fees {
		batch.Queue(insertStudentFeeQuery, insertArgs(mapping.ToModelStudentFee(fee))...)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: obligation already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert obligation batch", err)
	}

	return r.Commit(ctx, tx)
}

// UpdateStudentFees persists mutated obligations in one transaction.
func (r *PgxStudentFeeRepository) UpdateStudentFees(ctx context.Context, fees []domain.StudentFee) error {
	if len(fees) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, fee := range fees {
		batch.Queue(updateStudentFeeQuery, updateArgs(mapping.ToModelStudentFee(fee))...)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to update obligation batch", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteStudentFee removes an obligation row. The service guards against deleting
// obligations with payments; the predicate here is the last line of defense.
func (r *PgxStudentFeeRepository) DeleteStudentFee(ctx context.Context, feeID string) error {
	query := `DELETE FROM student_fees WHERE fee_id = $1 AND paid_amount = 0;`

	cmdTag, err := r.Pool.Exec(ctx, query, feeID)
	if err != nil {
		return fmt.Errorf("failed to delete obligation %s: %w", feeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Distinguish a row blocked by the payment guard from a missing one: a
		// payment may have landed between the service's check and this delete.
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM student_fees WHERE fee_id = $1);`, feeID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check obligation %s after blocked delete: %w", feeID, err)
		}
		return deleteBlockedErr(feeID, exists)
	}
	return nil
}

// deleteBlockedErr maps a no-op delete to its sentinel: an existing row was kept by
// the paid-amount guard, a missing row was never there.
func deleteBlockedErr(feeID string, exists bool) error {
	if exists {
		return fmt.Errorf("%w: obligation %s has collected payments", apperrors.ErrConflict, feeID)
	}
	return fmt.Errorf("%w: obligation %s", apperrors.ErrNotFound, feeID)
}

// FindStudentFeesByIDsForUpdate locks the obligation rows for the duration of the
// caller's transaction. Every requested ID must exist.
func (r *PgxStudentFeeRepository) FindStudentFeesByIDsForUpdate(ctx context.Context, tx pgx.Tx, feeIDs []string) (map[string]domain.StudentFee, error) {
	if len(feeIDs) == 0 {
		return map[string]domain.StudentFee{}, nil
	}

	query := `SELECT ` + studentFeeColumns + ` FROM student_fees WHERE fee_id = ANY($1) FOR UPDATE;`

	rows, err := tx.Query(ctx, query, feeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock obligations for update: %w", err)
	}
	defer rows.Close()

	fees := make(map[string]domain.StudentFee, len(feeIDs))
	for rows.Next() {
		m, err := scanStudentFee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked obligation row: %w", err)
		}
		fees[m.FeeID] = mapping.ToDomainStudentFee(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked obligation rows: %w", err)
	}

	for _, id := range feeIDs {
		if _, ok := fees[id]; !ok {
			return nil, fmt.Errorf("%w: obligation %s", apperrors.ErrNotFound, id)
		}
	}

	return fees, nil
}

// FindStudentFeesByLabelForUpdate locks the obligations matching a ledger entry's
// attribute key. Used by reversal, which requires exactly one match.
func (r *PgxStudentFeeRepository) FindStudentFeesByLabelForUpdate(ctx context.Context, tx pgx.Tx, studentID, academicYear, feeTypeName, period string) ([]domain.StudentFee, error) {
	query := `
		SELECT ` + studentFeeColumns + `
		FROM student_fees
		WHERE student_id = $1 AND academic_year = $2 AND fee_type_name = $3 AND period = $4 AND is_active = TRUE
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, studentID, academicYear, feeTypeName, period)
	if err != nil {
		return nil, fmt.Errorf("failed to lock obligations by label: %w", err)
	}
	defer rows.Close()

	var fees []domain.StudentFee
	for rows.Next() {
		m, err := scanStudentFee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked obligation row: %w", err)
		}
		fees = append(fees, mapping.ToDomainStudentFee(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked obligation rows: %w", err)
	}

	return fees, nil
}

// UpdateStudentFeeInTx persists one mutated obligation inside the caller's
// transaction.
func (r *PgxStudentFeeRepository) UpdateStudentFeeInTx(ctx context.Context, tx pgx.Tx, fee domain.StudentFee) error {
	cmdTag, err := tx.Exec(ctx, updateStudentFeeQuery, updateArgs(mapping.ToModelStudentFee(fee))...)
	if err != nil {
		return fmt.Errorf("failed to update obligation %s in transaction: %w", fee.FeeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: obligation %s", apperrors.ErrNotFound, fee.FeeID)
	}
	return nil
}
