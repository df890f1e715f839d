package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	portsrepo "github.com/schoolworks/fee_management_app/internal/core/ports/repositories"
	"github.com/schoolworks/fee_management_app/internal/middleware"
	"github.com/schoolworks/fee_management_app/internal/models"
	"github.com/schoolworks/fee_management_app/internal/utils/mapping"
)

type PgxSequenceRepository struct {
	BaseRepository
}

// newPgxSequenceRepository creates a new repository for the per-(branch, year)
// admission and receipt counters.
func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepositoryWithTx {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepositoryWithTx = (*PgxSequenceRepository)(nil)

const sequenceColumns = `sequence_id, branch_id, academic_year_id, admission_prefix, last_admission_no,
	       receipt_prefix, last_receipt_no, created_at, created_by, last_updated_at, last_updated_by`

func auditUser(ctx context.Context) string {
	if userID, ok := middleware.GetUserIDFromCtx(ctx); ok {
		return userID
	}
	return "system"
}

// lockSequenceInTx locks the counter row for the scope, creating it lazily on
// first use. The FOR UPDATE lock is held until the caller's transaction ends, so
// concurrent callers serialize here.
func (r *PgxSequenceRepository) lockSequenceInTx(ctx context.Context, tx pgx.Tx, branch domain.Branch, year domain.AcademicYear) (*models.BranchYearSequence, error) {
	selectQuery := `
		SELECT ` + sequenceColumns + `
		FROM enrollment_sequences
		WHERE branch_id = $1 AND academic_year_id = $2
		FOR UPDATE;
	`
	scan := func() (*models.BranchYearSequence, error) {
		var m models.BranchYearSequence
		err := tx.QueryRow(ctx, selectQuery, branch.BranchID, year.AcademicYearID).Scan(
			&m.SequenceID,
			&m.BranchID,
			&m.AcademicYearID,
			&m.AdmissionPrefix,
			&m.LastAdmissionNo,
			&m.ReceiptPrefix,
			&m.LastReceiptNo,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, err
		}
		return &m, nil
	}

	m, err := scan()
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to lock counter row for branch %d: %w", branch.BranchID, err)
	}

	// First use of this scope: create the row with prefixes derived from the branch
	// codes. ON CONFLICT covers the race where two callers both see no row.
	now := time.Now().UTC()
	user := auditUser(ctx)
	insertQuery := `
		INSERT INTO enrollment_sequences (branch_id, academic_year_id, admission_prefix, last_admission_no,
			receipt_prefix, last_receipt_no, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, 0, $4, 0, $5, $6, $5, $6)
		ON CONFLICT (branch_id, academic_year_id) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, insertQuery,
		branch.BranchID,
		year.AcademicYearID,
		branch.LocationCode+branch.Code,
		branch.Code,
		now,
		user,
	); err != nil {
		return nil, fmt.Errorf("failed to create counter row for branch %d: %w", branch.BranchID, err)
	}

	m, err = scan()
	if err != nil {
		return nil, fmt.Errorf("failed to re-lock counter row for branch %d: %w", branch.BranchID, err)
	}
	return m, nil
}

// NextAdmissionNumber increments and returns the admission counter.
func (r *PgxSequenceRepository) NextAdmissionNumber(ctx context.Context, branch domain.Branch, year domain.AcademicYear) (*domain.BranchYearSequence, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := r.lockSequenceInTx(ctx, tx, branch, year)
	if err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE enrollment_sequences
		SET last_admission_no = last_admission_no + 1, last_updated_at = $2, last_updated_by = $3
		WHERE sequence_id = $1
		RETURNING last_admission_no;
	`
	if err := tx.QueryRow(ctx, updateQuery, m.SequenceID, time.Now().UTC(), auditUser(ctx)).Scan(&m.LastAdmissionNo); err != nil {
		return nil, fmt.Errorf("failed to advance admission counter: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	seq := mapping.ToDomainSequence(*m)
	return &seq, nil
}

// NextReceiptNumber increments and returns the receipt counter.
func (r *PgxSequenceRepository) NextReceiptNumber(ctx context.Context, branch domain.Branch, year domain.AcademicYear) (*domain.BranchYearSequence, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	seq, err := r.NextReceiptInTx(ctx, tx, branch, year)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return seq, nil
}

// NextReceiptInTx increments the receipt counter inside the caller's transaction.
// The counter advance commits or rolls back together with the caller's writes.
func (r *PgxSequenceRepository) NextReceiptInTx(ctx context.Context, tx pgx.Tx, branch domain.Branch, year domain.AcademicYear) (*domain.BranchYearSequence, error) {
	m, err := r.lockSequenceInTx(ctx, tx, branch, year)
	if err != nil {
		return nil, err
	}

	updateQuery := `
		UPDATE enrollment_sequences
		SET last_receipt_no = last_receipt_no + 1, last_updated_at = $2, last_updated_by = $3
		WHERE sequence_id = $1
		RETURNING last_receipt_no;
	`
	if err := tx.QueryRow(ctx, updateQuery, m.SequenceID, time.Now().UTC(), auditUser(ctx)).Scan(&m.LastReceiptNo); err != nil {
		return nil, fmt.Errorf("failed to advance receipt counter: %w", err)
	}

	seq := mapping.ToDomainSequence(*m)
	return &seq, nil
}

// ResyncReceiptCounter recomputes the receipt counter from the active ledger.
func (r *PgxSequenceRepository) ResyncReceiptCounter(ctx context.Context, branch domain.Branch, year domain.AcademicYear) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	maxNo, err := r.ResyncReceiptInTx(ctx, tx, branch, year)
	if err != nil {
		return 0, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return maxNo, nil
}

// ResyncReceiptInTx sets last_receipt_no to the highest number still carried by an
// active ledger entry for the scope. Receipt numbers may carry a branch prefix, so
// the numeric part is extracted here rather than in SQL.
func (r *PgxSequenceRepository) ResyncReceiptInTx(ctx context.Context, tx pgx.Tx, branch domain.Branch, year domain.AcademicYear) (int64, error) {
	m, err := r.lockSequenceInTx(ctx, tx, branch, year)
	if err != nil {
		return 0, err
	}

	query := `
		SELECT DISTINCT receipt_no
		FROM fee_payments
		WHERE branch = $1 AND academic_year = $2 AND is_active = TRUE;
	`
	rows, err := tx.Query(ctx, query, branch.Name, year.Code)
	if err != nil {
		return 0, fmt.Errorf("failed to query active receipt numbers: %w", err)
	}
	defer rows.Close()

	var maxNo int64
	for rows.Next() {
		var receiptNo string
		if err := rows.Scan(&receiptNo); err != nil {
			return 0, fmt.Errorf("failed to scan receipt number: %w", err)
		}
		if n := receiptCounterValue(receiptNo); n > maxNo {
			maxNo = n
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating receipt numbers: %w", err)
	}

	updateQuery := `
		UPDATE enrollment_sequences
		SET last_receipt_no = $2, last_updated_at = $3, last_updated_by = $4
		WHERE sequence_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, m.SequenceID, maxNo, time.Now().UTC(), auditUser(ctx)); err != nil {
		return 0, fmt.Errorf("failed to resync receipt counter: %w", err)
	}

	return maxNo, nil
}

// receiptCounterValue extracts the trailing numeric run of a receipt number, so
// "TC06" and "06" both yield 6. Numbers with no digits count as zero.
func receiptCounterValue(receiptNo string) int64 {
	i := len(receiptNo)
	for i > 0 && receiptNo[i-1] >= '0' && receiptNo[i-1] <= '9' {
		i--
	}
	if i == len(receiptNo) {
		return 0
	}
	n, err := strconv.ParseInt(receiptNo[i:], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
