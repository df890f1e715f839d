package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/schoolworks/fee_management_app/internal/apperrors"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	portsrepo "github.com/schoolworks/fee_management_app/internal/core/ports/repositories"
	"github.com/schoolworks/fee_management_app/internal/models"
	"github.com/schoolworks/fee_management_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxPaymentRepository struct {
	BaseRepository
	feeRepo portsrepo.StudentFeeTxOps
	seqRepo portsrepo.SequenceTxOps

	// receiptIncludesPrefix controls the format stored on ledger rows.
	receiptIncludesPrefix bool
}

// newPgxPaymentRepository creates a new repository for the payment ledger. The
// obligation and sequence tx-ops are injected so receipt issuance, obligation
// mutation and ledger writes share one transaction.
func newPgxPaymentRepository(pool *pgxpool.Pool, feeRepo portsrepo.StudentFeeTxOps, seqRepo portsrepo.SequenceTxOps, receiptIncludesPrefix bool) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{
		BaseRepository:        BaseRepository{Pool: pool},
		feeRepo:               feeRepo,
		seqRepo:               seqRepo,
		receiptIncludesPrefix: receiptIncludesPrefix,
	}
}

var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

const feePaymentColumns = `payment_id, receipt_no, branch, location, academic_year, student_id, class_name, section,
	       installment_name, fee_type_name, gross_amount, concession_amount, net_payable,
	       amount_paid, due_amount, payment_mode, payment_date, note, collected_by, collected_by_name,
	       is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanFeePayment(row pgx.Row) (models.FeePayment, error) {
	var m models.FeePayment
	err := row.Scan(
		&m.PaymentID,
		&m.ReceiptNo,
		&m.Branch,
		&m.Location,
		&m.AcademicYear,
		&m.StudentID,
		&m.ClassName,
		&m.Section,
		&m.InstallmentName,
		&m.FeeTypeName,
		&m.GrossAmount,
		&m.ConcessionAmount,
		&m.NetPayable,
		&m.AmountPaid,
		&m.DueAmount,
		&m.PaymentMode,
		&m.PaymentDate,
		&m.Note,
		&m.CollectedBy,
		&m.CollectedByName,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// RecordPayment obtains one receipt number, applies every allocation to its locked
// obligation and inserts one snapshot ledger row per allocation, all in a single
// transaction.
func (r *PgxPaymentRepository) RecordPayment(ctx context.Context, student domain.Student, branch domain.Branch, year domain.AcademicYear, allocations []domain.PaymentAllocation, details domain.PaymentDetails) (*domain.PaymentResult, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// 1. Issue the receipt number. The counter lock is held until commit, so a
	// rolled-back payment never burns a number.
	seq, err := r.seqRepo.NextReceiptInTx(ctx, tx, branch, year)
	if err != nil {
		return nil, fmt.Errorf("failed to issue receipt number: %w", err)
	}
	receiptNo := seq.ReceiptNumber(r.receiptIncludesPrefix)

	// 2. Lock the target obligations.
	feeIDs := make([]string, len(allocations))
	for i, alloc := range allocations {
		feeIDs[i] = alloc.FeeID
	}
	fees, err := r.feeRepo.FindStudentFeesByIDsForUpdate(ctx, tx, feeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock obligations: %w", err)
	}

	now := time.Now().UTC()
	collector := details.CollectedBy

	insertQuery := `
		INSERT INTO fee_payments (payment_id, receipt_no, branch, location, academic_year, student_id, class_name, section,
			installment_name, fee_type_name, gross_amount, concession_amount, net_payable,
			amount_paid, due_amount, payment_mode, payment_date, note, collected_by, collected_by_name,
			is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25);
	`

	result := &domain.PaymentResult{ReceiptNo: receiptNo, TotalPaid: decimal.Zero}
	batch := &pgx.Batch{}

	// Concession queued on earlier lines of this same receipt: those rows are not
	// committed yet, so the SQL sum below cannot see them.
	recordedInCall := make(map[string]decimal.Decimal)

	// 3. Apply each allocation and queue its ledger row.
	for _, alloc := range allocations {
		fee, ok := fees[alloc.FeeID]
		if !ok {
			return nil, fmt.Errorf("%w: obligation %s", apperrors.ErrNotFound, alloc.FeeID)
		}

		if err := fee.ApplyAllocation(alloc.Amount, alloc.ConcessionAmount); err != nil {
			return nil, fmt.Errorf("%w: %v on obligation %s", apperrors.ErrValidation, err, fee.FeeID)
		}
		fee.LastUpdatedAt = now
		fee.LastUpdatedBy = collector

		// The ledger's concession lines must sum to the obligation's concession. On
		// the closing payment the row absorbs whatever concession earlier active rows
		// have not yet recorded (e.g. one granted between two part payments).
		rowConcession := alloc.ConcessionAmount
		if fee.Status == domain.StatusPaid {
			prior, err := r.sumRecordedConcession(ctx, tx, fee)
			if err != nil {
				return nil, err
			}
			rowConcession = fee.ConcessionShortfall(prior.Add(recordedInCall[fee.FeeID]))
		}
		recordedInCall[fee.FeeID] = recordedInCall[fee.FeeID].Add(rowConcession)

		if err := r.feeRepo.UpdateStudentFeeInTx(ctx, tx, fee); err != nil {
			return nil, fmt.Errorf("failed to update obligation %s: %w", fee.FeeID, err)
		}
		fees[alloc.FeeID] = fee

		payment := domain.FeePayment{
			PaymentID:        uuid.NewString(),
			ReceiptNo:        receiptNo,
			Branch:           branch.Name,
			Location:         branch.LocationName,
			AcademicYear:     year.Code,
			StudentID:        student.StudentID,
			ClassName:        student.ClassName,
			Section:          student.Section,
			InstallmentName:  fee.Period,
			FeeTypeName:      fee.FeeTypeName,
			GrossAmount:      fee.TotalFee,
			ConcessionAmount: rowConcession,
			NetPayable:       fee.TotalFee.Sub(fee.Concession),
			AmountPaid:       alloc.Amount,
			DueAmount:        fee.DueAmount,
			PaymentMode:      details.Mode,
			PaymentDate:      details.Date,
			Note:             details.Note,
			CollectedBy:      collector,
			CollectedByName:  details.CollectedByName,
			IsActive:         true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     collector,
				LastUpdatedAt: now,
				LastUpdatedBy: collector,
			},
		}

		m := mapping.ToModelFeePayment(payment)
		batch.Queue(insertQuery,
			m.PaymentID, m.ReceiptNo, m.Branch, m.Location, m.AcademicYear, m.StudentID, m.ClassName, m.Section,
			m.InstallmentName, m.FeeTypeName, m.GrossAmount, m.ConcessionAmount, m.NetPayable,
			m.AmountPaid, m.DueAmount, m.PaymentMode, m.PaymentDate, m.Note, m.CollectedBy, m.CollectedByName,
			m.IsActive, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)

		result.Payments = append(result.Payments, payment)
		result.TotalPaid = result.TotalPaid.Add(alloc.Amount)
	}

	// 4. Insert all ledger rows.
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert ledger rows for receipt "+receiptNo, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return result, nil
}

// sumRecordedConcession totals the concession already carried by active ledger rows
// for an obligation's attribute key.
func (r *PgxPaymentRepository) sumRecordedConcession(ctx context.Context, tx pgx.Tx, fee domain.StudentFee) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(concession_amount), 0)
		FROM fee_payments
		WHERE student_id = $1 AND academic_year = $2 AND fee_type_name = $3 AND installment_name = $4 AND is_active = TRUE;
	`
	var total decimal.Decimal
	err := tx.QueryRow(ctx, query, fee.StudentID, fee.AcademicYear, fee.FeeTypeName, fee.Period).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum recorded concession for obligation %s: %w", fee.FeeID, err)
	}
	return total, nil
}

// ReversePayment rewinds the obligation behind a ledger entry, cancels the entry
// and resyncs the receipt counter, all in a single transaction.
func (r *PgxPaymentRepository) ReversePayment(ctx context.Context, payment domain.FeePayment, branch domain.Branch, year domain.AcademicYear) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// 1. Locate and lock the obligation by the entry's attribute key. Anything but
	// exactly one match means the schedule changed since payment and a human has to
	// look at it.
	fees, err := r.feeRepo.FindStudentFeesByLabelForUpdate(ctx, tx, payment.StudentID, payment.AcademicYear, payment.FeeTypeName, payment.InstallmentName)
	if err != nil {
		return fmt.Errorf("failed to lock obligation for reversal: %w", err)
	}
	if len(fees) != 1 {
		return fmt.Errorf("%w: found %d obligations matching receipt %s line (%s / %s)",
			apperrors.ErrConflict, len(fees), payment.ReceiptNo, payment.FeeTypeName, payment.InstallmentName)
	}
	fee := fees[0]

	// 2. Rewind the amounts this entry contributed.
	if err := fee.RewindAllocation(payment.AmountPaid, payment.ConcessionAmount); err != nil {
		return fmt.Errorf("%w: payment %s on obligation %s: %v", apperrors.ErrConflict, payment.PaymentID, fee.FeeID, err)
	}

	now := time.Now().UTC()
	user := auditUser(ctx)
	fee.LastUpdatedAt = now
	fee.LastUpdatedBy = user

	if err := r.feeRepo.UpdateStudentFeeInTx(ctx, tx, fee); err != nil {
		return fmt.Errorf("failed to rewind obligation %s: %w", fee.FeeID, err)
	}

	// 3. Cancel the ledger entry. The guard on is_active makes double reversal a
	// conflict even under concurrent calls.
	cancelQuery := `
		UPDATE fee_payments
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE payment_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := tx.Exec(ctx, cancelQuery, payment.PaymentID, now, user)
	if err != nil {
		return fmt.Errorf("failed to cancel ledger entry %s: %w", payment.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: payment %s is already reversed", apperrors.ErrConflict, payment.PaymentID)
	}

	// 4. Drop the receipt counter back to the highest active receipt.
	if _, err := r.seqRepo.ResyncReceiptInTx(ctx, tx, branch, year); err != nil {
		return fmt.Errorf("failed to resync receipt counter: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindPaymentByID retrieves a ledger entry by its ID.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.FeePayment, error) {
	query := `SELECT ` + feePaymentColumns + ` FROM fee_payments WHERE payment_id = $1;`

	m, err := scanFeePayment(r.Pool.QueryRow(ctx, query, paymentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}

	payment := mapping.ToDomainFeePayment(m)
	return &payment, nil
}

// ListPaymentsByStudent lists a student's ledger entries, newest first. An empty
// academicYear returns all years.
func (r *PgxPaymentRepository) ListPaymentsByStudent(ctx context.Context, studentID, academicYear string) ([]domain.FeePayment, error) {
	query := `
		SELECT ` + feePaymentColumns + `
		FROM fee_payments
		WHERE student_id = $1 AND ($2 = '' OR academic_year = $2)
		ORDER BY payment_date DESC, created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, studentID, academicYear)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments for student %s: %w", studentID, err)
	}
	defer rows.Close()

	var ms []models.FeePayment
	for rows.Next() {
		m, err := scanFeePayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment row: %w", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment rows: %w", err)
	}

	return mapping.ToDomainFeePaymentSlice(ms), nil
}
