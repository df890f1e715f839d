package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
)

// SequenceRepositoryFacade is the per-(branch, academic year) counter store. Every
// increment runs under an exclusive row lock held for the duration of the enclosing
// transaction; concurrent callers block until the lock is released and therefore
// never observe the same value. Counter rows are created lazily with prefixes
// derived from the branch code.
type SequenceRepositoryFacade interface {
	// NextAdmissionNumber increments and returns the admission counter.
	NextAdmissionNumber(ctx context.Context, branch domain.Branch, year domain.AcademicYear) (*domain.BranchYearSequence, error)

	// NextReceiptNumber increments and returns the receipt counter.
	NextReceiptNumber(ctx context.Context, branch domain.Branch, year domain.AcademicYear) (*domain.BranchYearSequence, error)

	// ResyncReceiptCounter recomputes last_receipt_no as the maximum receipt number
	// still carried by an active ledger entry for the scope. Used only after a
	// reversal; this is the one path allowed to lower a counter.
	ResyncReceiptCounter(ctx context.Context, branch domain.Branch, year domain.AcademicYear) (int64, error)
}

// SequenceTxOps are counter operations running inside a caller-owned transaction,
// used by the payment repository so receipt issuance commits or rolls back together
// with the ledger write.
type SequenceTxOps interface {
	NextReceiptInTx(ctx context.Context, tx pgx.Tx, branch domain.Branch, year domain.AcademicYear) (*domain.BranchYearSequence, error)
	ResyncReceiptInTx(ctx context.Context, tx pgx.Tx, branch domain.Branch, year domain.AcademicYear) (int64, error)
}

// SequenceRepositoryWithTx extends the facade with in-transaction operations.
type SequenceRepositoryWithTx interface {
	SequenceRepositoryFacade
	SequenceTxOps
}
