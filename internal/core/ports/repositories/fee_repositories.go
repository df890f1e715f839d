package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
)

// FeeStructureReader defines read operations for class fee templates.
type FeeStructureReader interface {
	// FindFeeStructureByID retrieves a single template.
	FindFeeStructureByID(ctx context.Context, feeStructureID string) (*domain.FeeStructure, error)

	// FindFeeStructures lists templates for a class, academic year and exact branch.
	// Branch matching is strict: "All" templates are returned only when branch is
	// literally "All".
	FindFeeStructures(ctx context.Context, className, academicYear, branch string) ([]domain.FeeStructure, error)
}

// FeeInstallmentReader defines read operations for installment definitions.
type FeeInstallmentReader interface {
	// FindInstallmentsForBranchYear lists definitions visible to a branch (its own
	// plus "All"-scoped ones) for an academic year, ordered by start date.
	FindInstallmentsForBranchYear(ctx context.Context, branch, academicYear string) ([]domain.FeeInstallment, error)
}

// ConcessionReader defines read operations for concession rules.
type ConcessionReader interface {
	// FindConcessionsByTitle lists all rules of a named scheme for an academic year,
	// across branches; scoping to the student's branch is the service's concern.
	FindConcessionsByTitle(ctx context.Context, title, academicYear string) ([]domain.Concession, error)
}

// StudentFeeReader defines read operations for obligations.
type StudentFeeReader interface {
	FindStudentFeeByID(ctx context.Context, feeID string) (*domain.StudentFee, error)
	FindStudentFeesByIDs(ctx context.Context, feeIDs []string) (map[string]domain.StudentFee, error)
	FindStudentFeesByStudent(ctx context.Context, studentID, academicYear string) ([]domain.StudentFee, error)

	// ExistsStudentFee reports whether any obligation exists for the
	// (student, fee type, academic year) key, regardless of period.
	ExistsStudentFee(ctx context.Context, studentID, feeTypeID, academicYear string) (bool, error)
}

// StudentFeeWriter defines write operations for obligations.
type StudentFeeWriter interface {
	// SaveStudentFees inserts a batch of obligations atomically (one transaction).
	SaveStudentFees(ctx context.Context, fees []domain.StudentFee) error

	// UpdateStudentFees persists mutated obligations atomically.
	UpdateStudentFees(ctx context.Context, fees []domain.StudentFee) error

	// DeleteStudentFee removes an obligation. Implementations reject deletion when
	// the obligation has recorded payments.
	DeleteStudentFee(ctx context.Context, feeID string) error
}

// StudentFeeTxOps are obligation operations that run inside a caller-owned
// transaction, used by the payment repository to keep obligation mutation and
// ledger writes atomic.
type StudentFeeTxOps interface {
	// FindStudentFeesByIDsForUpdate locks the obligation rows for update.
	FindStudentFeesByIDsForUpdate(ctx context.Context, tx pgx.Tx, feeIDs []string) (map[string]domain.StudentFee, error)

	// FindStudentFeesByLabelForUpdate locks the obligations matching a ledger
	// entry's attribute key (student, year, fee type name, period label).
	FindStudentFeesByLabelForUpdate(ctx context.Context, tx pgx.Tx, studentID, academicYear, feeTypeName, period string) ([]domain.StudentFee, error)

	// UpdateStudentFeeInTx persists one mutated obligation inside the transaction.
	UpdateStudentFeeInTx(ctx context.Context, tx pgx.Tx, fee domain.StudentFee) error
}

// StudentFeeRepositoryFacade combines all obligation repository interfaces.
type StudentFeeRepositoryFacade interface {
	StudentFeeReader
	StudentFeeWriter
}

// StudentFeeRepositoryWithTx extends the facade with in-transaction operations.
type StudentFeeRepositoryWithTx interface {
	StudentFeeRepositoryFacade
	StudentFeeTxOps
}
