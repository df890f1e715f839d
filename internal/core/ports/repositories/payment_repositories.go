package repositories

import (
	"context"

	"github.com/schoolworks/fee_management_app/internal/core/domain"
)

// PaymentReader defines read operations for ledger entries.
type PaymentReader interface {
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.FeePayment, error)

	// ListPaymentsByStudent lists a student's ledger entries, newest first,
	// optionally filtered by academic year.
	ListPaymentsByStudent(ctx context.Context, studentID, academicYear string) ([]domain.FeePayment, error)
}

// PaymentWriter defines the two ledger mutations. Both run as a single database
// transaction internally: a crash can never leave an obligation updated without
// its ledger entries, or vice versa.
type PaymentWriter interface {
	// RecordPayment obtains one receipt number for the student's branch and year,
	// applies every allocation to its locked obligation, and inserts one snapshot
	// ledger entry per allocation.
	RecordPayment(ctx context.Context, student domain.Student, branch domain.Branch, year domain.AcademicYear, allocations []domain.PaymentAllocation, details domain.PaymentDetails) (*domain.PaymentResult, error)

	// ReversePayment rewinds the obligation matched by the entry's attribute key,
	// cancels the entry and resyncs the receipt counter for the entry's scope.
	ReversePayment(ctx context.Context, payment domain.FeePayment, branch domain.Branch, year domain.AcademicYear) error
}

// PaymentRepositoryFacade combines all ledger repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}
