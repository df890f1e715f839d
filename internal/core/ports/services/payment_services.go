package services

import (
	"context"

	"github.com/schoolworks/fee_management_app/internal/dto"
)

// PaymentSvcFacade is the payment ledger: immutable receipt lines plus reversal.
type PaymentSvcFacade interface {
	// RecordPayment issues one receipt number for the student's branch and year and
	// records one snapshot ledger entry per allocation, mutating the obligations in
	// the same database transaction.
	RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, collectorID, collectorName string) (*dto.PaymentReceiptResponse, error)

	// ReversePayment rewinds the obligation behind a ledger entry, cancels the
	// entry, and resyncs the receipt counter for the entry's branch/year scope.
	// If the obligation cannot be uniquely located the call fails with a conflict.
	ReversePayment(ctx context.Context, paymentID string) error

	// ListStudentPayments returns a student's ledger history, newest first.
	ListStudentPayments(ctx context.Context, studentID, academicYear string) ([]dto.PaymentHistoryItem, error)
}
