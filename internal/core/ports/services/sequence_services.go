package services

import "context"

// SequenceSvcFacade issues collision-free sequential identifiers scoped per
// (branch, academic year). Lock waits surface to the caller; the service never
// retries internally.
type SequenceSvcFacade interface {
	// NextAdmissionNumber returns the next admission number, formatted as the
	// branch admission prefix plus a zero-padded 4-digit counter (e.g. "HATC0152").
	NextAdmissionNumber(ctx context.Context, branch, academicYear string) (string, error)

	// NextReceiptNumber returns the next receipt number, a zero-padded 2-digit
	// counter, optionally carrying the branch receipt prefix.
	NextReceiptNumber(ctx context.Context, branch, academicYear string) (string, error)

	// ResyncReceiptCounter lowers the receipt counter to the highest number still
	// carried by an active ledger entry. Corrective use after reversals only.
	ResyncReceiptCounter(ctx context.Context, branch, academicYear string) (int64, error)
}
