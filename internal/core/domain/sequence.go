package domain

import "fmt"

// BranchYearSequence is the per-(branch, academic year) monotonic counter behind
// admission and receipt numbers. Rows are created lazily on first use and mutated
// only under an exclusive row lock; a corrective resync after a payment reversal is
// the only path allowed to lower a counter.
type BranchYearSequence struct {
	SequenceID      int64  `json:"sequenceID"`
	BranchID        int64  `json:"branchID"`
	AcademicYearID  int64  `json:"academicYearID"`
	AdmissionPrefix string `json:"admissionPrefix"`
	LastAdmissionNo int64  `json:"lastAdmissionNo"`
	ReceiptPrefix   string `json:"receiptPrefix"`
	LastReceiptNo   int64  `json:"lastReceiptNo"`
	AuditFields
}

// AdmissionNumber formats the current admission counter, e.g. "HATC0152".
func (s BranchYearSequence) AdmissionNumber() string {
	return fmt.Sprintf("%s%04d", s.AdmissionPrefix, s.LastAdmissionNo)
}

// ReceiptNumber formats the current receipt counter, e.g. "06" or "TC06" with the
// prefix included.
func (s BranchYearSequence) ReceiptNumber(includePrefix bool) string {
	if includePrefix {
		return fmt.Sprintf("%s%02d", s.ReceiptPrefix, s.LastReceiptNo)
	}
	return fmt.Sprintf("%02d", s.LastReceiptNo)
}
