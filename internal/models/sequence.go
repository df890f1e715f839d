package models

// BranchYearSequence maps to the enrollment_sequences table, one row per
// (branch_id, academic_year_id) created lazily on first use.
type BranchYearSequence struct {
	SequenceID      int64  `json:"sequenceID"` // Primary Key (serial)
	BranchID        int64  `json:"branchID"`
	AcademicYearID  int64  `json:"academicYearID"`
	AdmissionPrefix string `json:"admissionPrefix"`
	LastAdmissionNo int64  `json:"lastAdmissionNo"`
	ReceiptPrefix   string `json:"receiptPrefix"`
	LastReceiptNo   int64  `json:"lastReceiptNo"`
	AuditFields
}
