package services

import (
	"context"

	"github.com/schoolworks/fee_management_app/internal/core/domain"
	"github.com/schoolworks/fee_management_app/internal/dto"
)

// AssignmentSvcFacade is the fee assignment engine: it turns class fee templates
// into concrete student obligations.
type AssignmentSvcFacade interface {
	// AssignFeeToStudent applies one template to one student. Not-applicable
	// templates (branch/location mismatch, duplicate, missing installment
	// definitions, new-admission-only mismatch) produce a skipped result, not an
	// error. A second call with the same pair is a no-op.
	AssignFeeToStudent(ctx context.Context, studentID, feeStructureID string) (*dto.AssignResult, error)

	// AutoEnrollStudentFees assigns every template matching the student's class,
	// year and branch (strict match, no implicit "All"). Per-template failures are
	// collected in the result, never aborting the batch.
	AutoEnrollStudentFees(ctx context.Context, req dto.AutoEnrollRequest) (*dto.AutoEnrollResult, error)
}

// StudentFeeSvcFacade covers manual obligation maintenance outside the template
// pipeline.
type StudentFeeSvcFacade interface {
	// AssignSpecialFee creates a one-time obligation for each listed student,
	// skipping students that already carry the fee type for the year.
	AssignSpecialFee(ctx context.Context, req dto.SpecialFeeRequest, creatorUserID string) (*dto.SpecialFeeResult, error)

	// UpdateStudentFee amends total and concession and re-derives due/status.
	UpdateStudentFee(ctx context.Context, feeID string, req dto.UpdateStudentFeeRequest, updaterUserID string) (*domain.StudentFee, error)

	// DeleteStudentFee removes an unpaid obligation; obligations with collected
	// payments are a conflict.
	DeleteStudentFee(ctx context.Context, feeID string) error

	// GetStudentFeeDetails lists a student's obligations ordered by due date then
	// installment number.
	GetStudentFeeDetails(ctx context.Context, studentID, academicYear string) ([]dto.StudentFeeDetail, error)
}

// ConcessionSvcFacade applies named discount schemes to obligations.
type ConcessionSvcFacade interface {
	// ApplyConcession resolves the scheme's rules visible to the student's branch
	// (branch-specific rule wins over an "All" rule for the same fee type) and sets
	// the concession on each target obligation. Obligations with payments are
	// skipped. Reapplying replaces the prior concession, never stacks it.
	// Returns the number of obligations updated.
	ApplyConcession(ctx context.Context, req dto.ApplyConcessionRequest, updaterUserID string) (int, error)
}
