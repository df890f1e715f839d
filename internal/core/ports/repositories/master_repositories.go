package repositories

import (
	"context"

	"github.com/schoolworks/fee_management_app/internal/core/domain"
)

// Branch, academic year and student masters are owned by other services; the fee
// core consumes them through these read-only lookups.

// BranchRepositoryFacade resolves branch identifiers to branch rows.
type BranchRepositoryFacade interface {
	// FindBranchByNameOrCode resolves a branch name or code to its row, including
	// the resolved location display name.
	FindBranchByNameOrCode(ctx context.Context, nameOrCode string) (*domain.Branch, error)
}

// AcademicYearRepositoryFacade resolves academic year codes (e.g. "2025-2026").
type AcademicYearRepositoryFacade interface {
	FindAcademicYearByCode(ctx context.Context, code string) (*domain.AcademicYear, error)
}

// StudentRepositoryFacade looks up the student view the fee engines need.
type StudentRepositoryFacade interface {
	FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error)
	FindStudentsByIDs(ctx context.Context, studentIDs []string) (map[string]domain.Student, error)
}
