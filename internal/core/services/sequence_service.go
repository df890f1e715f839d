package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/schoolworks/fee_management_app/internal/apperrors"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	portsrepo "github.com/schoolworks/fee_management_app/internal/core/ports/repositories"
	portssvc "github.com/schoolworks/fee_management_app/internal/core/ports/services"
	"github.com/schoolworks/fee_management_app/internal/middleware"
)

// sequenceService issues admission and receipt numbers from the per-(branch,
// academic year) counters. All locking lives in the repository; this layer only
// resolves scope and formats numbers.
type sequenceService struct {
	branchRepo portsrepo.BranchRepositoryFacade
	yearRepo   portsrepo.AcademicYearRepositoryFacade
	seqRepo    portsrepo.SequenceRepositoryFacade

	// receiptIncludesPrefix controls whether receipt numbers carry the branch
	// receipt prefix ("TC06") or are bare ("06").
	receiptIncludesPrefix bool
}

// NewSequenceService creates a new SequenceService.
func NewSequenceService(branchRepo portsrepo.BranchRepositoryFacade, yearRepo portsrepo.AcademicYearRepositoryFacade, seqRepo portsrepo.SequenceRepositoryFacade, receiptIncludesPrefix bool) portssvc.SequenceSvcFacade {
	return &sequenceService{
		branchRepo:            branchRepo,
		yearRepo:              yearRepo,
		seqRepo:               seqRepo,
		receiptIncludesPrefix: receiptIncludesPrefix,
	}
}

var _ portssvc.SequenceSvcFacade = (*sequenceService)(nil)

// resolveScope turns a branch name/code and academic year code into master rows.
func (s *sequenceService) resolveScope(ctx context.Context, branch, academicYear string) (*domain.Branch, *domain.AcademicYear, error) {
	if branch == "" || academicYear == "" {
		return nil, nil, fmt.Errorf("%w: branch and academic year are required", apperrors.ErrValidation)
	}

	b, err := s.branchRepo.FindBranchByNameOrCode(ctx, branch)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: branch %q not found", apperrors.ErrValidation, branch)
	}
	y, err := s.yearRepo.FindAcademicYearByCode(ctx, academicYear)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: academic year %q not found", apperrors.ErrValidation, academicYear)
	}
	return b, y, nil
}

func (s *sequenceService) NextAdmissionNumber(ctx context.Context, branch, academicYear string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	b, y, err := s.resolveScope(ctx, branch, academicYear)
	if err != nil {
		return "", err
	}

	seq, err := s.seqRepo.NextAdmissionNumber(ctx, *b, *y)
	if err != nil {
		logger.Error("Failed to advance admission counter", slog.String("branch", b.Name), slog.String("academic_year", y.Code), slog.String("error", err.Error()))
		return "", err
	}

	return seq.AdmissionNumber(), nil
}

func (s *sequenceService) NextReceiptNumber(ctx context.Context, branch, academicYear string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	b, y, err := s.resolveScope(ctx, branch, academicYear)
	if err != nil {
		return "", err
	}

	seq, err := s.seqRepo.NextReceiptNumber(ctx, *b, *y)
	if err != nil {
		logger.Error("Failed to advance receipt counter", slog.String("branch", b.Name), slog.String("academic_year", y.Code), slog.String("error", err.Error()))
		return "", err
	}

	return seq.ReceiptNumber(s.receiptIncludesPrefix), nil
}

func (s *sequenceService) ResyncReceiptCounter(ctx context.Context, branch, academicYear string) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	b, y, err := s.resolveScope(ctx, branch, academicYear)
	if err != nil {
		return 0, err
	}

	maxNo, err := s.seqRepo.ResyncReceiptCounter(ctx, *b, *y)
	if err != nil {
		logger.Error("Failed to resync receipt counter", slog.String("branch", b.Name), slog.String("academic_year", y.Code), slog.String("error", err.Error()))
		return 0, err
	}

	logger.Info("Receipt counter resynced", slog.String("branch", b.Name), slog.String("academic_year", y.Code), slog.Int64("last_receipt_no", maxNo))
	return maxNo, nil
}
