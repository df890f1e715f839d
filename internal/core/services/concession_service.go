package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/schoolworks/fee_management_app/internal/apperrors"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	portsrepo "github.com/schoolworks/fee_management_app/internal/core/ports/repositories"
	portssvc "github.com/schoolworks/fee_management_app/internal/core/ports/services"
	"github.com/schoolworks/fee_management_app/internal/dto"
	"github.com/schoolworks/fee_management_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoConcessionRules is returned when a scheme has no rule visible to the
	// student's branch for the requested year.
	ErrNoConcessionRules = errors.New("no concession rules found for this title, year and branch")
)

// concessionService applies named discount schemes to existing obligations.
type concessionService struct {
	studentRepo    portsrepo.StudentRepositoryFacade
	concessionRepo portsrepo.ConcessionReader
	feeRepo        portsrepo.StudentFeeRepositoryFacade
}

// NewConcessionService creates a new ConcessionService.
func NewConcessionService(studentRepo portsrepo.StudentRepositoryFacade, concessionRepo portsrepo.ConcessionReader, feeRepo portsrepo.StudentFeeRepositoryFacade) portssvc.ConcessionSvcFacade {
	return &concessionService{
		studentRepo:    studentRepo,
		concessionRepo: concessionRepo,
		feeRepo:        feeRepo,
	}
}

var _ portssvc.ConcessionSvcFacade = (*concessionService)(nil)

// ApplyConcession implements portssvc.ConcessionSvcFacade.
func (s *concessionService) ApplyConcession(ctx context.Context, req dto.ApplyConcessionRequest, updaterUserID string) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("student_id", req.StudentID),
		slog.String("concession_title", req.Title),
	)

	student, err := s.studentRepo.FindStudentByID(ctx, req.StudentID)
	if err != nil {
		return 0, fmt.Errorf("failed to look up student %s: %w", req.StudentID, err)
	}

	rules, err := s.concessionRepo.FindConcessionsByTitle(ctx, req.Title, req.AcademicYear)
	if err != nil {
		return 0, fmt.Errorf("failed to load concession rules: %w", err)
	}

	// One rule per fee type, preferring a branch-specific rule over an "All" rule.
	ruleMap := make(map[string]domain.Concession)
	for _, rule := range rules {
		if rule.Branch != domain.BranchAll && rule.Branch != student.Branch {
			continue
		}
		existing, ok := ruleMap[rule.FeeTypeID]
		if !ok || (existing.Branch == domain.BranchAll && rule.Branch != domain.BranchAll) {
			ruleMap[rule.FeeTypeID] = rule
		}
	}
	if len(ruleMap) == 0 {
		return 0, fmt.Errorf("%w: %s (%s)", ErrNoConcessionRules, req.Title, req.AcademicYear)
	}

	fees, err := s.feeRepo.FindStudentFeesByIDs(ctx, req.FeeIDs)
	if err != nil {
		return 0, fmt.Errorf("failed to load obligations: %w", err)
	}

	now := time.Now().UTC()
	updated := make([]domain.StudentFee, 0, len(req.FeeIDs))
	for _, feeID := range req.FeeIDs {
		fee, ok := fees[feeID]
		if !ok {
			return 0, fmt.Errorf("%w: unknown obligation %s", apperrors.ErrValidation, feeID)
		}
		if fee.StudentID != req.StudentID {
			return 0, fmt.Errorf("%w: obligation %s does not belong to student %s", apperrors.ErrValidation, feeID, req.StudentID)
		}

		// Obligations with collected payments are left untouched.
		if fee.PaidAmount.GreaterThan(decimal.Zero) {
			logger.Debug("Skipping concession on paid obligation", slog.String("fee_id", feeID))
			continue
		}

		rule, ok := ruleMap[fee.FeeTypeID]
		if !ok {
			logger.Debug("No rule for fee type, skipping", slog.String("fee_id", feeID), slog.String("fee_type_id", fee.FeeTypeID))
			continue
		}

		// Set, never add: reapplying a scheme replaces the prior concession.
		fee.Concession = rule.AmountFor(fee.TotalFee)
		fee.Recalculate()
		fee.LastUpdatedAt = now
		fee.LastUpdatedBy = updaterUserID
		updated = append(updated, fee)
	}

	if len(updated) == 0 {
		logger.Info("Concession applied to no obligations")
		return 0, nil
	}

	if err := s.feeRepo.UpdateStudentFees(ctx, updated); err != nil {
		return 0, fmt.Errorf("failed to persist concessions: %w", err)
	}

	logger.Info("Concession applied", slog.Int("updated", len(updated)))
	return len(updated), nil
}
