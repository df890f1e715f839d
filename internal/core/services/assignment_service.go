package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/schoolworks/fee_management_app/internal/apperrors"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	portsrepo "github.com/schoolworks/fee_management_app/internal/core/ports/repositories"
	portssvc "github.com/schoolworks/fee_management_app/internal/core/ports/services"
	"github.com/schoolworks/fee_management_app/internal/dto"
	"github.com/schoolworks/fee_management_app/internal/middleware"
	"github.com/schoolworks/fee_management_app/internal/utils/feecalc"
	"github.com/shopspring/decimal"
)

// assignmentService converts class fee templates into concrete student
// obligations, applying branch/location/new-admission scoping and installment
// splitting.
type assignmentService struct {
	studentRepo     portsrepo.StudentRepositoryFacade
	branchRepo      portsrepo.BranchRepositoryFacade
	structureRepo   portsrepo.FeeStructureReader
	installmentRepo portsrepo.FeeInstallmentReader
	feeRepo         portsrepo.StudentFeeRepositoryFacade
}

// NewAssignmentService creates a new AssignmentService.
func NewAssignmentService(
	studentRepo portsrepo.StudentRepositoryFacade,
	branchRepo portsrepo.BranchRepositoryFacade,
	structureRepo portsrepo.FeeStructureReader,
	installmentRepo portsrepo.FeeInstallmentReader,
	feeRepo portsrepo.StudentFeeRepositoryFacade,
) portssvc.AssignmentSvcFacade {
	return &assignmentService{
		studentRepo:     studentRepo,
		branchRepo:      branchRepo,
		structureRepo:   structureRepo,
		installmentRepo: installmentRepo,
		feeRepo:         feeRepo,
	}
}

var _ portssvc.AssignmentSvcFacade = (*assignmentService)(nil)

func skipped(reason string) *dto.AssignResult {
	return &dto.AssignResult{Status: dto.AssignStatusSkipped, Reason: reason}
}

// AssignFeeToStudent applies one template to one student.
// Implements portssvc.AssignmentSvcFacade.
func (s *assignmentService) AssignFeeToStudent(ctx context.Context, studentID, feeStructureID string) (*dto.AssignResult, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student %s: %w", studentID, err)
	}

	structure, err := s.structureRepo.FindFeeStructureByID(ctx, feeStructureID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up fee structure %s: %w", feeStructureID, err)
	}

	return s.assign(ctx, *student, *structure, student.IsNewAdmission)
}

// assign holds the shared single-structure pipeline. The isNew flag is separated
// from the student row because auto-enrollment at admission time runs before the
// student master reflects the new-admission state.
func (s *assignmentService) assign(ctx context.Context, student domain.Student, structure domain.FeeStructure, isNew bool) (*dto.AssignResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("student_id", student.StudentID),
		slog.String("fee_structure_id", structure.FeeStructureID),
	)

	// Scope checks: none of these are errors, bulk flows expect most templates to
	// be not applicable for most students.
	if structure.Branch != domain.BranchAll && structure.Branch != student.Branch {
		logger.Debug("Skipping assignment: branch mismatch", slog.String("structure_branch", structure.Branch), slog.String("student_branch", student.Branch))
		return skipped("branch mismatch"), nil
	}

	if structure.Branch == domain.BranchAll && !domain.IsAllLocation(structure.Location) {
		branch, err := s.branchRepo.FindBranchByNameOrCode(ctx, student.Branch)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve branch %q for location scoping: %w", student.Branch, err)
		}
		if !strings.EqualFold(branch.LocationName, structure.Location) {
			logger.Debug("Skipping assignment: location mismatch", slog.String("structure_location", structure.Location), slog.String("student_location", branch.LocationName))
			return skipped("location mismatch"), nil
		}
	}

	if structure.IsNewAdmission && !isNew {
		logger.Debug("Skipping assignment: structure is for new admissions only")
		return skipped("new admissions only"), nil
	}

	exists, err := s.feeRepo.ExistsStudentFee(ctx, student.StudentID, structure.FeeTypeID, structure.AcademicYear)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing obligations: %w", err)
	}
	if exists {
		logger.Debug("Skipping assignment: fee type already assigned for this year")
		return skipped("already assigned"), nil
	}

	fees, skipReason, err := s.buildObligations(ctx, student, structure)
	if err != nil {
		return nil, err
	}
	if skipReason != "" {
		logger.Info("Skipping assignment", slog.String("reason", skipReason))
		return skipped(skipReason), nil
	}

	if err := s.feeRepo.SaveStudentFees(ctx, fees); err != nil {
		return nil, fmt.Errorf("failed to save obligations: %w", err)
	}

	logger.Info("Fee assigned", slog.Int("obligations", len(fees)))
	return &dto.AssignResult{Status: dto.AssignStatusAssigned, Created: len(fees)}, nil
}

// buildObligations resolves installment definitions and produces the obligation
// rows for one (student, structure) pair. A non-empty skip reason means the
// structure does not apply; no default periods are ever fabricated.
func (s *assignmentService) buildObligations(ctx context.Context, student domain.Student, structure domain.FeeStructure) ([]domain.StudentFee, string, error) {
	installments, err := s.installmentRepo.FindInstallmentsForBranchYear(ctx, student.Branch, structure.AcademicYear)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load installment definitions: %w", err)
	}

	// Resolve the structure's periods: explicit fee-type link first, then
	// normalized title match against the fee type name.
	linked := make([]domain.FeeInstallment, 0, len(installments))
	for _, inst := range installments {
		if inst.FeeTypeID != "" && inst.FeeTypeID == structure.FeeTypeID {
			linked = append(linked, inst)
		}
	}
	if len(linked) == 0 {
		normType := feecalc.NormalizeTitle(structure.FeeTypeName)
		for _, inst := range installments {
			if feecalc.NormalizeTitle(inst.Title) == normType {
				linked = append(linked, inst)
			}
		}
	}

	now := time.Now().UTC()
	creator, _ := middleware.GetUserIDFromCtx(ctx)
	newFee := func(period string, amount decimal.Decimal, dueDate *time.Time) domain.StudentFee {
		f := domain.StudentFee{
			FeeID:        uuid.NewString(),
			StudentID:    student.StudentID,
			FeeTypeID:    structure.FeeTypeID,
			FeeTypeName:  structure.FeeTypeName,
			AcademicYear: structure.AcademicYear,
			Period:       period,
			TotalFee:     amount,
			DueDate:      dueDate,
			IsActive:     true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creator,
				LastUpdatedAt: now,
				LastUpdatedBy: creator,
			},
		}
		f.Recalculate()
		return f
	}

	if structure.InstallmentsCount > 0 && structure.TotalAmount.GreaterThan(decimal.Zero) {
		if len(linked) == 0 {
			// Strict behavior: a multi-period structure with no matching installment
			// definitions is skipped entirely.
			return nil, "no installment definitions for fee type", nil
		}

		sort.Slice(linked, func(i, j int) bool { return linked[i].StartDate.Before(linked[j].StartDate) })

		amounts := feecalc.SplitTotal(structure.TotalAmount, len(linked))
		fees := make([]domain.StudentFee, len(linked))
		for i, inst := range linked {
			lastPay := inst.LastPayDate
			fees[i] = newFee(inst.Title, amounts[i], &lastPay)
		}
		return fees, "", nil
	}

	if structure.MonthlyAmount.GreaterThan(decimal.Zero) {
		dueDate := dueDateByTitle(linked, structure.FeeTypeName)
		return []domain.StudentFee{newFee(domain.PeriodMonthly, structure.MonthlyAmount, dueDate)}, "", nil
	}

	dueDate := dueDateByTitle(linked, structure.FeeTypeName)
	return []domain.StudentFee{newFee(domain.PeriodOneTime, structure.TotalAmount, dueDate)}, "", nil
}

// dueDateByTitle picks the last-pay date of the installment whose title matches the
// fee type name, if any.
func dueDateByTitle(installments []domain.FeeInstallment, feeTypeName string) *time.Time {
	normType := feecalc.NormalizeTitle(feeTypeName)
	for _, inst := range installments {
		if feecalc.NormalizeTitle(inst.Title) == normType {
			d := inst.LastPayDate
			return &d
		}
	}
	return nil
}

// AutoEnrollStudentFees assigns every template matching the student's class, year
// and branch. Branch matching is strict: templates scoped to "All" branches do not
// implicitly apply.
// Implements portssvc.AssignmentSvcFacade.
func (s *assignmentService) AutoEnrollStudentFees(ctx context.Context, req dto.AutoEnrollRequest) (*dto.AutoEnrollResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("student_id", req.StudentID))

	student, err := s.studentRepo.FindStudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student %s: %w", req.StudentID, err)
	}

	year := req.AcademicYear
	if year == "" {
		year = student.AcademicYear
	}
	if year == "" {
		return nil, fmt.Errorf("%w: academic year missing for auto enrollment of student %s", apperrors.ErrValidation, req.StudentID)
	}

	structures, err := s.structureRepo.FindFeeStructures(ctx, req.ClassName, year, student.Branch)
	if err != nil {
		return nil, fmt.Errorf("failed to list fee structures: %w", err)
	}

	result := &dto.AutoEnrollResult{}
	for _, structure := range structures {
		res, err := s.assign(ctx, *student, structure, req.IsNewAdmission)
		if err != nil {
			// One structure failing must not abort the batch; obligations already
			// saved for earlier structures stay committed.
			logger.Error("Auto-enroll structure failed", slog.String("fee_structure_id", structure.FeeStructureID), slog.String("error", err.Error()))
			result.Errors = append(result.Errors, fmt.Sprintf("structure %s: %v", structure.FeeStructureID, err))
			continue
		}
		if res.Status == dto.AssignStatusSkipped {
			result.SkippedCount++
			continue
		}
		result.AssignedCount += res.Created
	}

	logger.Info("Auto-enroll completed",
		slog.Int("structures", len(structures)),
		slog.Int("assigned", result.AssignedCount),
		slog.Int("skipped", result.SkippedCount),
		slog.Int("failures", len(result.Errors)),
	)
	return result, nil
}
