package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
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

// studentFeeService covers manual obligation maintenance: one-off special fees,
// amendments, deletion, and the collection-screen listing.
type studentFeeService struct {
	studentRepo     portsrepo.StudentRepositoryFacade
	installmentRepo portsrepo.FeeInstallmentReader
	feeRepo         portsrepo.StudentFeeRepositoryFacade
}

// NewStudentFeeService creates a new StudentFeeService.
func NewStudentFeeService(studentRepo portsrepo.StudentRepositoryFacade, installmentRepo portsrepo.FeeInstallmentReader, feeRepo portsrepo.StudentFeeRepositoryFacade) portssvc.StudentFeeSvcFacade {
	return &studentFeeService{
		studentRepo:     studentRepo,
		installmentRepo: installmentRepo,
		feeRepo:         feeRepo,
	}
}

var _ portssvc.StudentFeeSvcFacade = (*studentFeeService)(nil)

// AssignSpecialFee implements portssvc.StudentFeeSvcFacade.
func (s *studentFeeService) AssignSpecialFee(ctx context.Context, req dto.SpecialFeeRequest, creatorUserID string) (*dto.SpecialFeeResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("fee_type_id", req.FeeTypeID))

	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}

	students, err := s.studentRepo.FindStudentsByIDs(ctx, req.StudentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to look up students: %w", err)
	}

	now := time.Now().UTC()
	result := &dto.SpecialFeeResult{}
	for _, studentID := range req.StudentIDs {
		if _, ok := students[studentID]; !ok {
			result.SkippedCount++
			continue
		}

		exists, err := s.feeRepo.ExistsStudentFee(ctx, studentID, req.FeeTypeID, req.AcademicYear)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing obligations for student %s: %w", studentID, err)
		}
		if exists {
			result.SkippedCount++
			continue
		}

		fee := domain.StudentFee{
			FeeID:        uuid.NewString(),
			StudentID:    studentID,
			FeeTypeID:    req.FeeTypeID,
			FeeTypeName:  req.FeeTypeName,
			AcademicYear: req.AcademicYear,
			Period:       domain.PeriodOneTime,
			TotalFee:     req.Amount,
			IsActive:     true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		}
		fee.Recalculate()

		// Each student is its own unit of work: a failure here is recorded and the
		// loop moves on, it never rolls back fees already saved for other students.
		if err := s.feeRepo.SaveStudentFees(ctx, []domain.StudentFee{fee}); err != nil {
			logger.Error("Failed to save special fee", slog.String("student_id", studentID), slog.String("error", err.Error()))
			result.SkippedCount++
			continue
		}
		result.AssignedCount++
	}

	logger.Info("Special fee assignment completed", slog.Int("assigned", result.AssignedCount), slog.Int("skipped", result.SkippedCount))
	return result, nil
}

// UpdateStudentFee implements portssvc.StudentFeeSvcFacade.
func (s *studentFeeService) UpdateStudentFee(ctx context.Context, feeID string, req dto.UpdateStudentFeeRequest, updaterUserID string) (*domain.StudentFee, error) {
	if req.TotalFee.IsNegative() || req.Concession.IsNegative() {
		return nil, fmt.Errorf("%w: total fee and concession must not be negative", apperrors.ErrValidation)
	}

	fee, err := s.feeRepo.FindStudentFeeByID(ctx, feeID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up obligation %s: %w", feeID, err)
	}

	fee.TotalFee = req.TotalFee
	fee.Concession = req.Concession
	fee.Recalculate()
	fee.LastUpdatedAt = time.Now().UTC()
	fee.LastUpdatedBy = updaterUserID

	if err := s.feeRepo.UpdateStudentFees(ctx, []domain.StudentFee{*fee}); err != nil {
		return nil, fmt.Errorf("failed to persist obligation %s: %w", feeID, err)
	}
	return fee, nil
}

// DeleteStudentFee implements portssvc.StudentFeeSvcFacade.
func (s *studentFeeService) DeleteStudentFee(ctx context.Context, feeID string) error {
	fee, err := s.feeRepo.FindStudentFeeByID(ctx, feeID)
	if err != nil {
		return fmt.Errorf("failed to look up obligation %s: %w", feeID, err)
	}

	// Obligations with collected payments are financial records; the payments must
	// be reversed first.
	if fee.PaidAmount.GreaterThan(decimal.Zero) {
		return fmt.Errorf("%w: obligation %s has collected payments", apperrors.ErrConflict, feeID)
	}

	return s.feeRepo.DeleteStudentFee(ctx, feeID)
}

// GetStudentFeeDetails implements portssvc.StudentFeeSvcFacade.
func (s *studentFeeService) GetStudentFeeDetails(ctx context.Context, studentID, academicYear string) ([]dto.StudentFeeDetail, error) {
	student, err := s.studentRepo.FindStudentByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student %s: %w", studentID, err)
	}

	fees, err := s.feeRepo.FindStudentFeesByStudent(ctx, studentID, academicYear)
	if err != nil {
		return nil, fmt.Errorf("failed to load obligations: %w", err)
	}

	installments, err := s.installmentRepo.FindInstallmentsForBranchYear(ctx, student.Branch, academicYear)
	if err != nil {
		return nil, fmt.Errorf("failed to load installment definitions: %w", err)
	}
	instNoByTitle := make(map[string]int, len(installments))
	for _, inst := range installments {
		instNoByTitle[feecalc.NormalizeTitle(inst.Title)] = inst.InstallmentNo
	}

	// Order by due date, breaking ties by installment number, then by ID for a
	// stable listing.
	farFuture := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
	sortKey := func(f domain.StudentFee) (time.Time, int) {
		due := farFuture
		if f.DueDate != nil {
			due = *f.DueDate
		}
		instNo := 999
		if n, ok := instNoByTitle[feecalc.NormalizeTitle(feeTitle(f))]; ok {
			instNo = n
		}
		return due, instNo
	}
	sort.Slice(fees, func(i, j int) bool {
		di, ni := sortKey(fees[i])
		dj, nj := sortKey(fees[j])
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if ni != nj {
			return ni < nj
		}
		return fees[i].FeeID < fees[j].FeeID
	})

	details := make([]dto.StudentFeeDetail, len(fees))
	for i, f := range fees {
		details[i] = dto.StudentFeeDetail{
			Sr:         i + 1,
			FeeID:      f.FeeID,
			Title:      feeTitle(f),
			Period:     f.Period,
			Payable:    f.TotalFee,
			PaidAmount: f.PaidAmount,
			Concession: f.Concession,
			DueAmount:  f.DueAmount,
			Status:     string(f.Status),
			DueDate:    f.DueDate,
		}
	}
	return details, nil
}

// feeTitle is the display title of an obligation: the period label for
// installment fees, the fee type name for one-time and monthly ones.
func feeTitle(f domain.StudentFee) string {
	if f.Period == domain.PeriodOneTime || f.Period == domain.PeriodMonthly {
		return f.FeeTypeName
	}
	return f.Period
}
