package services

import (
	"context"
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

const paymentDateLayout = "2006-01-02"

// paymentService records payments as immutable snapshot ledger entries and
// reverses them. The repository keeps receipt issuance, obligation mutation and
// ledger writes in one database transaction; this layer validates and resolves
// scope.
type paymentService struct {
	studentRepo portsrepo.StudentRepositoryFacade
	branchRepo  portsrepo.BranchRepositoryFacade
	yearRepo    portsrepo.AcademicYearRepositoryFacade
	feeRepo     portsrepo.StudentFeeReader
	paymentRepo portsrepo.PaymentRepositoryFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	studentRepo portsrepo.StudentRepositoryFacade,
	branchRepo portsrepo.BranchRepositoryFacade,
	yearRepo portsrepo.AcademicYearRepositoryFacade,
	feeRepo portsrepo.StudentFeeReader,
	paymentRepo portsrepo.PaymentRepositoryFacade,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		studentRepo: studentRepo,
		branchRepo:  branchRepo,
		yearRepo:    yearRepo,
		feeRepo:     feeRepo,
		paymentRepo: paymentRepo,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// RecordPayment implements portssvc.PaymentSvcFacade.
func (s *paymentService) RecordPayment(ctx context.Context, req dto.RecordPaymentRequest, collectorID, collectorName string) (*dto.PaymentReceiptResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("student_id", req.StudentID))

	paymentDate := time.Now().UTC()
	if req.PaymentDate != "" {
		parsed, err := time.Parse(paymentDateLayout, req.PaymentDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid payment date %q, expected YYYY-MM-DD", apperrors.ErrValidation, req.PaymentDate)
		}
		paymentDate = parsed
	}

	// Drop no-op lines, reject negative ones.
	allocations := make([]domain.PaymentAllocation, 0, len(req.Allocations))
	feeIDs := make([]string, 0, len(req.Allocations))
	for _, alloc := range req.Allocations {
		if alloc.Amount.IsNegative() || alloc.ConcessionAmount.IsNegative() {
			return nil, fmt.Errorf("%w: allocation amounts must not be negative for obligation %s", apperrors.ErrValidation, alloc.FeeID)
		}
		if alloc.Amount.LessThanOrEqual(decimal.Zero) && alloc.ConcessionAmount.LessThanOrEqual(decimal.Zero) {
			continue
		}
		allocations = append(allocations, domain.PaymentAllocation{
			FeeID:            alloc.FeeID,
			Amount:           alloc.Amount,
			ConcessionAmount: alloc.ConcessionAmount,
		})
		feeIDs = append(feeIDs, alloc.FeeID)
	}
	if len(allocations) == 0 {
		return nil, fmt.Errorf("%w: payment has no effective allocations", apperrors.ErrValidation)
	}

	student, err := s.studentRepo.FindStudentByID(ctx, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up student %s: %w", req.StudentID, err)
	}

	branch, err := s.branchRepo.FindBranchByNameOrCode(ctx, student.Branch)
	if err != nil {
		return nil, fmt.Errorf("%w: branch %q not found", apperrors.ErrValidation, student.Branch)
	}
	year, err := s.yearRepo.FindAcademicYearByCode(ctx, req.AcademicYear)
	if err != nil {
		return nil, fmt.Errorf("%w: academic year %q not found", apperrors.ErrValidation, req.AcademicYear)
	}

	// Validate targets up front; the repository locks and re-reads them inside the
	// transaction.
	fees, err := s.feeRepo.FindStudentFeesByIDs(ctx, feeIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load obligations: %w", err)
	}
	for _, feeID := range feeIDs {
		fee, ok := fees[feeID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown obligation %s", apperrors.ErrValidation, feeID)
		}
		if fee.StudentID != req.StudentID {
			return nil, fmt.Errorf("%w: obligation %s does not belong to student %s", apperrors.ErrValidation, feeID, req.StudentID)
		}
	}

	mode := req.PaymentMode
	if mode == "" {
		mode = "Cash"
	}

	result, err := s.paymentRepo.RecordPayment(ctx, *student, *branch, *year, allocations, domain.PaymentDetails{
		Mode:            mode,
		Date:            paymentDate,
		Note:            req.Note,
		CollectedBy:     collectorID,
		CollectedByName: collectorName,
	})
	if err != nil {
		logger.Error("Failed to record payment", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment recorded",
		slog.String("receipt_no", result.ReceiptNo),
		slog.String("total_paid", result.TotalPaid.String()),
		slog.Int("lines", len(result.Payments)),
	)
	return &dto.PaymentReceiptResponse{
		ReceiptNo:       result.ReceiptNo,
		TotalPaid:       result.TotalPaid,
		CollectedByName: collectorName,
	}, nil
}

// ReversePayment implements portssvc.PaymentSvcFacade.
func (s *paymentService) ReversePayment(ctx context.Context, paymentID string) error {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.String("payment_id", paymentID))

	payment, err := s.paymentRepo.FindPaymentByID(ctx, paymentID)
	if err != nil {
		return fmt.Errorf("failed to look up payment %s: %w", paymentID, err)
	}
	if !payment.IsActive {
		return fmt.Errorf("%w: payment %s is already reversed", apperrors.ErrConflict, paymentID)
	}

	// The ledger entry snapshots branch and year by name; resolve them back to the
	// counter scope for the resync.
	branch, err := s.branchRepo.FindBranchByNameOrCode(ctx, payment.Branch)
	if err != nil {
		return fmt.Errorf("failed to resolve branch %q: %w", payment.Branch, err)
	}
	year, err := s.yearRepo.FindAcademicYearByCode(ctx, payment.AcademicYear)
	if err != nil {
		return fmt.Errorf("failed to resolve academic year %q: %w", payment.AcademicYear, err)
	}

	if err := s.paymentRepo.ReversePayment(ctx, *payment, *branch, *year); err != nil {
		logger.Error("Failed to reverse payment", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Payment reversed", slog.String("receipt_no", payment.ReceiptNo))
	return nil
}

// ListStudentPayments implements portssvc.PaymentSvcFacade.
func (s *paymentService) ListStudentPayments(ctx context.Context, studentID, academicYear string) ([]dto.PaymentHistoryItem, error) {
	payments, err := s.paymentRepo.ListPaymentsByStudent(ctx, studentID, academicYear)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	items := make([]dto.PaymentHistoryItem, len(payments))
	for i, p := range payments {
		items[i] = dto.PaymentHistoryItem{
			PaymentID:        p.PaymentID,
			ReceiptNo:        p.ReceiptNo,
			AcademicYear:     p.AcademicYear,
			PaymentDate:      p.PaymentDate,
			FeeTypeName:      p.FeeTypeName,
			InstallmentName:  p.InstallmentName,
			GrossAmount:      p.GrossAmount,
			ConcessionAmount: p.ConcessionAmount,
			AmountPaid:       p.AmountPaid,
			DueAmount:        p.DueAmount,
			PaymentMode:      p.PaymentMode,
			CollectedByName:  p.CollectedByName,
			IsActive:         p.IsActive,
		}
	}
	return items, nil
}
