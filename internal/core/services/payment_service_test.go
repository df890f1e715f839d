package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/schoolworks/fee_management_app/internal/apperrors"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	portssvc "github.com/schoolworks/fee_management_app/internal/core/ports/services"
	"github.com/schoolworks/fee_management_app/internal/core/services"
	"github.com/schoolworks/fee_management_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type PaymentServiceTestSuite struct {
	suite.Suite
	studentRepo *MockStudentRepository
	branchRepo  *MockBranchRepository
	yearRepo    *MockAcademicYearRepository
	feeRepo     *MockStudentFeeRepository
	paymentRepo *MockPaymentRepository
	service     portssvc.PaymentSvcFacade
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.studentRepo = new(MockStudentRepository)
	suite.branchRepo = new(MockBranchRepository)
	suite.yearRepo = new(MockAcademicYearRepository)
	suite.feeRepo = new(MockStudentFeeRepository)
	suite.paymentRepo = new(MockPaymentRepository)
	suite.service = services.NewPaymentService(
		suite.studentRepo,
		suite.branchRepo,
		suite.yearRepo,
		suite.feeRepo,
		suite.paymentRepo,
	)
}

func (suite *PaymentServiceTestSuite) expectScope() (domain.Student, domain.Branch, domain.AcademicYear) {
	student := domain.Student{StudentID: "stu-1", Name: "A Student", Branch: "Town Campus"}
	branch := domain.Branch{BranchID: 1, Name: "Town Campus", Code: "TC", LocationCode: "HA"}
	year := domain.AcademicYear{AcademicYearID: 7, Code: "2025-2026"}
	suite.studentRepo.On("FindStudentByID", mock.Anything, "stu-1").Return(&student, nil).Once()
	suite.branchRepo.On("FindBranchByNameOrCode", mock.Anything, "Town Campus").Return(&branch, nil).Once()
	suite.yearRepo.On("FindAcademicYearByCode", mock.Anything, "2025-2026").Return(&year, nil).Once()
	return student, branch, year
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_DropsNoOpLinesAndDelegates() {
	ctx := context.Background()
	student, branch, year := suite.expectScope()

	suite.feeRepo.On("FindStudentFeesByIDs", ctx, []string{"fee-1"}).Return(map[string]domain.StudentFee{
		"fee-1": {FeeID: "fee-1", StudentID: "stu-1"},
	}, nil).Once()

	var gotAllocations []domain.PaymentAllocation
	var gotDetails domain.PaymentDetails
	suite.paymentRepo.On("RecordPayment", ctx, student, branch, year,
		mock.MatchedBy(func(allocs []domain.PaymentAllocation) bool {
			gotAllocations = allocs
			return len(allocs) == 1
		}),
		mock.MatchedBy(func(details domain.PaymentDetails) bool {
			gotDetails = details
			return true
		}),
	).Return(&domain.PaymentResult{
		ReceiptNo: "TC07",
		TotalPaid: decimal.NewFromInt(500),
	}, nil).Once()

	resp, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		StudentID:    "stu-1",
		AcademicYear: "2025-2026",
		PaymentDate:  "2026-01-15",
		Allocations: []dto.PaymentAllocationRequest{
			{FeeID: "fee-1", Amount: decimal.NewFromInt(500)},
			{FeeID: "fee-2"}, // zero amount and zero concession, dropped
		},
	}, "user-1", "Front Desk")

	suite.Require().NoError(err)
	suite.Equal("TC07", resp.ReceiptNo)
	suite.True(resp.TotalPaid.Equal(decimal.NewFromInt(500)))
	suite.Equal("Front Desk", resp.CollectedByName)

	suite.Require().Len(gotAllocations, 1)
	suite.Equal("fee-1", gotAllocations[0].FeeID)
	suite.Equal("Cash", gotDetails.Mode)
	suite.Equal("user-1", gotDetails.CollectedBy)
	suite.Equal(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), gotDetails.Date)
	suite.paymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NoEffectiveAllocations() {
	ctx := context.Background()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		StudentID:    "stu-1",
		AcademicYear: "2025-2026",
		Allocations: []dto.PaymentAllocationRequest{
			{FeeID: "fee-1"},
		},
	}, "user-1", "Front Desk")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.paymentRepo.AssertNotCalled(suite.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_NegativeAllocationRejected() {
	ctx := context.Background()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		StudentID:    "stu-1",
		AcademicYear: "2025-2026",
		Allocations: []dto.PaymentAllocationRequest{
			{FeeID: "fee-1", Amount: decimal.NewFromInt(-10)},
		},
	}, "user-1", "Front Desk")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_BadDateRejected() {
	ctx := context.Background()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		StudentID:    "stu-1",
		AcademicYear: "2025-2026",
		PaymentDate:  "15/01/2026",
		Allocations: []dto.PaymentAllocationRequest{
			{FeeID: "fee-1", Amount: decimal.NewFromInt(100)},
		},
	}, "user-1", "Front Desk")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *PaymentServiceTestSuite) TestRecordPayment_ForeignObligationRejected() {
	ctx := context.Background()
	suite.expectScope()

	suite.feeRepo.On("FindStudentFeesByIDs", ctx, []string{"fee-1"}).Return(map[string]domain.StudentFee{
		"fee-1": {FeeID: "fee-1", StudentID: "stu-9"},
	}, nil).Once()

	_, err := suite.service.RecordPayment(ctx, dto.RecordPaymentRequest{
		StudentID:    "stu-1",
		AcademicYear: "2025-2026",
		Allocations: []dto.PaymentAllocationRequest{
			{FeeID: "fee-1", Amount: decimal.NewFromInt(100)},
		},
	}, "user-1", "Front Desk")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.paymentRepo.AssertNotCalled(suite.T(), "RecordPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestReversePayment_Delegates() {
	ctx := context.Background()
	branch := domain.Branch{BranchID: 1, Name: "Town Campus", Code: "TC"}
	year := domain.AcademicYear{AcademicYearID: 7, Code: "2025-2026"}
	payment := domain.FeePayment{
		PaymentID:    "pay-1",
		ReceiptNo:    "TC05",
		Branch:       "Town Campus",
		AcademicYear: "2025-2026",
		StudentID:    "stu-1",
		IsActive:     true,
	}

	suite.paymentRepo.On("FindPaymentByID", ctx, "pay-1").Return(&payment, nil).Once()
	suite.branchRepo.On("FindBranchByNameOrCode", ctx, "Town Campus").Return(&branch, nil).Once()
	suite.yearRepo.On("FindAcademicYearByCode", ctx, "2025-2026").Return(&year, nil).Once()
	suite.paymentRepo.On("ReversePayment", ctx, payment, branch, year).Return(nil).Once()

	err := suite.service.ReversePayment(ctx, "pay-1")

	suite.Require().NoError(err)
	suite.paymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestReversePayment_AlreadyReversed() {
	ctx := context.Background()
	payment := domain.FeePayment{PaymentID: "pay-1", IsActive: false}

	suite.paymentRepo.On("FindPaymentByID", ctx, "pay-1").Return(&payment, nil).Once()

	err := suite.service.ReversePayment(ctx, "pay-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.paymentRepo.AssertNotCalled(suite.T(), "ReversePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestListStudentPayments_MapsLedgerRows() {
	ctx := context.Background()
	date := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	suite.paymentRepo.On("ListPaymentsByStudent", ctx, "stu-1", "2025-2026").Return([]domain.FeePayment{
		{
			PaymentID:        "pay-1",
			ReceiptNo:        "TC05",
			AcademicYear:     "2025-2026",
			PaymentDate:      date,
			FeeTypeName:      "Tuition Fee",
			InstallmentName:  "Term 1",
			GrossAmount:      decimal.NewFromInt(340),
			ConcessionAmount: decimal.NewFromInt(40),
			AmountPaid:       decimal.NewFromInt(300),
			DueAmount:        decimal.Zero,
			PaymentMode:      "Cash",
			CollectedByName:  "Front Desk",
			IsActive:         true,
		},
	}, nil).Once()

	items, err := suite.service.ListStudentPayments(ctx, "stu-1", "2025-2026")

	suite.Require().NoError(err)
	suite.Require().Len(items, 1)
	suite.Equal("TC05", items[0].ReceiptNo)
	suite.Equal("Term 1", items[0].InstallmentName)
	suite.True(items[0].AmountPaid.Equal(decimal.NewFromInt(300)))
	suite.True(items[0].IsActive)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
