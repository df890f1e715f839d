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

type StudentFeeServiceTestSuite struct {
	suite.Suite
	studentRepo     *MockStudentRepository
	installmentRepo *MockInstallmentRepository
	feeRepo         *MockStudentFeeRepository
	service         portssvc.StudentFeeSvcFacade
}

func (suite *StudentFeeServiceTestSuite) SetupTest() {
	suite.studentRepo = new(MockStudentRepository)
	suite.installmentRepo = new(MockInstallmentRepository)
	suite.feeRepo = new(MockStudentFeeRepository)
	suite.service = services.NewStudentFeeService(suite.studentRepo, suite.installmentRepo, suite.feeRepo)
}

func (suite *StudentFeeServiceTestSuite) TestAssignSpecialFee_SkipsUnknownAndDuplicate() {
	ctx := context.Background()

	suite.studentRepo.On("FindStudentsByIDs", ctx, []string{"stu-1", "stu-2", "stu-gone"}).
		Return(map[string]domain.Student{
			"stu-1": {StudentID: "stu-1"},
			"stu-2": {StudentID: "stu-2"},
		}, nil).Once()
	suite.feeRepo.On("ExistsStudentFee", ctx, "stu-1", "ft-picnic", "2025-2026").Return(false, nil).Once()
	suite.feeRepo.On("ExistsStudentFee", ctx, "stu-2", "ft-picnic", "2025-2026").Return(true, nil).Once()

	var saved []domain.StudentFee
	suite.feeRepo.On("SaveStudentFees", ctx, mock.MatchedBy(func(fees []domain.StudentFee) bool {
		saved = append(saved, fees...)
		return len(fees) == 1
	})).Return(nil).Once()

	result, err := suite.service.AssignSpecialFee(ctx, dto.SpecialFeeRequest{
		StudentIDs:   []string{"stu-1", "stu-2", "stu-gone"},
		FeeTypeID:    "ft-picnic",
		FeeTypeName:  "Picnic Fee",
		Amount:       decimal.NewFromInt(250),
		AcademicYear: "2025-2026",
	}, "user-1")

	suite.Require().NoError(err)
	suite.Equal(1, result.AssignedCount)
	suite.Equal(2, result.SkippedCount)

	suite.Require().Len(saved, 1)
	suite.Equal("stu-1", saved[0].StudentID)
	suite.Equal(domain.PeriodOneTime, saved[0].Period)
	suite.Equal(domain.StatusPending, saved[0].Status)
	suite.True(saved[0].DueAmount.Equal(decimal.NewFromInt(250)))
	suite.Equal("user-1", saved[0].CreatedBy)
}

func (suite *StudentFeeServiceTestSuite) TestAssignSpecialFee_NegativeAmountRejected() {
	ctx := context.Background()

	_, err := suite.service.AssignSpecialFee(ctx, dto.SpecialFeeRequest{
		StudentIDs:   []string{"stu-1"},
		FeeTypeID:    "ft-picnic",
		FeeTypeName:  "Picnic Fee",
		Amount:       decimal.NewFromInt(-5),
		AcademicYear: "2025-2026",
	}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.studentRepo.AssertNotCalled(suite.T(), "FindStudentsByIDs", mock.Anything, mock.Anything)
}

func (suite *StudentFeeServiceTestSuite) TestUpdateStudentFee_Recalculates() {
	ctx := context.Background()

	fee := domain.StudentFee{
		FeeID:      "fee-1",
		StudentID:  "stu-1",
		TotalFee:   decimal.NewFromInt(1000),
		PaidAmount: decimal.NewFromInt(200),
		IsActive:   true,
	}
	fee.Recalculate()
	suite.feeRepo.On("FindStudentFeeByID", ctx, "fee-1").Return(&fee, nil).Once()

	var updated []domain.StudentFee
	suite.feeRepo.On("UpdateStudentFees", ctx, mock.MatchedBy(func(fees []domain.StudentFee) bool {
		updated = fees
		return len(fees) == 1
	})).Return(nil).Once()

	got, err := suite.service.UpdateStudentFee(ctx, "fee-1", dto.UpdateStudentFeeRequest{
		TotalFee:   decimal.NewFromInt(1200),
		Concession: decimal.NewFromInt(100),
	}, "user-1")

	suite.Require().NoError(err)
	suite.True(got.TotalFee.Equal(decimal.NewFromInt(1200)))
	suite.True(got.DueAmount.Equal(decimal.NewFromInt(900)))
	suite.Equal(domain.StatusPartial, got.Status)
	suite.Require().Len(updated, 1)
	suite.Equal("user-1", updated[0].LastUpdatedBy)
}

func (suite *StudentFeeServiceTestSuite) TestUpdateStudentFee_NegativeValuesRejected() {
	ctx := context.Background()

	_, err := suite.service.UpdateStudentFee(ctx, "fee-1", dto.UpdateStudentFeeRequest{
		TotalFee: decimal.NewFromInt(-1),
	}, "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.feeRepo.AssertNotCalled(suite.T(), "FindStudentFeeByID", mock.Anything, mock.Anything)
}

func (suite *StudentFeeServiceTestSuite) TestDeleteStudentFee_PaidObligationBlocked() {
	ctx := context.Background()

	fee := domain.StudentFee{
		FeeID:      "fee-1",
		TotalFee:   decimal.NewFromInt(1000),
		PaidAmount: decimal.NewFromInt(10),
	}
	fee.Recalculate()
	suite.feeRepo.On("FindStudentFeeByID", ctx, "fee-1").Return(&fee, nil).Once()

	err := suite.service.DeleteStudentFee(ctx, "fee-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.feeRepo.AssertNotCalled(suite.T(), "DeleteStudentFee", mock.Anything, mock.Anything)
}

func (suite *StudentFeeServiceTestSuite) TestDeleteStudentFee_UnpaidObligationDeleted() {
	ctx := context.Background()

	fee := domain.StudentFee{FeeID: "fee-1", TotalFee: decimal.NewFromInt(1000)}
	fee.Recalculate()
	suite.feeRepo.On("FindStudentFeeByID", ctx, "fee-1").Return(&fee, nil).Once()
	suite.feeRepo.On("DeleteStudentFee", ctx, "fee-1").Return(nil).Once()

	err := suite.service.DeleteStudentFee(ctx, "fee-1")

	suite.Require().NoError(err)
	suite.feeRepo.AssertExpectations(suite.T())
}

func (suite *StudentFeeServiceTestSuite) TestGetStudentFeeDetails_OrderedSchedule() {
	ctx := context.Background()

	suite.studentRepo.On("FindStudentByID", ctx, "stu-1").Return(&domain.Student{
		StudentID: "stu-1",
		Branch:    "Town Campus",
	}, nil).Once()

	apr := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	aug := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	term1 := domain.StudentFee{
		FeeID: "fee-t1", StudentID: "stu-1", FeeTypeName: "Tuition Fee",
		Period: "Term 1", TotalFee: decimal.NewFromInt(340), DueDate: &apr, IsActive: true,
	}
	term1.Recalculate()
	term2 := domain.StudentFee{
		FeeID: "fee-t2", StudentID: "stu-1", FeeTypeName: "Tuition Fee",
		Period: "Term 2", TotalFee: decimal.NewFromInt(330), DueDate: &aug, IsActive: true,
	}
	term2.Recalculate()
	oneOff := domain.StudentFee{
		FeeID: "fee-sp", StudentID: "stu-1", FeeTypeName: "Picnic Fee",
		Period: domain.PeriodOneTime, TotalFee: decimal.NewFromInt(250), IsActive: true,
	}
	oneOff.Recalculate()

	// Returned unordered; undated one-off fees list last.
	suite.feeRepo.On("FindStudentFeesByStudent", ctx, "stu-1", "2025-2026").
		Return([]domain.StudentFee{oneOff, term2, term1}, nil).Once()
	suite.installmentRepo.On("FindInstallmentsForBranchYear", ctx, "Town Campus", "2025-2026").
		Return([]domain.FeeInstallment{
			{Title: "Term 1", InstallmentNo: 1},
			{Title: "Term 2", InstallmentNo: 2},
		}, nil).Once()

	details, err := suite.service.GetStudentFeeDetails(ctx, "stu-1", "2025-2026")

	suite.Require().NoError(err)
	suite.Require().Len(details, 3)
	suite.Equal([]int{1, 2, 3}, []int{details[0].Sr, details[1].Sr, details[2].Sr})
	suite.Equal("Term 1", details[0].Title)
	suite.Equal("Term 2", details[1].Title)
	suite.Equal("Picnic Fee", details[2].Title)
	suite.True(details[2].Payable.Equal(decimal.NewFromInt(250)))
}

func TestStudentFeeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StudentFeeServiceTestSuite))
}
