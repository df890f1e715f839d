package services_test

import (
	"context"
	"testing"

	"github.com/schoolworks/fee_management_app/internal/apperrors"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	portssvc "github.com/schoolworks/fee_management_app/internal/core/ports/services"
	"github.com/schoolworks/fee_management_app/internal/core/services"
	"github.com/schoolworks/fee_management_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ConcessionServiceTestSuite struct {
	suite.Suite
	studentRepo    *MockStudentRepository
	concessionRepo *MockConcessionRepository
	feeRepo        *MockStudentFeeRepository
	service        portssvc.ConcessionSvcFacade
}

func (suite *ConcessionServiceTestSuite) SetupTest() {
	suite.studentRepo = new(MockStudentRepository)
	suite.concessionRepo = new(MockConcessionRepository)
	suite.feeRepo = new(MockStudentFeeRepository)
	suite.service = services.NewConcessionService(suite.studentRepo, suite.concessionRepo, suite.feeRepo)
}

func (suite *ConcessionServiceTestSuite) expectStudent() {
	suite.studentRepo.On("FindStudentByID", mock.Anything, "stu-1").Return(&domain.Student{
		StudentID: "stu-1",
		Branch:    "Town Campus",
	}, nil).Once()
}

func concessionRule(feeTypeID, branch string, value int64, percent bool) domain.Concession {
	return domain.Concession{
		ConcessionID: "con-" + feeTypeID + "-" + branch,
		Title:        "Sibling Discount",
		Branch:       branch,
		AcademicYear: "2025-2026",
		FeeTypeID:    feeTypeID,
		Value:        decimal.NewFromInt(value),
		IsPercentage: percent,
	}
}

func pendingFee(feeID, feeTypeID string, total int64) domain.StudentFee {
	f := domain.StudentFee{
		FeeID:        feeID,
		StudentID:    "stu-1",
		FeeTypeID:    feeTypeID,
		AcademicYear: "2025-2026",
		Period:       "Term 1",
		TotalFee:     decimal.NewFromInt(total),
		IsActive:     true,
	}
	f.Recalculate()
	return f
}

func (suite *ConcessionServiceTestSuite) request(feeIDs ...string) dto.ApplyConcessionRequest {
	return dto.ApplyConcessionRequest{
		StudentID:    "stu-1",
		Title:        "Sibling Discount",
		AcademicYear: "2025-2026",
		FeeIDs:       feeIDs,
	}
}

func (suite *ConcessionServiceTestSuite) TestApplyConcession_ReplacesExistingConcession() {
	ctx := context.Background()
	suite.expectStudent()
	suite.concessionRepo.On("FindConcessionsByTitle", ctx, "Sibling Discount", "2025-2026").
		Return([]domain.Concession{concessionRule("ft-tuition", domain.BranchAll, 100, false)}, nil).Once()

	fee := pendingFee("fee-1", "ft-tuition", 1000)
	fee.Concession = decimal.NewFromInt(50)
	fee.Recalculate()
	suite.feeRepo.On("FindStudentFeesByIDs", ctx, []string{"fee-1"}).
		Return(map[string]domain.StudentFee{"fee-1": fee}, nil).Once()

	var updated []domain.StudentFee
	suite.feeRepo.On("UpdateStudentFees", ctx, mock.MatchedBy(func(fees []domain.StudentFee) bool {
		updated = fees
		return len(fees) == 1
	})).Return(nil).Once()

	count, err := suite.service.ApplyConcession(ctx, suite.request("fee-1"), "user-1")

	suite.Require().NoError(err)
	suite.Equal(1, count)
	suite.Require().Len(updated, 1)
	// Reapplying replaces the old concession rather than stacking on top of it.
	suite.True(updated[0].Concession.Equal(decimal.NewFromInt(100)), "concession is %s", updated[0].Concession)
	suite.True(updated[0].DueAmount.Equal(decimal.NewFromInt(900)))
	suite.Equal("user-1", updated[0].LastUpdatedBy)
}

func (suite *ConcessionServiceTestSuite) TestApplyConcession_PercentageRule() {
	ctx := context.Background()
	suite.expectStudent()
	suite.concessionRepo.On("FindConcessionsByTitle", ctx, "Sibling Discount", "2025-2026").
		Return([]domain.Concession{concessionRule("ft-tuition", domain.BranchAll, 25, true)}, nil).Once()
	suite.feeRepo.On("FindStudentFeesByIDs", ctx, []string{"fee-1"}).
		Return(map[string]domain.StudentFee{"fee-1": pendingFee("fee-1", "ft-tuition", 800)}, nil).Once()

	var updated []domain.StudentFee
	suite.feeRepo.On("UpdateStudentFees", ctx, mock.MatchedBy(func(fees []domain.StudentFee) bool {
		updated = fees
		return true
	})).Return(nil).Once()

	count, err := suite.service.ApplyConcession(ctx, suite.request("fee-1"), "user-1")

	suite.Require().NoError(err)
	suite.Equal(1, count)
	suite.Require().Len(updated, 1)
	suite.True(updated[0].Concession.Equal(decimal.NewFromInt(200)))
	suite.True(updated[0].DueAmount.Equal(decimal.NewFromInt(600)))
}

func (suite *ConcessionServiceTestSuite) TestApplyConcession_PaidObligationLeftUntouched() {
	ctx := context.Background()
	suite.expectStudent()
	suite.concessionRepo.On("FindConcessionsByTitle", ctx, "Sibling Discount", "2025-2026").
		Return([]domain.Concession{concessionRule("ft-tuition", domain.BranchAll, 100, false)}, nil).Once()

	fee := pendingFee("fee-1", "ft-tuition", 1000)
	fee.PaidAmount = decimal.NewFromInt(400)
	fee.Recalculate()
	suite.feeRepo.On("FindStudentFeesByIDs", ctx, []string{"fee-1"}).
		Return(map[string]domain.StudentFee{"fee-1": fee}, nil).Once()

	count, err := suite.service.ApplyConcession(ctx, suite.request("fee-1"), "user-1")

	suite.Require().NoError(err)
	suite.Equal(0, count)
	suite.feeRepo.AssertNotCalled(suite.T(), "UpdateStudentFees", mock.Anything, mock.Anything)
}

func (suite *ConcessionServiceTestSuite) TestApplyConcession_BranchRuleBeatsAllRule() {
	ctx := context.Background()
	suite.expectStudent()
	suite.concessionRepo.On("FindConcessionsByTitle", ctx, "Sibling Discount", "2025-2026").
		Return([]domain.Concession{
			concessionRule("ft-tuition", domain.BranchAll, 100, false),
			concessionRule("ft-tuition", "Town Campus", 250, false),
			concessionRule("ft-tuition", "Hill Campus", 999, false), // other branch, ignored
		}, nil).Once()
	suite.feeRepo.On("FindStudentFeesByIDs", ctx, []string{"fee-1"}).
		Return(map[string]domain.StudentFee{"fee-1": pendingFee("fee-1", "ft-tuition", 1000)}, nil).Once()

	var updated []domain.StudentFee
	suite.feeRepo.On("UpdateStudentFees", ctx, mock.MatchedBy(func(fees []domain.StudentFee) bool {
		updated = fees
		return true
	})).Return(nil).Once()

	count, err := suite.service.ApplyConcession(ctx, suite.request("fee-1"), "user-1")

	suite.Require().NoError(err)
	suite.Equal(1, count)
	suite.Require().Len(updated, 1)
	suite.True(updated[0].Concession.Equal(decimal.NewFromInt(250)))
}

func (suite *ConcessionServiceTestSuite) TestApplyConcession_NoVisibleRules() {
	ctx := context.Background()
	suite.expectStudent()
	// The only rule belongs to another branch, so the scheme is invisible here.
	suite.concessionRepo.On("FindConcessionsByTitle", ctx, "Sibling Discount", "2025-2026").
		Return([]domain.Concession{concessionRule("ft-tuition", "Hill Campus", 100, false)}, nil).Once()

	count, err := suite.service.ApplyConcession(ctx, suite.request("fee-1"), "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrNoConcessionRules)
	suite.Equal(0, count)
	suite.feeRepo.AssertNotCalled(suite.T(), "FindStudentFeesByIDs", mock.Anything, mock.Anything)
}

func (suite *ConcessionServiceTestSuite) TestApplyConcession_ForeignObligationRejected() {
	ctx := context.Background()
	suite.expectStudent()
	suite.concessionRepo.On("FindConcessionsByTitle", ctx, "Sibling Discount", "2025-2026").
		Return([]domain.Concession{concessionRule("ft-tuition", domain.BranchAll, 100, false)}, nil).Once()

	other := pendingFee("fee-2", "ft-tuition", 500)
	other.StudentID = "stu-9"
	suite.feeRepo.On("FindStudentFeesByIDs", ctx, []string{"fee-2"}).
		Return(map[string]domain.StudentFee{"fee-2": other}, nil).Once()

	count, err := suite.service.ApplyConcession(ctx, suite.request("fee-2"), "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Equal(0, count)
	suite.feeRepo.AssertNotCalled(suite.T(), "UpdateStudentFees", mock.Anything, mock.Anything)
}

func (suite *ConcessionServiceTestSuite) TestApplyConcession_UnknownObligationRejected() {
	ctx := context.Background()
	suite.expectStudent()
	suite.concessionRepo.On("FindConcessionsByTitle", ctx, "Sibling Discount", "2025-2026").
		Return([]domain.Concession{concessionRule("ft-tuition", domain.BranchAll, 100, false)}, nil).Once()
	suite.feeRepo.On("FindStudentFeesByIDs", ctx, []string{"fee-missing"}).
		Return(map[string]domain.StudentFee{}, nil).Once()

	_, err := suite.service.ApplyConcession(ctx, suite.request("fee-missing"), "user-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestConcessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConcessionServiceTestSuite))
}
