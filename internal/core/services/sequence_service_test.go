package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/schoolworks/fee_management_app/internal/apperrors"
	"github.com/schoolworks/fee_management_app/internal/core/domain"
	portssvc "github.com/schoolworks/fee_management_app/internal/core/ports/services"
	"github.com/schoolworks/fee_management_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type SequenceServiceTestSuite struct {
	suite.Suite
	branchRepo *MockBranchRepository
	yearRepo   *MockAcademicYearRepository
	seqRepo    *MockSequenceRepository
	service    portssvc.SequenceSvcFacade
}

func (suite *SequenceServiceTestSuite) SetupTest() {
	suite.branchRepo = new(MockBranchRepository)
	suite.yearRepo = new(MockAcademicYearRepository)
	suite.seqRepo = new(MockSequenceRepository)
	suite.service = services.NewSequenceService(suite.branchRepo, suite.yearRepo, suite.seqRepo, false)
}

func (suite *SequenceServiceTestSuite) expectScope() (domain.Branch, domain.AcademicYear) {
	branch := domain.Branch{BranchID: 1, Name: "Town Campus", Code: "TC", LocationCode: "HA"}
	year := domain.AcademicYear{AcademicYearID: 7, Code: "2025-2026"}
	suite.branchRepo.On("FindBranchByNameOrCode", mock.Anything, "Town Campus").Return(&branch, nil)
	suite.yearRepo.On("FindAcademicYearByCode", mock.Anything, "2025-2026").Return(&year, nil)
	return branch, year
}

func (suite *SequenceServiceTestSuite) TestNextAdmissionNumber_Format() {
	ctx := context.Background()
	branch, year := suite.expectScope()

	suite.seqRepo.On("NextAdmissionNumber", ctx, branch, year).Return(&domain.BranchYearSequence{
		AdmissionPrefix: "HATC",
		LastAdmissionNo: 152,
	}, nil).Once()

	number, err := suite.service.NextAdmissionNumber(ctx, "Town Campus", "2025-2026")

	suite.Require().NoError(err)
	suite.Equal("HATC0152", number)
}

func (suite *SequenceServiceTestSuite) TestNextReceiptNumber_BareFormat() {
	ctx := context.Background()
	branch, year := suite.expectScope()

	suite.seqRepo.On("NextReceiptNumber", ctx, branch, year).Return(&domain.BranchYearSequence{
		ReceiptPrefix: "TC",
		LastReceiptNo: 6,
	}, nil).Once()

	number, err := suite.service.NextReceiptNumber(ctx, "Town Campus", "2025-2026")

	suite.Require().NoError(err)
	suite.Equal("06", number)
}

func (suite *SequenceServiceTestSuite) TestNextReceiptNumber_PrefixedFormat() {
	ctx := context.Background()
	branch, year := suite.expectScope()
	service := services.NewSequenceService(suite.branchRepo, suite.yearRepo, suite.seqRepo, true)

	suite.seqRepo.On("NextReceiptNumber", ctx, branch, year).Return(&domain.BranchYearSequence{
		ReceiptPrefix: "TC",
		LastReceiptNo: 6,
	}, nil).Once()

	number, err := service.NextReceiptNumber(ctx, "Town Campus", "2025-2026")

	suite.Require().NoError(err)
	suite.Equal("TC06", number)
}

func (suite *SequenceServiceTestSuite) TestResolveScope_MissingInputs() {
	ctx := context.Background()

	_, err := suite.service.NextAdmissionNumber(ctx, "", "2025-2026")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.NextReceiptNumber(ctx, "Town Campus", "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ResyncReceiptCounter(ctx, "", "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.seqRepo.AssertNotCalled(suite.T(), "NextAdmissionNumber", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SequenceServiceTestSuite) TestResolveScope_UnknownBranch() {
	ctx := context.Background()
	suite.branchRepo.On("FindBranchByNameOrCode", ctx, "Nowhere").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.NextReceiptNumber(ctx, "Nowhere", "2025-2026")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SequenceServiceTestSuite) TestResyncReceiptCounter_ReturnsMax() {
	ctx := context.Background()
	branch, year := suite.expectScope()

	suite.seqRepo.On("ResyncReceiptCounter", ctx, branch, year).Return(int64(41), nil).Once()

	maxNo, err := suite.service.ResyncReceiptCounter(ctx, "Town Campus", "2025-2026")

	suite.Require().NoError(err)
	suite.Equal(int64(41), maxNo)
}

// countingSequenceRepo hands out strictly increasing counter values under a mutex,
// standing in for the database row lock.
type countingSequenceRepo struct {
	mu      sync.Mutex
	receipt int64
}

func (r *countingSequenceRepo) NextAdmissionNumber(ctx context.Context, branch domain.Branch, year domain.AcademicYear) (*domain.BranchYearSequence, error) {
	return r.NextReceiptNumber(ctx, branch, year)
}

func (r *countingSequenceRepo) NextReceiptNumber(_ context.Context, branch domain.Branch, _ domain.AcademicYear) (*domain.BranchYearSequence, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receipt++
	return &domain.BranchYearSequence{
		ReceiptPrefix:   branch.Code,
		LastReceiptNo:   r.receipt,
		AdmissionPrefix: branch.LocationCode + branch.Code,
		LastAdmissionNo: r.receipt,
	}, nil
}

func (r *countingSequenceRepo) ResyncReceiptCounter(context.Context, domain.Branch, domain.AcademicYear) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.receipt, nil
}

func (suite *SequenceServiceTestSuite) TestNextReceiptNumber_ConcurrentCallsAreDistinct() {
	ctx := context.Background()
	suite.expectScope()
	service := services.NewSequenceService(suite.branchRepo, suite.yearRepo, &countingSequenceRepo{}, true)

	const callers = 25
	results := make(chan string, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			number, err := service.NextReceiptNumber(ctx, "Town Campus", "2025-2026")
			suite.NoError(err)
			results <- number
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, callers)
	for number := range results {
		suite.False(seen[number], "receipt number %s issued twice", number)
		seen[number] = true
	}
	suite.Len(seen, callers)
}

func TestSequenceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SequenceServiceTestSuite))
}
