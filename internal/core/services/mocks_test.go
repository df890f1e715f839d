package services_test

import (
	"context"

	"github.com/schoolworks/fee_management_app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// --- Mock master repositories ---

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindStudentByID(ctx context.Context, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) FindStudentsByIDs(ctx context.Context, studentIDs []string) (map[string]domain.Student, error) {
	args := m.Called(ctx, studentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Student), args.Error(1)
}

type MockBranchRepository struct {
	mock.Mock
}

func (m *MockBranchRepository) FindBranchByNameOrCode(ctx context.Context, nameOrCode string) (*domain.Branch, error) {
	args := m.Called(ctx, nameOrCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

type MockAcademicYearRepository struct {
	mock.Mock
}

func (m *MockAcademicYearRepository) FindAcademicYearByCode(ctx context.Context, code string) (*domain.AcademicYear, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AcademicYear), args.Error(1)
}

// --- Mock template repositories ---

type MockFeeStructureRepository struct {
	mock.Mock
}

func (m *MockFeeStructureRepository) FindFeeStructureByID(ctx context.Context, feeStructureID string) (*domain.FeeStructure, error) {
	args := m.Called(ctx, feeStructureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeeStructure), args.Error(1)
}

func (m *MockFeeStructureRepository) FindFeeStructures(ctx context.Context, className, academicYear, branch string) ([]domain.FeeStructure, error) {
	args := m.Called(ctx, className, academicYear, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeStructure), args.Error(1)
}

type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) FindInstallmentsForBranchYear(ctx context.Context, branch, academicYear string) ([]domain.FeeInstallment, error) {
	args := m.Called(ctx, branch, academicYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeeInstallment), args.Error(1)
}

type MockConcessionRepository struct {
	mock.Mock
}

func (m *MockConcessionRepository) FindConcessionsByTitle(ctx context.Context, title, academicYear string) ([]domain.Concession, error) {
	args := m.Called(ctx, title, academicYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Concession), args.Error(1)
}

// --- Mock obligation repository ---

type MockStudentFeeRepository struct {
	mock.Mock
}

func (m *MockStudentFeeRepository) FindStudentFeeByID(ctx context.Context, feeID string) (*domain.StudentFee, error) {
	args := m.Called(ctx, feeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StudentFee), args.Error(1)
}

func (m *MockStudentFeeRepository) FindStudentFeesByIDs(ctx context.Context, feeIDs []string) (map[string]domain.StudentFee, error) {
	args := m.Called(ctx, feeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.StudentFee), args.Error(1)
}

func (m *MockStudentFeeRepository) FindStudentFeesByStudent(ctx context.Context, studentID, academicYear string) ([]domain.StudentFee, error) {
	args := m.Called(ctx, studentID, academicYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StudentFee), args.Error(1)
}

func (m *MockStudentFeeRepository) ExistsStudentFee(ctx context.Context, studentID, feeTypeID, academicYear string) (bool, error) {
	args := m.Called(ctx, studentID, feeTypeID, academicYear)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentFeeRepository) SaveStudentFees(ctx context.Context, fees []domain.StudentFee) error {
	args := m.Called(ctx, fees)
	return args.Error(0)
}

func (m *MockStudentFeeRepository) UpdateStudentFees(ctx context.Context, fees []domain.StudentFee) error {
	args := m.Called(ctx, fees)
	return args.Error(0)
}

func (m *MockStudentFeeRepository) DeleteStudentFee(ctx context.Context, feeID string) error {
	args := m.Called(ctx, feeID)
	return args.Error(0)
}

// --- Mock payment repository ---

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, paymentID string) (*domain.FeePayment, error) {
	args := m.Called(ctx, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeePayment), args.Error(1)
}

func (m *MockPaymentRepository) ListPaymentsByStudent(ctx context.Context, studentID, academicYear string) ([]domain.FeePayment, error) {
	args := m.Called(ctx, studentID, academicYear)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FeePayment), args.Error(1)
}

func (m *MockPaymentRepository) RecordPayment(ctx context.Context, student domain.Student, branch domain.Branch, year domain.AcademicYear, allocations []domain.PaymentAllocation, details domain.PaymentDetails) (*domain.PaymentResult, error) {
	args := m.Called(ctx, student, branch, year, allocations, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}

func (m *MockPaymentRepository) ReversePayment(ctx context.Context, payment domain.FeePayment, branch domain.Branch, year domain.AcademicYear) error {
	args := m.Called(ctx, payment, branch, year)
	return args.Error(0)
}

// --- Mock sequence repository ---

type MockSequenceRepository struct {
	mock.Mock
}

func (m *MockSequenceRepository) NextAdmissionNumber(ctx context.Context, branch domain.Branch, year domain.AcademicYear) (*domain.BranchYearSequence, error) {
	args := m.Called(ctx, branch, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BranchYearSequence), args.Error(1)
}

func (m *MockSequenceRepository) NextReceiptNumber(ctx context.Context, branch domain.Branch, year domain.AcademicYear) (*domain.BranchYearSequence, error) {
	args := m.Called(ctx, branch, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BranchYearSequence), args.Error(1)
}

func (m *MockSequenceRepository) ResyncReceiptCounter(ctx context.Context, branch domain.Branch, year domain.AcademicYear) (int64, error) {
	args := m.Called(ctx, branch, year)
	return args.Get(0).(int64), args.Error(1)
}
