package services

import (
	portsrepo "github.com/schoolworks/fee_management_app/internal/core/ports/repositories"
	portssvc "github.com/schoolworks/fee_management_app/internal/core/ports/services"
)

// NewContainer wires the service layer onto a repository provider.
func NewContainer(repos *portsrepo.RepositoryProvider, receiptIncludesPrefix bool) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Assignment: NewAssignmentService(
			repos.StudentRepo,
			repos.BranchRepo,
			repos.FeeStructureRepo,
			repos.InstallmentRepo,
			repos.StudentFeeRepo,
		),
		StudentFee: NewStudentFeeService(
			repos.StudentRepo,
			repos.InstallmentRepo,
			repos.StudentFeeRepo,
		),
		Concession: NewConcessionService(
			repos.StudentRepo,
			repos.ConcessionRepo,
			repos.StudentFeeRepo,
		),
		Payment: NewPaymentService(
			repos.StudentRepo,
			repos.BranchRepo,
			repos.AcademicYearRepo,
			repos.StudentFeeRepo,
			repos.PaymentRepo,
		),
		Sequence: NewSequenceService(
			repos.BranchRepo,
			repos.AcademicYearRepo,
			repos.SequenceRepo,
			receiptIncludesPrefix,
		),
	}
}
