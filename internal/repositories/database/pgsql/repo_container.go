package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/schoolworks/fee_management_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool, receiptIncludesPrefix bool) portsrepo.RepositoryProvider {
	branchRepo := newPgxBranchRepository(dbPool)
	yearRepo := newPgxAcademicYearRepository(dbPool)
	studentRepo := newPgxStudentRepository(dbPool)
	structureRepo := newPgxFeeStructureRepository(dbPool)
	concessionRepo := newPgxConcessionRepository(dbPool)
	studentFeeRepo := newPgxStudentFeeRepository(dbPool)
	sequenceRepo := newPgxSequenceRepository(dbPool)
	paymentRepo := newPgxPaymentRepository(dbPool, studentFeeRepo, sequenceRepo, receiptIncludesPrefix)

	return portsrepo.RepositoryProvider{
		BranchRepo:       branchRepo,
		AcademicYearRepo: yearRepo,
		StudentRepo:      studentRepo,
		FeeStructureRepo: structureRepo,
		InstallmentRepo:  structureRepo,
		ConcessionRepo:   concessionRepo,
		StudentFeeRepo:   studentFeeRepo,
		SequenceRepo:     sequenceRepo,
		PaymentRepo:      paymentRepo,
	}
}
