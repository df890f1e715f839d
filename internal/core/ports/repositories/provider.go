package repositories

// RepositoryProvider bundles every repository the service layer consumes.
type RepositoryProvider struct {
	BranchRepo       BranchRepositoryFacade
	AcademicYearRepo AcademicYearRepositoryFacade
	StudentRepo      StudentRepositoryFacade
	FeeStructureRepo FeeStructureReader
	InstallmentRepo  FeeInstallmentReader
	ConcessionRepo   ConcessionReader
	StudentFeeRepo   StudentFeeRepositoryWithTx
	SequenceRepo     SequenceRepositoryWithTx
	PaymentRepo      PaymentRepositoryFacade
}
