package services

// ServiceContainer bundles every service facade the transport layer consumes.
type ServiceContainer struct {
	Assignment AssignmentSvcFacade
	StudentFee StudentFeeSvcFacade
	Concession ConcessionSvcFacade
	Payment    PaymentSvcFacade
	Sequence   SequenceSvcFacade
}
