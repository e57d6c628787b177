package services

// ServiceContainer holds all service implementations handed to the handler
// layer.
type ServiceContainer struct {
	AccountSvc   AccountSvcFacade
	JournalSvc   JournalSvcFacade
	BalanceSvc   BalanceSvcFacade
	ReportingSvc ReportingSvcFacade
}
