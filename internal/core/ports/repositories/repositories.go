package repositories

// RepositoryProvider holds all repository implementations handed to the
// service layer.
type RepositoryProvider struct {
	AccountRepo   AccountRepositoryFacade
	JournalRepo   JournalRepositoryFacade
	ReportingRepo ReportingRepository
}
