package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// It is assembled once at startup from the concrete database layer.
type RepositoryProvider struct {
	CodeRepo       CodeRepositoryFacade
	FiscalYearRepo FiscalYearRepositoryFacade
	JournalRepo    JournalRepositoryFacade
	ReportingRepo  ReportingRepository
}
