package services

import (
	portsrepo "github.com/daftarhq/daftar_backend/internal/core/ports/repositories"
	portssvc "github.com/daftarhq/daftar_backend/internal/core/ports/services"
	"github.com/daftarhq/daftar_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Code service first; posting validation depends on it.
	container.Code = NewCodeService(repos.CodeRepo, cfg.CodeFormat())
	container.FiscalYear = NewFiscalYearService(repos.FiscalYearRepo)

	validator := NewPostingValidator(container.Code, cfg.AllowClosedYearPosting)
	container.Journal = NewJournalService(repos.JournalRepo, container.FiscalYear, validator)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.CodeRepo, container.FiscalYear)

	return container
}

// Compile-time checks that the implementations satisfy their facades.
var (
	_ portssvc.CodeSvcFacade       = (*CodeService)(nil)
	_ portssvc.FiscalYearSvcFacade = (*FiscalYearService)(nil)
	_ portssvc.JournalSvcFacade    = (*JournalService)(nil)
	_ portssvc.ReportingSvcFacade  = (*ReportingService)(nil)
)
