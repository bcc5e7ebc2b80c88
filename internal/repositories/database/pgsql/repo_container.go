package pgsql

import (
	portsrepo "github.com/daftarhq/daftar_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CodeRepo:       newPgxCodeRepository(dbPool),
		FiscalYearRepo: newPgxFiscalYearRepository(dbPool),
		JournalRepo:    newPgxJournalRepository(dbPool),
		ReportingRepo:  newReportingRepository(dbPool),
	}
}
