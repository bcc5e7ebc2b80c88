package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar_backend/internal/core/ports/repositories"
	"github.com/daftarhq/daftar_backend/internal/models"
	"github.com/daftarhq/daftar_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const fiscalYearColumns = `fiscal_year_id, name, start_date, end_date, is_closed, created_at, last_updated_at`

type PgxFiscalYearRepository struct {
	BaseRepository
}

// newPgxFiscalYearRepository creates a new repository for fiscal year data.
func newPgxFiscalYearRepository(pool *pgxpool.Pool) portsrepo.FiscalYearRepositoryFacade {
	return &PgxFiscalYearRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FiscalYearRepositoryFacade = (*PgxFiscalYearRepository)(nil)

func scanFiscalYear(row pgx.Row) (*models.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID,
		&m.Name,
		&m.StartDate,
		&m.EndDate,
		&m.IsClosed,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveFiscalYear inserts a new fiscal year.
func (r *PgxFiscalYearRepository) SaveFiscalYear(ctx context.Context, fiscalYear domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(fiscalYear)
	query := `
		INSERT INTO fiscal_years (` + fiscalYearColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.FiscalYearID,
		m.Name,
		m.StartDate,
		m.EndDate,
		m.IsClosed,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert fiscal year "+m.FiscalYearID, err)
	}
	return nil
}

// FindFiscalYearByID retrieves a fiscal year by its ID.
func (r *PgxFiscalYearRepository) FindFiscalYearByID(ctx context.Context, fiscalYearID string) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE fiscal_year_id = $1;`
	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, fiscalYearID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find fiscal year by ID "+fiscalYearID, err)
	}
	d := mapping.ToDomainFiscalYear(*m)
	return &d, nil
}

// ListFiscalYears retrieves all fiscal years ordered by start date.
func (r *PgxFiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years ORDER BY start_date;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query fiscal years", err)
	}
	defer rows.Close()

	years := []domain.FiscalYear{}
	for rows.Next() {
		m, err := scanFiscalYear(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fiscal year row", err)
		}
		years = append(years, mapping.ToDomainFiscalYear(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating fiscal year rows", err)
	}
	return years, nil
}

// FindOverlappingFiscalYear returns a fiscal year whose span intersects the
// given range, or nil when none exists.
func (r *PgxFiscalYearRepository) FindOverlappingFiscalYear(ctx context.Context, start, end time.Time) (*domain.FiscalYear, error) {
	query := `
		SELECT ` + fiscalYearColumns + `
		FROM fiscal_years
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date
		LIMIT 1;
	`
	m, err := scanFiscalYear(r.Pool.QueryRow(ctx, query, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.NewAppError(500, "failed to check fiscal year overlap", err)
	}
	d := mapping.ToDomainFiscalYear(*m)
	return &d, nil
}

// MarkFiscalYearClosed flips is_closed on an open fiscal year.
func (r *PgxFiscalYearRepository) MarkFiscalYearClosed(ctx context.Context, fiscalYearID string, closedAt time.Time) error {
	query := `
		UPDATE fiscal_years
		SET is_closed = TRUE, last_updated_at = $2
		WHERE fiscal_year_id = $1 AND is_closed = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, fiscalYearID, closedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to close fiscal year "+fiscalYearID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either missing or already closed; the caller checked state first,
		// so a concurrent close is the remaining possibility.
		return apperrors.ErrInvalidState
	}
	return nil
}
