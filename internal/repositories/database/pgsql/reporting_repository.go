package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetCodeSums aggregates per-leaf-code debit and credit totals. Drafts never
// contribute; reversed originals stay in because their reversal journals
// cancel them arithmetically.
func (r *reportingRepository) GetCodeSums(ctx context.Context, fiscalYearID string, from, to time.Time) ([]domain.CodeSum, error) {
	query := `
		SELECT
			i.code_id,
			COALESCE(SUM(i.debit), 0) AS total_debit,
			COALESCE(SUM(i.credit), 0) AS total_credit
		FROM journal_items i
		JOIN journals j ON i.journal_id = j.journal_id
		WHERE j.fiscal_year_id = $1
			AND j.status != 'DRAFT'
			AND j.journal_date >= $2
			AND j.journal_date <= $3
		GROUP BY i.code_id;
	`

	rows, err := r.Pool.Query(ctx, query, fiscalYearID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying code sums: %w", err)
	}
	defer rows.Close()

	var result []domain.CodeSum
	for rows.Next() {
		var sum domain.CodeSum
		if err := rows.Scan(&sum.CodeID, &sum.Debit, &sum.Credit); err != nil {
			return nil, fmt.Errorf("error scanning code sum row: %w", err)
		}
		result = append(result, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating code sum rows: %w", err)
	}
	return result, nil
}

// GetLedgerEntries returns every non-draft movement touching a code within
// the span, ordered by journal date then serial then line. The item's own
// narration wins over the journal description when present.
func (r *reportingRepository) GetLedgerEntries(ctx context.Context, fiscalYearID, codeID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT
			j.journal_id,
			j.serial_no,
			j.journal_date,
			j.ref_no,
			COALESCE(NULLIF(i.description, ''), j.description) AS description,
			i.debit,
			i.credit
		FROM journal_items i
		JOIN journals j ON i.journal_id = j.journal_id
		WHERE j.fiscal_year_id = $1
			AND i.code_id = $2
			AND j.status != 'DRAFT'
			AND j.journal_date >= $3
			AND j.journal_date <= $4
		ORDER BY j.journal_date, j.serial_no, i.line_no;
	`

	rows, err := r.Pool.Query(ctx, query, fiscalYearID, codeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying ledger entries: %w", err)
	}
	defer rows.Close()

	var result []domain.LedgerEntry
	for rows.Next() {
		var entry domain.LedgerEntry
		if err := rows.Scan(
			&entry.JournalID,
			&entry.SerialNo,
			&entry.JournalDate,
			&entry.RefNo,
			&entry.Description,
			&entry.Debit,
			&entry.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning ledger entry row: %w", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", err)
	}
	return result, nil
}
