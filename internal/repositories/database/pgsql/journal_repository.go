package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar_backend/internal/core/ports/repositories"
	"github.com/daftarhq/daftar_backend/internal/models"
	"github.com/daftarhq/daftar_backend/internal/utils/mapping"
	"github.com/daftarhq/daftar_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const journalColumns = `journal_id, fiscal_year_id, ref_no, serial_no, journal_date, description, status,
	       original_journal_id, reversing_journal_id, created_at, last_updated_at`

const itemColumns = `item_id, journal_id, code_id, party_id, debit, credit, description, line_no, created_at, last_updated_at`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournal(row pgx.Row) (*models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.FiscalYearID,
		&m.RefNo,
		&m.SerialNo,
		&m.JournalDate,
		&m.Description,
		&m.Status,
		&m.OriginalJournalID,
		&m.ReversingJournalID,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanJournalItem(row pgx.Row) (*models.JournalItem, error) {
	var m models.JournalItem
	err := row.Scan(
		&m.ItemID,
		&m.JournalID,
		&m.CodeID,
		&m.PartyID,
		&m.Debit,
		&m.Credit,
		&m.Description,
		&m.LineNo,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// queueItemInserts adds an insert per item to the batch.
func queueItemInserts(batch *pgx.Batch, items []domain.JournalItem) {
	query := `
		INSERT INTO journal_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, item := range items {
		m := mapping.ToModelJournalItem(item)
		batch.Queue(query,
			m.ItemID,
			m.JournalID,
			m.CodeID,
			m.PartyID,
			m.Debit,
			m.Credit,
			m.Description,
			m.LineNo,
			m.CreatedAt,
			m.LastUpdatedAt,
		)
	}
}

func insertJournalTx(ctx context.Context, tx pgx.Tx, m models.Journal) error {
	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.JournalID,
		m.FiscalYearID,
		m.RefNo,
		m.SerialNo,
		m.JournalDate,
		m.Description,
		m.Status,
		m.OriginalJournalID,
		m.ReversingJournalID,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	return err
}

// nextSerialTx draws the next serial from the single counter row. The UPDATE
// takes a row lock, so concurrent posts serialize here and the sequence stays
// unique, gap-free and strictly increasing.
func nextSerialTx(ctx context.Context, tx pgx.Tx) (int64, error) {
	var serial int64
	err := tx.QueryRow(ctx, `
		UPDATE journal_serials
		SET last_serial = last_serial + 1
		WHERE counter_id = 1
		RETURNING last_serial;
	`).Scan(&serial)
	return serial, err
}

// SaveJournal persists a new draft journal together with its items in one
// transaction.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, items []domain.JournalItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertJournalTx(ctx, tx, mapping.ToModelJournal(journal)); err != nil {
		return apperrors.NewAppError(500, "failed to insert journal "+journal.JournalID, err)
	}

	batch := &pgx.Batch{}
	queueItemInserts(batch, items)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert items for journal "+journal.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateJournal rewrites a draft journal's header and replaces its item set
// atomically. The status guard in the WHERE clause closes the race with a
// concurrent post.
func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal, items []domain.JournalItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournal(journal)
	tag, err := tx.Exec(ctx, `
		UPDATE journals
		SET ref_no = $2, journal_date = $3, description = $4, last_updated_at = $5
		WHERE journal_id = $1 AND status = 'DRAFT';
	`, m.JournalID, m.RefNo, m.JournalDate, m.Description, m.LastUpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update journal "+m.JournalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidState
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_items WHERE journal_id = $1;`, m.JournalID); err != nil {
		return apperrors.NewAppError(500, "failed to clear items for journal "+m.JournalID, err)
	}
	batch := &pgx.Batch{}
	queueItemInserts(batch, items)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert items for journal "+m.JournalID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteJournal removes a draft journal; its items cascade.
func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journals WHERE journal_id = $1 AND status = 'DRAFT';`, journalID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrInvalidState
	}
	return nil
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`
	m, err := scanJournal(r.Pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal by ID "+journalID, err)
	}
	d := mapping.ToDomainJournal(*m)
	return &d, nil
}

// FindItemsByJournalID retrieves all items of a single journal in line order.
func (r *PgxJournalRepository) FindItemsByJournalID(ctx context.Context, journalID string) ([]domain.JournalItem, error) {
	query := `SELECT ` + itemColumns + ` FROM journal_items WHERE journal_id = $1 ORDER BY line_no;`
	rows, err := r.Pool.Query(ctx, query, journalID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for journal "+journalID, err)
	}
	defer rows.Close()

	items := []models.JournalItem{}
	for rows.Next() {
		m, err := scanJournalItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for journal "+journalID, err)
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for journal "+journalID, err)
	}
	return mapping.ToDomainJournalItemSlice(items), nil
}

// FindItemsByJournalIDs retrieves items for multiple journals, grouped by
// journal ID.
func (r *PgxJournalRepository) FindItemsByJournalIDs(ctx context.Context, journalIDs []string) (map[string][]domain.JournalItem, error) {
	if len(journalIDs) == 0 {
		return map[string][]domain.JournalItem{}, nil
	}
	query := `SELECT ` + itemColumns + ` FROM journal_items WHERE journal_id = ANY($1) ORDER BY journal_id, line_no;`
	rows, err := r.Pool.Query(ctx, query, journalIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for journals", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.JournalItem, len(journalIDs))
	for rows.Next() {
		m, err := scanJournalItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row", err)
		}
		result[m.JournalID] = append(result[m.JournalID], mapping.ToDomainJournalItem(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows", err)
	}
	return result, nil
}

// ListJournalsByFiscalYear retrieves a paginated list of journals for a
// fiscal year using token-based pagination, newest first.
func (r *PgxJournalRepository) ListJournalsByFiscalYear(ctx context.Context, fiscalYearID string, limit int, nextToken *string, includeReversals bool) ([]domain.Journal, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + journalColumns + ` FROM journals`
	filterClause := `WHERE fiscal_year_id = $1`
	if !includeReversals {
		filterClause += ` AND status != 'REVERSED' AND original_journal_id IS NULL`
	}
	// Ordering must be stable across pages; created_at breaks date ties.
	orderByClause := `ORDER BY journal_date DESC, created_at DESC`

	args := []interface{}{fiscalYearID}
	query := baseQuery + " " + filterClause
	if nextToken != nil && *nextToken != "" {
		lastJournalDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += ` AND (journal_date, created_at) < ($2, $3)`
		args = append(args, lastJournalDate, lastCreatedAt)
	}
	query += " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journals for fiscal year "+fiscalYearID, err)
	}
	defer rows.Close()

	journals := make([]models.Journal, 0, fetchLimit)
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal row", err)
		}
		journals = append(journals, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal rows", err)
	}

	var nextTokenVal *string
	if len(journals) > limit {
		last := journals[limit-1]
		token := pagination.EncodeToken(last.JournalDate, last.CreatedAt)
		nextTokenVal = &token
		journals = journals[:limit]
	}

	result := make([]domain.Journal, len(journals))
	for i, m := range journals {
		result[i] = mapping.ToDomainJournal(m)
	}
	return result, nextTokenVal, nil
}

// PostJournal atomically assigns the next serial number and flips the journal
// to POSTED.
func (r *PgxJournalRepository) PostJournal(ctx context.Context, journalID string, postedAt time.Time) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	serial, err := nextSerialTx(ctx, tx)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to assign serial for journal "+journalID, err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE journals
		SET status = 'POSTED', serial_no = $2, last_updated_at = $3
		WHERE journal_id = $1 AND status = 'DRAFT';
	`, journalID, serial, postedAt)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to post journal "+journalID, err)
	}
	if tag.RowsAffected() == 0 {
		// A concurrent post won the race; rolling back returns the serial.
		return 0, apperrors.ErrInvalidState
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return serial, nil
}

// SaveReversal persists an already-posted reversal journal with its items,
// assigns its serial and links the original journal, all in one transaction.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversal domain.Journal, items []domain.JournalItem, originalJournalID string) (int64, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	serial, err := nextSerialTx(ctx, tx)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to assign serial for reversal of "+originalJournalID, err)
	}
	reversal.SerialNo = &serial

	if err := insertJournalTx(ctx, tx, mapping.ToModelJournal(reversal)); err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert reversal journal "+reversal.JournalID, err)
	}

	batch := &pgx.Batch{}
	queueItemInserts(batch, items)
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert items for reversal "+reversal.JournalID, err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE journals
		SET status = 'REVERSED', reversing_journal_id = $2, last_updated_at = $3
		WHERE journal_id = $1 AND status = 'POSTED';
	`, originalJournalID, reversal.JournalID, reversal.LastUpdatedAt)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to mark journal "+originalJournalID+" reversed", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, apperrors.ErrInvalidState
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return serial, nil
}
