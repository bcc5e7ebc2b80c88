package pgsql

import (
	"context"
	"errors"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar_backend/internal/core/ports/repositories"
	"github.com/daftarhq/daftar_backend/internal/models"
	"github.com/daftarhq/daftar_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const codeColumns = `code_id, code, title, kind, parent_code_id, nature, category, is_active, created_at, last_updated_at`

type PgxCodeRepository struct {
	BaseRepository
}

// newPgxCodeRepository creates a new repository for chart-of-codes data.
func newPgxCodeRepository(pool *pgxpool.Pool) portsrepo.CodeRepositoryFacade {
	return &PgxCodeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CodeRepositoryFacade = (*PgxCodeRepository)(nil)

func scanCode(row pgx.Row) (*models.Code, error) {
	var m models.Code
	err := row.Scan(
		&m.CodeID,
		&m.Code,
		&m.Title,
		&m.Kind,
		&m.ParentCodeID,
		&m.Nature,
		&m.Category,
		&m.IsActive,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveCode inserts a new code node. A duplicate code string surfaces as
// apperrors.ErrConflict.
func (r *PgxCodeRepository) SaveCode(ctx context.Context, code domain.Code) error {
	m := mapping.ToModelCode(code)
	query := `
		INSERT INTO codes (` + codeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CodeID,
		m.Code,
		m.Title,
		m.Kind,
		m.ParentCodeID,
		m.Nature,
		m.Category,
		m.IsActive,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrConflict
		}
		return apperrors.NewAppError(500, "failed to insert code "+m.Code, err)
	}
	return nil
}

// UpdateCode updates the mutable fields of an existing code node.
func (r *PgxCodeRepository) UpdateCode(ctx context.Context, code domain.Code) error {
	m := mapping.ToModelCode(code)
	query := `
		UPDATE codes
		SET title = $2, nature = $3, is_active = $4, last_updated_at = $5
		WHERE code_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, m.CodeID, m.Title, m.Nature, m.IsActive, m.LastUpdatedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update code "+m.CodeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCodeByID retrieves a code node by its ID.
func (r *PgxCodeRepository) FindCodeByID(ctx context.Context, codeID string) (*domain.Code, error) {
	query := `SELECT ` + codeColumns + ` FROM codes WHERE code_id = $1;`
	m, err := scanCode(r.Pool.QueryRow(ctx, query, codeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find code by ID "+codeID, err)
	}
	d := mapping.ToDomainCode(*m)
	return &d, nil
}

// FindCodeByCode retrieves a code node by its unique digit string.
func (r *PgxCodeRepository) FindCodeByCode(ctx context.Context, code string) (*domain.Code, error) {
	query := `SELECT ` + codeColumns + ` FROM codes WHERE code = $1;`
	m, err := scanCode(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find code "+code, err)
	}
	d := mapping.ToDomainCode(*m)
	return &d, nil
}

// FindCodesByIDs retrieves multiple code nodes keyed by their IDs.
func (r *PgxCodeRepository) FindCodesByIDs(ctx context.Context, codeIDs []string) (map[string]domain.Code, error) {
	if len(codeIDs) == 0 {
		return map[string]domain.Code{}, nil
	}
	query := `SELECT ` + codeColumns + ` FROM codes WHERE code_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, codeIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query codes by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Code, len(codeIDs))
	for rows.Next() {
		m, err := scanCode(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan code row", err)
		}
		result[m.CodeID] = mapping.ToDomainCode(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating code rows", err)
	}
	return result, nil
}

// ListCodes retrieves the full chart of codes ordered by code string.
func (r *PgxCodeRepository) ListCodes(ctx context.Context) ([]domain.Code, error) {
	query := `SELECT ` + codeColumns + ` FROM codes ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query codes", err)
	}
	defer rows.Close()

	codes := []models.Code{}
	for rows.Next() {
		m, err := scanCode(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan code row", err)
		}
		codes = append(codes, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating code rows", err)
	}
	return mapping.ToDomainCodeSlice(codes), nil
}
