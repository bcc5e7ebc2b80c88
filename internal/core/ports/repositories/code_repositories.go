package repositories

import (
	"context"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
)

// CodeReader defines read operations for chart-of-codes data.
type CodeReader interface {
	// FindCodeByID retrieves a specific code node by its unique identifier.
	FindCodeByID(ctx context.Context, codeID string) (*domain.Code, error)

	// FindCodeByCode retrieves a code node by its unique digit string.
	FindCodeByCode(ctx context.Context, code string) (*domain.Code, error)

	// FindCodesByIDs retrieves multiple code nodes keyed by their IDs.
	FindCodesByIDs(ctx context.Context, codeIDs []string) (map[string]domain.Code, error)

	// ListCodes retrieves the full chart of codes ordered by code string.
	ListCodes(ctx context.Context) ([]domain.Code, error)
}

// CodeWriter defines write operations for chart-of-codes data.
type CodeWriter interface {
	// SaveCode inserts a new code node. A duplicate code string surfaces as
	// apperrors.ErrConflict.
	SaveCode(ctx context.Context, code domain.Code) error

	// UpdateCode updates the mutable fields (title, nature, active flag) of
	// an existing code node.
	UpdateCode(ctx context.Context, code domain.Code) error
}

// CodeRepositoryFacade combines all code-related repository interfaces.
type CodeRepositoryFacade interface {
	CodeReader
	CodeWriter
}
