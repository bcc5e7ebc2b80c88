package services

import (
	"context"

	"github.com/daftarhq/daftar_backend/internal/core/domain"
	"github.com/daftarhq/daftar_backend/internal/dto"
)

// CodeReaderSvc defines read operations for the chart of codes
type CodeReaderSvc interface {
	// GetCodeByID retrieves a specific code node by its unique identifier.
	GetCodeByID(ctx context.Context, codeID string) (*domain.Code, error)

	// GetCodesByIDs retrieves multiple code nodes by their IDs.
	GetCodesByIDs(ctx context.Context, codeIDs []string) (map[string]domain.Code, error)

	// ListCodes retrieves the chart of codes ordered by code string.
	ListCodes(ctx context.Context, kind *domain.CodeKind, activeOnly bool) ([]domain.Code, error)

	// ResolveAncestors walks the parent chain of a code up to its group node.
	ResolveAncestors(ctx context.Context, codeID string) ([]domain.Code, error)
}

// CodeWriterSvc defines write operations for the chart of codes
type CodeWriterSvc interface {
	// CreateCode persists a new code node after tier and parent validation.
	CreateCode(ctx context.Context, req dto.CreateCodeRequest) (*domain.Code, error)

	// UpdateCode updates the mutable fields of an existing code node.
	UpdateCode(ctx context.Context, codeID string, req dto.UpdateCodeRequest) (*domain.Code, error)
}

// CodeSvcFacade combines all code-related service interfaces
// This is a facade for clients that need access to all operations
type CodeSvcFacade interface {
	CodeReaderSvc
	CodeWriterSvc
}
