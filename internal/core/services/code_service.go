package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	portsrepo "github.com/daftarhq/daftar_backend/internal/core/ports/repositories"
	"github.com/daftarhq/daftar_backend/internal/dto"
	"github.com/google/uuid"
)

// CodeService manages the chart of codes. The digit-length convention that
// maps a code string to its tier comes from configuration.
type CodeService struct {
	BaseService
	codeRepo portsrepo.CodeRepositoryFacade
	format   domain.CodeFormat
}

func NewCodeService(repo portsrepo.CodeRepositoryFacade, format domain.CodeFormat) *CodeService {
	return &CodeService{codeRepo: repo, format: format}
}

// CreateCode validates the tier, parent linkage and classification of a new
// code node and persists it.
func (s *CodeService) CreateCode(ctx context.Context, req dto.CreateCodeRequest) (*domain.Code, error) {
	logger := s.GetLogger(ctx)

	kind, err := s.format.KindFor(req.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// Duplicate code strings are a conflict, not a validation failure.
	existing, err := s.codeRepo.FindCodeByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check code uniqueness", slog.String("error", err.Error()), slog.String("code", req.Code))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: code %s already exists", apperrors.ErrConflict, req.Code)
	}

	var parent *domain.Code
	if req.ParentCodeID != nil {
		parent, err = s.codeRepo.FindCodeByID(ctx, *req.ParentCodeID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent code %s not found", apperrors.ErrValidation, *req.ParentCodeID)
			}
			return nil, err
		}
	}
	if err := s.format.CheckParent(req.Code, kind, parent); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	var nature *domain.CodeNature
	switch kind {
	case domain.KindSpecific:
		if req.Nature == nil {
			return nil, fmt.Errorf("%w: specific code %s requires a nature", apperrors.ErrValidation, req.Code)
		}
		n := domain.CodeNature(*req.Nature)
		nature = &n
	default:
		if req.Nature != nil {
			return nil, fmt.Errorf("%w: nature is only valid on specific codes", apperrors.ErrValidation)
		}
	}

	// Category is declared on the group root and inherited downward, so
	// every row carries it and reports never need to walk the tree.
	var category domain.CodeCategory
	switch kind {
	case domain.KindGroup:
		if req.Category == nil {
			return nil, fmt.Errorf("%w: group code %s requires a category", apperrors.ErrValidation, req.Code)
		}
		category = domain.CodeCategory(*req.Category)
	default:
		if req.Category != nil {
			return nil, fmt.Errorf("%w: category is only set on group codes", apperrors.ErrValidation)
		}
		category = parent.Category
	}

	now := time.Now()
	code := domain.Code{
		CodeID:       uuid.NewString(),
		Code:         req.Code,
		Title:        req.Title,
		Kind:         kind,
		ParentCodeID: req.ParentCodeID,
		Nature:       nature,
		Category:     category,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.codeRepo.SaveCode(ctx, code); err != nil {
		logger.Error("Failed to save code in repository", slog.String("error", err.Error()), slog.String("code", code.Code))
		return nil, err
	}

	logger.Info("Code created successfully", slog.String("code_id", code.CodeID), slog.String("code", code.Code), slog.String("kind", string(kind)))
	return &code, nil
}

// UpdateCode applies the mutable fields of a code node. The code string, tier
// and parent linkage are fixed for life.
func (s *CodeService) UpdateCode(ctx context.Context, codeID string, req dto.UpdateCodeRequest) (*domain.Code, error) {
	logger := s.GetLogger(ctx)

	code, err := s.codeRepo.FindCodeByID(ctx, codeID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		code.Title = *req.Title
	}
	if req.Nature != nil {
		if code.Kind != domain.KindSpecific {
			return nil, fmt.Errorf("%w: nature is only valid on specific codes", apperrors.ErrValidation)
		}
		n := domain.CodeNature(*req.Nature)
		code.Nature = &n
	}
	if req.IsActive != nil {
		code.IsActive = *req.IsActive
	}
	code.LastUpdatedAt = time.Now()

	if err := s.codeRepo.UpdateCode(ctx, *code); err != nil {
		logger.Error("Failed to update code in repository", slog.String("error", err.Error()), slog.String("code_id", codeID))
		return nil, err
	}

	logger.Info("Code updated successfully", slog.String("code_id", codeID))
	return code, nil
}

// GetCodeByID retrieves a single code node.
func (s *CodeService) GetCodeByID(ctx context.Context, codeID string) (*domain.Code, error) {
	code, err := s.codeRepo.FindCodeByID(ctx, codeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find code by ID", slog.String("code_id", codeID))
		}
		return nil, err
	}
	return code, nil
}

// GetCodesByIDs retrieves multiple code nodes keyed by ID.
func (s *CodeService) GetCodesByIDs(ctx context.Context, codeIDs []string) (map[string]domain.Code, error) {
	codes, err := s.codeRepo.FindCodesByIDs(ctx, codeIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find codes by IDs", slog.Int("count", len(codeIDs)))
		return nil, err
	}
	return codes, nil
}

// ListCodes returns the chart of codes, optionally narrowed to one tier or to
// active nodes only.
func (s *CodeService) ListCodes(ctx context.Context, kind *domain.CodeKind, activeOnly bool) ([]domain.Code, error) {
	codes, err := s.codeRepo.ListCodes(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list codes")
		return nil, fmt.Errorf("failed to list codes: %w", err)
	}

	filtered := make([]domain.Code, 0, len(codes))
	for _, c := range codes {
		if kind != nil && c.Kind != *kind {
			continue
		}
		if activeOnly && !c.IsActive {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered, nil
}

// ResolveAncestors returns the code itself followed by its parent chain up to
// the group root.
func (s *CodeService) ResolveAncestors(ctx context.Context, codeID string) ([]domain.Code, error) {
	var chain []domain.Code
	nextID := &codeID
	for nextID != nil {
		code, err := s.codeRepo.FindCodeByID(ctx, *nextID)
		if err != nil {
			if len(chain) > 0 && errors.Is(err, apperrors.ErrNotFound) {
				// A dangling parent reference is a data integrity problem,
				// not a missing resource.
				return nil, fmt.Errorf("broken parent chain above code %s: %w", chain[len(chain)-1].CodeID, err)
			}
			return nil, err
		}
		chain = append(chain, *code)
		nextID = code.ParentCodeID
	}
	return chain, nil
}
