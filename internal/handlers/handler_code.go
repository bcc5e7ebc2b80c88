package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	"github.com/daftarhq/daftar_backend/internal/core/domain"
	portssvc "github.com/daftarhq/daftar_backend/internal/core/ports/services"
	"github.com/daftarhq/daftar_backend/internal/dto"
	"github.com/daftarhq/daftar_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// codeHandler handles HTTP requests for the chart of codes.
type codeHandler struct {
	codeService portssvc.CodeSvcFacade
}

func newCodeHandler(cs portssvc.CodeSvcFacade) *codeHandler {
	return &codeHandler{codeService: cs}
}

// registerCodeRoutes registers routes related to the chart of codes.
func registerCodeRoutes(rg *gin.RouterGroup, codeService portssvc.CodeSvcFacade) {
	h := newCodeHandler(codeService)

	codes := rg.Group("/codes")
	{
		codes.POST("", h.createCode)
		codes.GET("", h.listCodes)
		codes.GET("/:id", h.getCode)
		codes.GET("/:id/ancestors", h.getCodeAncestors)
		codes.PUT("/:id", h.updateCode)
	}
}

func (h *codeHandler) createCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	code, err := h.codeService.CreateCode(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create code in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create code"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCodeResponse(code))
}

func (h *codeHandler) getCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	codeID := c.Param("id")

	code, err := h.codeService.GetCodeByID(c.Request.Context(), codeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Code not found"})
		} else {
			logger.Error("Failed to get code in service", slog.String("error", err.Error()), slog.String("code_id", codeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve code"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCodeResponse(code))
}

func (h *codeHandler) getCodeAncestors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	codeID := c.Param("id")

	chain, err := h.codeService.ResolveAncestors(c.Request.Context(), codeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Code not found"})
		} else {
			logger.Error("Failed to resolve code ancestors", slog.String("error", err.Error()), slog.String("code_id", codeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve ancestors"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ListCodesResponse{Codes: dto.ToCodeResponses(chain)})
}

func (h *codeHandler) listCodes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var kind *domain.CodeKind
	if k := c.Query("kind"); k != "" {
		ck := domain.CodeKind(k)
		switch ck {
		case domain.KindGroup, domain.KindGeneral, domain.KindSpecific:
			kind = &ck
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid kind: " + k})
			return
		}
	}
	activeOnly := c.Query("activeOnly") == "true"

	codes, err := h.codeService.ListCodes(c.Request.Context(), kind, activeOnly)
	if err != nil {
		logger.Error("Failed to list codes in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list codes"})
		return
	}

	c.JSON(http.StatusOK, dto.ListCodesResponse{Codes: dto.ToCodeResponses(codes)})
}

func (h *codeHandler) updateCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	codeID := c.Param("id")

	var req dto.UpdateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCode", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	code, err := h.codeService.UpdateCode(c.Request.Context(), codeID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Code not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update code in service", slog.String("error", err.Error()), slog.String("code_id", codeID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update code"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCodeResponse(code))
}
