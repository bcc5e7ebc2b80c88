package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	portssvc "github.com/daftarhq/daftar_backend/internal/core/ports/services"
	"github.com/daftarhq/daftar_backend/internal/dto"
	"github.com/daftarhq/daftar_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fiscalYearHandler handles HTTP requests for fiscal years.
type fiscalYearHandler struct {
	fiscalYearService portssvc.FiscalYearSvcFacade
}

func newFiscalYearHandler(fs portssvc.FiscalYearSvcFacade) *fiscalYearHandler {
	return &fiscalYearHandler{fiscalYearService: fs}
}

// registerFiscalYearRoutes registers routes related to fiscal years.
func registerFiscalYearRoutes(rg *gin.RouterGroup, fiscalYearService portssvc.FiscalYearSvcFacade) {
	h := newFiscalYearHandler(fiscalYearService)

	years := rg.Group("/fiscal-years")
	{
		years.POST("", h.createFiscalYear)
		years.GET("", h.listFiscalYears)
		years.GET("/:id", h.getFiscalYear)
		years.POST("/:id/close", h.closeFiscalYear)
		years.POST("/:id/open-next", h.openNextFiscalYear)
	}
}

func (h *fiscalYearHandler) createFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFiscalYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFiscalYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	fy, err := h.fiscalYearService.CreateFiscalYear(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create fiscal year in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fiscal year"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(fy))
}

func (h *fiscalYearHandler) getFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("id")

	fy, err := h.fiscalYearService.GetFiscalYearByID(c.Request.Context(), fiscalYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal year not found"})
		} else {
			logger.Error("Failed to get fiscal year in service", slog.String("error", err.Error()), slog.String("fiscal_year_id", fiscalYearID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve fiscal year"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

func (h *fiscalYearHandler) listFiscalYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fys, err := h.fiscalYearService.ListFiscalYears(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list fiscal years in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fiscal years"})
		return
	}

	c.JSON(http.StatusOK, dto.ListFiscalYearsResponse{FiscalYears: dto.ToFiscalYearResponses(fys)})
}

func (h *fiscalYearHandler) closeFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("id")

	fy, err := h.fiscalYearService.CloseFiscalYear(c.Request.Context(), fiscalYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal year not found"})
		} else if errors.Is(err, apperrors.ErrInvalidState) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to close fiscal year in service", slog.String("error", err.Error()), slog.String("fiscal_year_id", fiscalYearID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close fiscal year"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToFiscalYearResponse(fy))
}

func (h *fiscalYearHandler) openNextFiscalYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("id")

	// The body is optional; defaults derive everything from the closed year.
	var req dto.OpenNextFiscalYearRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for OpenNextFiscalYear", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	fy, err := h.fiscalYearService.OpenNextFiscalYear(c.Request.Context(), fiscalYearID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fiscal year not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrInvalidState) || errors.Is(err, apperrors.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to open successor fiscal year in service", slog.String("error", err.Error()), slog.String("fiscal_year_id", fiscalYearID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open successor fiscal year"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFiscalYearResponse(fy))
}
