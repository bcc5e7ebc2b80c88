package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/daftarhq/daftar_backend/internal/apperrors"
	portssvc "github.com/daftarhq/daftar_backend/internal/core/ports/services"
	"github.com/daftarhq/daftar_backend/internal/dto"
	"github.com/daftarhq/daftar_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers report routes nested under a fiscal year.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/fiscal-years/:id/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/ledger/:codeID", h.getLedger)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/profit-loss", h.getProfitLoss)
	}
}

// parseDateQuery reads an optional date query parameter.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return nil, true
	}
	t, err := time.Parse(dto.DateFormat, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a " + dto.DateFormat + " date"})
		return nil, false
	}
	return &t, true
}

func (h *reportingHandler) respondReportError(c *gin.Context, logger *slog.Logger, err error, report string) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}
	logger.Error("Failed to build report", slog.String("error", err.Error()), slog.String("report", report))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build " + report})
}

func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("id")

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), fiscalYearID, from, to)
	if err != nil {
		h.respondReportError(c, logger, err, "trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(fiscalYearID, report))
}

func (h *reportingHandler) getLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("id")
	codeID := c.Param("codeID")

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	report, err := h.reportingService.Ledger(c.Request.Context(), fiscalYearID, codeID, from, to)
	if err != nil {
		h.respondReportError(c, logger, err, "ledger")
		return
	}
	c.JSON(http.StatusOK, dto.ToLedgerResponse(fiscalYearID, report))
}

func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("id")

	asOf, ok := parseDateQuery(c, "asOf")
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), fiscalYearID, asOf)
	if err != nil {
		h.respondReportError(c, logger, err, "balance sheet")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(fiscalYearID, report))
}

func (h *reportingHandler) getProfitLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fiscalYearID := c.Param("id")

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	report, err := h.reportingService.ProfitAndLoss(c.Request.Context(), fiscalYearID, from, to)
	if err != nil {
		h.respondReportError(c, logger, err, "profit and loss")
		return
	}
	c.JSON(http.StatusOK, dto.ToProfitLossResponse(fiscalYearID, report))
}
