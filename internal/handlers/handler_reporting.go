package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paperledger/paper_ledger_app/internal/apperrors"
	portssvc "github.com/paperledger/paper_ledger_app/internal/core/ports/services"
	"github.com/paperledger/paper_ledger_app/internal/dto"
	"github.com/paperledger/paper_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests for financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// RegisterReportingRoutes registers routes related to reports.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/cash-flow", h.getCashFlow)
	}
}

// asOfOrToday reads the optional asOf query parameter, defaulting to today.
func asOfOrToday(c *gin.Context) (time.Time, bool) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Now().UTC(), true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return parsed, true
}

// reportError renders a report failure, distinguishing the retriable timeout.
func reportError(c *gin.Context, logger *slog.Logger, err error, what string) {
	if errors.Is(err, apperrors.ErrTimeout) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error()})
		return
	}
	logger.Error("Failed to generate "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate " + what})
}

// getTrialBalance godoc
// @Summary Trial balance report
// @Description Builds the trial balance as of a date. An integrity violation flags the report instead of failing it.
// @Tags reports
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   asOf query string false "Point in time (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 504 {object} map[string]string "Report timed out"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /companies/{companyID}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	asOf, ok := asOfOrToday(c)
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), companyID, asOf)
	if err != nil && !(errors.Is(err, apperrors.ErrLedgerIntegrity) && report != nil) {
		reportError(c, logger, err, "trial balance")
		return
	}

	// An integrity violation still renders the report; the DTO carries the
	// warning so the corrupted figures are visible, not hidden.
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(report, asOf))
}

// getIncomeStatement godoc
// @Summary Income statement report
// @Description Builds revenue and expense activity over a period with the expense breakdown by category
// @Tags reports
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   fromDate query string true "Period start (YYYY-MM-DD)"
// @Param   toDate query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.IncomeStatementResponse
// @Failure 400 {object} map[string]string "Missing or invalid period dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 504 {object} map[string]string "Report timed out"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /companies/{companyID}/reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fromDate and toDate are required (YYYY-MM-DD): " + err.Error()})
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), companyID, params.FromDate, params.ToDate)
	if err != nil {
		reportError(c, logger, err, "income statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToIncomeStatementResponse(report, params.FromDate, params.ToDate))
}

// getBalanceSheet godoc
// @Summary Balance sheet report
// @Description Builds the financial position as of a date; an identity mismatch flags the report instead of failing it
// @Tags reports
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   asOf query string false "Point in time (YYYY-MM-DD, defaults to today)"
// @Success 200 {object} dto.BalanceSheetResponse
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 504 {object} map[string]string "Report timed out"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /companies/{companyID}/reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	asOf, ok := asOfOrToday(c)
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), companyID, asOf)
	if err != nil && !(errors.Is(err, apperrors.ErrLedgerIntegrity) && report != nil) {
		reportError(c, logger, err, "balance sheet")
		return
	}

	c.JSON(http.StatusOK, dto.ToBalanceSheetResponse(report, asOf))
}

// getCashFlow godoc
// @Summary Cash flow report
// @Description Builds period cash movements bucketed into Operating/Investing/Financing per the configured rules
// @Tags reports
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   fromDate query string true "Period start (YYYY-MM-DD)"
// @Param   toDate query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} dto.CashFlowResponse
// @Failure 400 {object} map[string]string "Missing or invalid period dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 504 {object} map[string]string "Report timed out"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Security BearerAuth
// @Router /companies/{companyID}/reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fromDate and toDate are required (YYYY-MM-DD): " + err.Error()})
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), companyID, params.FromDate, params.ToDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		reportError(c, logger, err, "cash flow")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashFlowResponse(report, params.FromDate, params.ToDate))
}
