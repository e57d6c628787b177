package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/paperledger/paper_ledger_app/internal/apperrors"
	"github.com/paperledger/paper_ledger_app/internal/core/domain"
	portssvc "github.com/paperledger/paper_ledger_app/internal/core/ports/services"
	"github.com/paperledger/paper_ledger_app/internal/dto"
	"github.com/paperledger/paper_ledger_app/internal/middleware"
)

// balanceHandler handles HTTP requests for derived balance queries.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// newBalanceHandler creates a new balanceHandler.
func newBalanceHandler(bs portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: bs}
}

// RegisterBalanceRoutes registers routes related to balance aggregation.
func RegisterBalanceRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	balances := rg.Group("/balances")
	{
		balances.GET("/types/:accountType", h.getTypeTotals)
		balances.GET("/period", h.getPeriodTotals)
	}
}

// parseDateQuery reads an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " date, expected YYYY-MM-DD"})
		return nil, false
	}
	return &parsed, true
}

// getTypeTotals godoc
// @Summary Per-account balances for one account type
// @Description Computes signed balances for every account of a type in one grouped query, plus the type total
// @Tags balances
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   accountType path string true "Account type (ASSET, LIABILITY, EQUITY, REVENUE, EXPENSE)"
// @Param   fromDate query string false "Window start (YYYY-MM-DD); omit to include opening balances"
// @Param   toDate query string false "Window end (YYYY-MM-DD)"
// @Param   activeOnly query bool false "Only active accounts"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Invalid account type or date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute totals"
// @Security BearerAuth
// @Router /companies/{companyID}/balances/types/{accountType} [get]
func (h *balanceHandler) getTypeTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	accountType := domain.AccountType(c.Param("accountType"))

	fromDate, ok := parseDateQuery(c, "fromDate")
	if !ok {
		return
	}
	toDate, ok := parseDateQuery(c, "toDate")
	if !ok {
		return
	}
	activeOnly := c.Query("activeOnly") == "true"

	rows, total, err := h.balanceService.TypeTotals(c.Request.Context(), companyID, accountType, fromDate, toDate, activeOnly)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to compute type totals", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute totals"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accountType": accountType,
		"accounts":    rows,
		"total":       total,
	})
}

// getPeriodTotals godoc
// @Summary Period activity for all account types
// @Description Computes per-account period flow (opening balances excluded) grouped by account type
// @Tags balances
// @Produce  json
// @Param   companyID path string true "Company ID"
// @Param   fromDate query string true "Period start (YYYY-MM-DD)"
// @Param   toDate query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Missing or invalid period dates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to compute totals"
// @Security BearerAuth
// @Router /companies/{companyID}/balances/period [get]
func (h *balanceHandler) getPeriodTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fromDate and toDate are required (YYYY-MM-DD): " + err.Error()})
		return
	}

	totals, err := h.balanceService.PeriodTotals(c.Request.Context(), companyID, params.FromDate, params.ToDate)
	if err != nil {
		logger.Error("Failed to compute period totals", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute totals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"fromDate": params.FromDate.Format("2006-01-02"),
		"toDate":   params.ToDate.Format("2006-01-02"),
		"totals":   totals,
	})
}
