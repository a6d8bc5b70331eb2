package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/couplefin/couple_finance_app/internal/apperrors"
	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portssvc "github.com/couplefin/couple_finance_app/internal/core/ports/services"
	"github.com/couplefin/couple_finance_app/internal/dto"
	"github.com/couplefin/couple_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles HTTP requests for the monthly budget overview.
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

// registerBudgetRoutes registers routes related to budgets.
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := &budgetHandler{budgetService: budgetService}

	budgets := rg.Group("/budgets")
	{
		budgets.GET("", h.overview)
		budgets.PUT("", h.setLimit)
	}
}

func (h *budgetHandler) overview(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	month, err := domain.ParseMonth(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := h.budgetService.Overview(c.Request.Context(), month, c.Query("source"))
	if err != nil {
		logger.Error("Failed to build budget overview", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build budget overview"})
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryBudgetResponses(rows))
}

func (h *budgetHandler) setLimit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SetBudgetLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetBudgetLimit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	row, err := h.budgetService.SetLimit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to set budget limit", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to set budget limit"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryBudgetResponse(row))
}
