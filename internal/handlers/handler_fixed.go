package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/couplefin/couple_finance_app/internal/apperrors"
	portssvc "github.com/couplefin/couple_finance_app/internal/core/ports/services"
	"github.com/couplefin/couple_finance_app/internal/core/services"
	"github.com/couplefin/couple_finance_app/internal/dto"
	"github.com/couplefin/couple_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// fixedHandler handles HTTP requests for the recurring templates and the
// dashboard summary.
type fixedHandler struct {
	fixedService  portssvc.FixedSvcFacade
	ledgerService portssvc.LedgerSvcFacade
	walletService portssvc.WalletSvcFacade
}

// registerFixedRoutes registers routes related to fixed items.
func registerFixedRoutes(rg *gin.RouterGroup, fixedService portssvc.FixedSvcFacade, ledgerService portssvc.LedgerSvcFacade, walletService portssvc.WalletSvcFacade) {
	h := &fixedHandler{fixedService: fixedService, ledgerService: ledgerService, walletService: walletService}

	expenses := rg.Group("/fixed-expenses")
	{
		expenses.POST("", h.createFixedExpense)
		expenses.GET("", h.listFixedExpenses)
		expenses.DELETE("/:id", h.deleteFixedExpense)
		expenses.POST("/:id/realize", h.realizeFixedExpense)
	}

	incomes := rg.Group("/fixed-incomes")
	{
		incomes.POST("", h.createFixedIncome)
		incomes.GET("", h.listFixedIncomes)
		incomes.DELETE("/:id", h.deleteFixedIncome)
		incomes.POST("/:id/receive", h.receiveFixedIncome)
	}

	rg.GET("/summary", h.summary)
}

func (h *fixedHandler) createFixedExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFixedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFixedExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	expense, err := h.fixedService.CreateFixedExpense(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create fixed expense", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fixed expense"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFixedExpenseResponse(expense))
}

func (h *fixedHandler) listFixedExpenses(c *gin.Context) {
	expenses, err := h.fixedService.ListFixedExpenses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fixed expenses"})
		return
	}
	out := make([]dto.FixedExpenseResponse, len(expenses))
	for i := range expenses {
		out[i] = dto.ToFixedExpenseResponse(&expenses[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *fixedHandler) deleteFixedExpense(c *gin.Context) {
	err := h.fixedService.DeleteFixedExpense(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fixed expense not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fixed expense"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *fixedHandler) realizeFixedExpense(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RealizeFixedExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RealizeFixedExpense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	err := h.ledgerService.RealizeFixedExpense(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Fixed expense not found"})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, services.ErrWalletNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to realize fixed expense", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to realize fixed expense"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *fixedHandler) createFixedIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFixedItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFixedIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	income, err := h.fixedService.CreateFixedIncome(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create fixed income", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fixed income"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFixedIncomeResponse(income))
}

func (h *fixedHandler) listFixedIncomes(c *gin.Context) {
	incomes, err := h.fixedService.ListFixedIncomes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list fixed incomes"})
		return
	}
	out := make([]dto.FixedIncomeResponse, len(incomes))
	for i := range incomes {
		out[i] = dto.ToFixedIncomeResponse(&incomes[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *fixedHandler) deleteFixedIncome(c *gin.Context) {
	err := h.fixedService.DeleteFixedIncome(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Fixed income not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fixed income"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *fixedHandler) receiveFixedIncome(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReceiveFixedIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReceiveFixedIncome", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.RealizeFixedIncome(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Fixed income not found"})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, services.ErrWalletNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to receive fixed income", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to receive fixed income"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// summary is the dashboard view: live total balance plus the forecast
// derived from the fixed templates.
func (h *fixedHandler) summary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	total, err := h.walletService.TotalBalance(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute total balance", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}
	forecast, err := h.fixedService.Forecast(c.Request.Context())
	if err != nil {
		logger.Error("Failed to compute forecast", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary"})
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{
		TotalBalance:  total.Decimal(),
		FixedIncomes:  forecast.Incomes.Decimal(),
		FixedExpenses: forecast.Expenses.Decimal(),
		Forecast:      forecast.Net.Decimal(),
	})
}
