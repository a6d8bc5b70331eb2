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

// cardHandler handles HTTP requests for cards and their purchases.
type cardHandler struct {
	cardService   portssvc.CardSvcFacade
	ledgerService portssvc.LedgerSvcFacade
}

// registerCardRoutes registers routes related to cards and purchases.
func registerCardRoutes(rg *gin.RouterGroup, cardService portssvc.CardSvcFacade, ledgerService portssvc.LedgerSvcFacade) {
	h := &cardHandler{cardService: cardService, ledgerService: ledgerService}

	cards := rg.Group("/cards")
	{
		cards.POST("", h.createCard)
		cards.GET("", h.listCards)
		cards.GET("/:id", h.getCard)
		cards.DELETE("/:id", h.deleteCard)
		cards.GET("/:id/metrics", h.cardMetrics)
		cards.POST("/:id/purchases", h.enterPurchase)
	}

	purchases := rg.Group("/purchases")
	{
		purchases.GET("", h.listPurchases)
		purchases.DELETE("/:id", h.deletePurchase)
		purchases.POST("/:id/pay", h.payPurchase)
	}
}

func (h *cardHandler) createCard(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCard", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	card, err := h.cardService.CreateCard(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create card", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create card"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToCardResponse(card))
}

func (h *cardHandler) listCards(c *gin.Context) {
	cards, err := h.cardService.ListCards(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list cards"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponses(cards))
}

func (h *cardHandler) getCard(c *gin.Context) {
	card, err := h.cardService.GetCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve card"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToCardResponse(card))
}

func (h *cardHandler) deleteCard(c *gin.Context) {
	err := h.cardService.DeleteCard(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete card"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *cardHandler) cardMetrics(c *gin.Context) {
	metrics, err := h.cardService.CardMetrics(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Card not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute card metrics"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.ToCardMetricsResponse(metrics))
}

func (h *cardHandler) enterPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EnterPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	cardID := c.Param("id")
	purchases, err := h.cardService.EnterPurchase(c.Request.Context(), cardID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, services.ErrCardNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to enter purchase", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enter purchase"})
		}
		return
	}

	cardName := ""
	if card, err := h.cardService.GetCard(c.Request.Context(), cardID); err == nil {
		cardName = card.Name
	}
	out := make([]dto.PurchaseResponse, len(purchases))
	for i := range purchases {
		out[i] = dto.ToPurchaseResponse(&purchases[i], cardName)
	}
	c.JSON(http.StatusCreated, out)
}

func (h *cardHandler) listPurchases(c *gin.Context) {
	purchases, err := h.cardService.ListPurchases(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list purchases"})
		return
	}
	c.JSON(http.StatusOK, purchases)
}

func (h *cardHandler) deletePurchase(c *gin.Context) {
	err := h.cardService.DeletePurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete purchase"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// payPurchaseRequest names the wallet the installment is settled from.
type payPurchaseRequest struct {
	WalletID string `json:"walletID" binding:"required"`
}

func (h *cardHandler) payPurchase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req payPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayPurchase", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.ledgerService.PayCardBill(c.Request.Context(), c.Param("id"), req.WalletID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Purchase not found"})
		case errors.Is(err, apperrors.ErrValidation), errors.Is(err, services.ErrWalletNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to pay purchase", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to pay purchase"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}
