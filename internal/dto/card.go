package dto

import (
	"time"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCardRequest defines the data needed to register a credit card.
type CreateCardRequest struct {
	Name       string          `json:"name" binding:"required"`
	Color      string          `json:"color"`
	Flag       string          `json:"flag"`
	Limit      decimal.Decimal `json:"limit" binding:"required"`
	ClosingDay int             `json:"closingDay" binding:"required,min=1,max=31"`
	DueDay     int             `json:"dueDay" binding:"required,min=1,max=31"`
}

// CreatePurchaseRequest defines a credit purchase to be split into
// installments. The card id comes from the route.
type CreatePurchaseRequest struct {
	Description  string          `json:"description" binding:"required"`
	TotalValue   decimal.Decimal `json:"totalValue" binding:"required"`
	Installments int             `json:"installments" binding:"required,min=1,max=24"`
	Category     string          `json:"category" binding:"required"`
	Date         *time.Time      `json:"date"` // Optional, defaults to now
}

// CardResponse defines the data returned for a card.
type CardResponse struct {
	CardID     string          `json:"cardID"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Flag       string          `json:"flag"`
	Limit      decimal.Decimal `json:"limit"`
	ClosingDay int             `json:"closingDay"`
	DueDay     int             `json:"dueDay"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// CardMetricsResponse is the advisory credit view for one card.
type CardMetricsResponse struct {
	CardID         string          `json:"cardID"`
	Limit          decimal.Decimal `json:"limit"`
	Used           decimal.Decimal `json:"used"`
	Available      decimal.Decimal `json:"available"`
	PercentageUsed float64         `json:"percentageUsed"`
}

// PurchaseResponse defines the data returned for one installment.
// CardName resolves to a sentinel when the card was deleted.
type PurchaseResponse struct {
	PurchaseID        string                `json:"purchaseID"`
	Description       string                `json:"description"`
	CardID            string                `json:"cardID"`
	CardName          string                `json:"cardName"`
	Category          string                `json:"category"`
	Date              time.Time             `json:"date"`
	TotalValue        decimal.Decimal       `json:"totalValue"`
	InstallmentIndex  int                   `json:"installmentIndex"`
	InstallmentsCount int                   `json:"installmentsCount"`
	OriginalTotal     decimal.Decimal       `json:"originalTotal"`
	Status            domain.PurchaseStatus `json:"status"`
}

// ToCardResponse converts a domain.Card to CardResponse DTO.
func ToCardResponse(c *domain.Card) CardResponse {
	return CardResponse{
		CardID:     c.CardID,
		Name:       c.Name,
		Color:      c.Color,
		Flag:       c.Flag,
		Limit:      c.Limit.Decimal(),
		ClosingDay: c.ClosingDay,
		DueDay:     c.DueDay,
		CreatedAt:  c.CreatedAt,
	}
}

// ToCardResponses converts a slice of cards.
func ToCardResponses(cards []domain.Card) []CardResponse {
	out := make([]CardResponse, len(cards))
	for i := range cards {
		out[i] = ToCardResponse(&cards[i])
	}
	return out
}

// ToCardMetricsResponse converts domain.CardMetrics to its DTO.
func ToCardMetricsResponse(m *domain.CardMetrics) CardMetricsResponse {
	return CardMetricsResponse{
		CardID:         m.CardID,
		Limit:          m.Limit.Decimal(),
		Used:           m.Used.Decimal(),
		Available:      m.Available.Decimal(),
		PercentageUsed: m.PercentageUsed,
	}
}

// ToPurchaseResponse converts an installment plus its resolved card name.
func ToPurchaseResponse(p *domain.CardPurchase, cardName string) PurchaseResponse {
	return PurchaseResponse{
		PurchaseID:        p.PurchaseID,
		Description:       p.Description,
		CardID:            p.CardID,
		CardName:          cardName,
		Category:          p.Category,
		Date:              p.Date,
		TotalValue:        p.TotalValue.Decimal(),
		InstallmentIndex:  p.InstallmentIndex,
		InstallmentsCount: p.InstallmentsCount,
		OriginalTotal:     p.OriginalTotal.Decimal(),
		Status:            p.Status,
	}
}
