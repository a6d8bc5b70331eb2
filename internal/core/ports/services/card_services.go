package services

import (
	"context"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	"github.com/couplefin/couple_finance_app/internal/dto"
)

// CardSvcFacade exposes card management, purchase entry and the
// advisory credit metrics.
type CardSvcFacade interface {
	// CreateCard registers a credit card with its cycle configuration.
	CreateCard(ctx context.Context, req dto.CreateCardRequest) (*domain.Card, error)

	// GetCard retrieves one card.
	GetCard(ctx context.Context, cardID string) (*domain.Card, error)

	// ListCards retrieves every card.
	ListCards(ctx context.Context) ([]domain.Card, error)

	// DeleteCard removes a card without cascading to its purchases.
	DeleteCard(ctx context.Context, cardID string) error

	// CardMetrics derives used/available limit from open purchases.
	// The figure is advisory and recomputed on every read.
	CardMetrics(ctx context.Context, cardID string) (*domain.CardMetrics, error)

	// EnterPurchase splits a credit purchase into dated installments and
	// persists all of them in one atomic batch.
	EnterPurchase(ctx context.Context, cardID string, req dto.CreatePurchaseRequest) ([]domain.CardPurchase, error)

	// ListPurchases returns every installment, newest first, with card
	// names resolved (deleted cards get a sentinel label).
	ListPurchases(ctx context.Context) ([]dto.PurchaseResponse, error)

	// DeletePurchase removes one installment, freeing card limit.
	DeletePurchase(ctx context.Context, purchaseID string) error

	// WatchCards streams the full card set on every change.
	WatchCards(ctx context.Context) (<-chan []domain.Card, error)

	// WatchPurchases streams the full installment set on every change.
	WatchPurchases(ctx context.Context) (<-chan []domain.CardPurchase, error)
}
