package repositories

import (
	"context"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
)

// CardReader defines read operations for card data.
type CardReader interface {
	// FindCardByID retrieves one card by id.
	FindCardByID(ctx context.Context, cardID string) (*domain.Card, error)

	// ListCards retrieves every card.
	ListCards(ctx context.Context) ([]domain.Card, error)

	// WatchCards streams the full card set on every change.
	WatchCards(ctx context.Context) (<-chan []domain.Card, error)
}

// CardWriter defines write operations for card data.
type CardWriter interface {
	// SaveCard persists a card document.
	SaveCard(ctx context.Context, card domain.Card) error

	// DeleteCard removes the card document. Purchases referencing it are
	// not cascaded; they render with a sentinel card name afterwards.
	DeleteCard(ctx context.Context, cardID string) error
}

// CardRepositoryFacade combines all card repository interfaces.
type CardRepositoryFacade interface {
	CardReader
	CardWriter
}

// CardPurchaseReader defines read operations for purchase installments.
type CardPurchaseReader interface {
	// FindPurchaseByID retrieves one installment by id.
	FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.CardPurchase, error)

	// ListPurchases retrieves every installment across all cards.
	ListPurchases(ctx context.Context) ([]domain.CardPurchase, error)

	// ListPurchasesByCard retrieves the installments of one card using
	// the store's single equality predicate.
	ListPurchasesByCard(ctx context.Context, cardID string) ([]domain.CardPurchase, error)

	// WatchPurchases streams the full installment set on every change.
	WatchPurchases(ctx context.Context) (<-chan []domain.CardPurchase, error)
}

// CardPurchaseWriter defines the standalone installment writes.
// Batched writes (purchase entry, bill payment) go through LedgerBatch.
type CardPurchaseWriter interface {
	// DeletePurchase removes one installment, freeing card limit.
	DeletePurchase(ctx context.Context, purchaseID string) error
}

// CardPurchaseRepositoryFacade combines the purchase interfaces.
type CardPurchaseRepositoryFacade interface {
	CardPurchaseReader
	CardPurchaseWriter
}
