package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	"github.com/couplefin/couple_finance_app/internal/core/ports/storage"
)

// CardPurchaseRepository persists installments in the cardsShopping
// collection.
type CardPurchaseRepository struct {
	store storage.DocumentStore
}

// NewCardPurchaseRepository creates a new CardPurchaseRepository.
func NewCardPurchaseRepository(store storage.DocumentStore) *CardPurchaseRepository {
	return &CardPurchaseRepository{store: store}
}

var _ portsrepo.CardPurchaseRepositoryFacade = (*CardPurchaseRepository)(nil)

func encodePurchase(p domain.CardPurchase) map[string]any {
	return map[string]any{
		"description":      p.Description,
		"cardId":           p.CardID,
		"category":         p.Category,
		"date":             p.Date.UTC().Format(time.RFC3339Nano),
		"totalValue":       int64(p.TotalValue),
		"installmentIndex": int64(p.InstallmentIndex),
		"installments":     int64(p.InstallmentsCount),
		"originalTotal":    int64(p.OriginalTotal),
		"status":           string(p.Status),
	}
}

func decodePurchase(doc storage.Document) domain.CardPurchase {
	return domain.CardPurchase{
		PurchaseID:        doc.ID,
		Description:       readString(doc.Data, "description"),
		CardID:            readString(doc.Data, "cardId"),
		Category:          readString(doc.Data, "category"),
		Date:              readTime(doc.Data, "date"),
		TotalValue:        readMoney(doc.Data, "totalValue"),
		InstallmentIndex:  readInt(doc.Data, "installmentIndex"),
		InstallmentsCount: readInt(doc.Data, "installments"),
		OriginalTotal:     readMoney(doc.Data, "originalTotal"),
		Status:            domain.PurchaseStatus(readString(doc.Data, "status")),
	}
}

func (r *CardPurchaseRepository) FindPurchaseByID(ctx context.Context, purchaseID string) (*domain.CardPurchase, error) {
	doc, err := r.store.Get(ctx, storage.CollectionCardPurchases, purchaseID)
	if err != nil {
		return nil, err
	}
	purchase := decodePurchase(doc)
	return &purchase, nil
}

func (r *CardPurchaseRepository) ListPurchases(ctx context.Context) ([]domain.CardPurchase, error) {
	docs, err := r.store.Query(ctx, storage.CollectionCardPurchases, nil)
	if err != nil {
		return nil, fmt.Errorf("listing card purchases: %w", err)
	}
	purchases := make([]domain.CardPurchase, len(docs))
	for i, doc := range docs {
		purchases[i] = decodePurchase(doc)
	}
	return purchases, nil
}

func (r *CardPurchaseRepository) ListPurchasesByCard(ctx context.Context, cardID string) ([]domain.CardPurchase, error) {
	docs, err := r.store.Query(ctx, storage.CollectionCardPurchases, &storage.Predicate{Field: "cardId", Value: cardID})
	if err != nil {
		return nil, fmt.Errorf("listing purchases for card %s: %w", cardID, err)
	}
	purchases := make([]domain.CardPurchase, len(docs))
	for i, doc := range docs {
		purchases[i] = decodePurchase(doc)
	}
	return purchases, nil
}

func (r *CardPurchaseRepository) DeletePurchase(ctx context.Context, purchaseID string) error {
	batch := r.store.NewBatch()
	batch.Delete(storage.CollectionCardPurchases, purchaseID)
	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("deleting purchase %s: %w", purchaseID, err)
	}
	return nil
}

func (r *CardPurchaseRepository) WatchPurchases(ctx context.Context) (<-chan []domain.CardPurchase, error) {
	raw, err := r.store.Subscribe(ctx, storage.CollectionCardPurchases)
	if err != nil {
		return nil, fmt.Errorf("subscribing to card purchases: %w", err)
	}
	return watch(raw, decodePurchase), nil
}
