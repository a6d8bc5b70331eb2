package docstore

import (
	"context"
	"fmt"
	"time"

	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	"github.com/couplefin/couple_finance_app/internal/core/ports/storage"
)

// CardRepository persists cards in the cards collection.
type CardRepository struct {
	store storage.DocumentStore
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(store storage.DocumentStore) *CardRepository {
	return &CardRepository{store: store}
}

var _ portsrepo.CardRepositoryFacade = (*CardRepository)(nil)

func encodeCard(c domain.Card) map[string]any {
	return map[string]any{
		"name":       c.Name,
		"color":      c.Color,
		"flag":       c.Flag,
		"limit":      int64(c.Limit),
		"closingDay": int64(c.ClosingDay),
		"dueDay":     int64(c.DueDay),
		"createdAt":  c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeCard(doc storage.Document) domain.Card {
	return domain.Card{
		CardID:     doc.ID,
		Name:       readString(doc.Data, "name"),
		Color:      readString(doc.Data, "color"),
		Flag:       readString(doc.Data, "flag"),
		Limit:      readMoney(doc.Data, "limit"),
		ClosingDay: readInt(doc.Data, "closingDay"),
		DueDay:     readInt(doc.Data, "dueDay"),
		CreatedAt:  readTime(doc.Data, "createdAt"),
	}
}

func (r *CardRepository) SaveCard(ctx context.Context, card domain.Card) error {
	batch := r.store.NewBatch()
	batch.Set(storage.CollectionCards, card.CardID, encodeCard(card))
	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("saving card %s: %w", card.CardID, err)
	}
	return nil
}

func (r *CardRepository) FindCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	doc, err := r.store.Get(ctx, storage.CollectionCards, cardID)
	if err != nil {
		return nil, err
	}
	card := decodeCard(doc)
	return &card, nil
}

func (r *CardRepository) ListCards(ctx context.Context) ([]domain.Card, error) {
	docs, err := r.store.Query(ctx, storage.CollectionCards, nil)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	cards := make([]domain.Card, len(docs))
	for i, doc := range docs {
		cards[i] = decodeCard(doc)
	}
	return cards, nil
}

func (r *CardRepository) DeleteCard(ctx context.Context, cardID string) error {
	batch := r.store.NewBatch()
	batch.Delete(storage.CollectionCards, cardID)
	if err := batch.Commit(ctx); err != nil {
		return fmt.Errorf("deleting card %s: %w", cardID, err)
	}
	return nil
}

func (r *CardRepository) WatchCards(ctx context.Context) (<-chan []domain.Card, error) {
	raw, err := r.store.Subscribe(ctx, storage.CollectionCards)
	if err != nil {
		return nil, fmt.Errorf("subscribing to cards: %w", err)
	}
	return watch(raw, decodeCard), nil
}
