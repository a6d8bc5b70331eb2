package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/couplefin/couple_finance_app/internal/apperrors"
	"github.com/couplefin/couple_finance_app/internal/core/domain"
	portsrepo "github.com/couplefin/couple_finance_app/internal/core/ports/repositories"
	portssvc "github.com/couplefin/couple_finance_app/internal/core/ports/services"
	"github.com/couplefin/couple_finance_app/internal/dto"
	"github.com/google/uuid"
)

var (
	ErrValueNotPositive    = errors.New("value must be positive")
	ErrInstallmentsInvalid = errors.New("installments must be at least 1")
	ErrCardNotFound        = errors.New("card not found")
)

// cardService implements the CardSvcFacade interface
type cardService struct {
	BaseService
	cardRepo     portsrepo.CardRepositoryFacade
	purchaseRepo portsrepo.CardPurchaseRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepository
}

// NewCardService creates a new card service.
func NewCardService(cardRepo portsrepo.CardRepositoryFacade, purchaseRepo portsrepo.CardPurchaseRepositoryFacade, ledgerRepo portsrepo.LedgerRepository) portssvc.CardSvcFacade {
	return &cardService{
		cardRepo:     cardRepo,
		purchaseRepo: purchaseRepo,
		ledgerRepo:   ledgerRepo,
	}
}

var _ portssvc.CardSvcFacade = (*cardService)(nil)

func (s *cardService) CreateCard(ctx context.Context, req dto.CreateCardRequest) (*domain.Card, error) {
	card := domain.Card{
		CardID:     uuid.NewString(),
		Name:       req.Name,
		Color:      req.Color,
		Flag:       req.Flag,
		Limit:      domain.MoneyFromDecimal(req.Limit),
		ClosingDay: req.ClosingDay,
		DueDay:     req.DueDay,
		CreatedAt:  time.Now(),
	}
	if !card.Limit.IsPositive() {
		return nil, fmt.Errorf("%w: card limit", apperrors.ErrValidation)
	}

	if err := s.cardRepo.SaveCard(ctx, card); err != nil {
		s.LogError(ctx, err, "Failed to save card", slog.String("card_id", card.CardID))
		return nil, err
	}

	s.LogInfo(ctx, "Card created", slog.String("card_id", card.CardID), slog.String("name", card.Name))
	return &card, nil
}

func (s *cardService) GetCard(ctx context.Context, cardID string) (*domain.Card, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find card", slog.String("card_id", cardID))
		return nil, err
	}
	return card, nil
}

func (s *cardService) ListCards(ctx context.Context) ([]domain.Card, error) {
	cards, err := s.cardRepo.ListCards(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cards")
		return nil, err
	}
	return cards, nil
}

func (s *cardService) DeleteCard(ctx context.Context, cardID string) error {
	// Purchases are not cascaded. Their installments keep billing into
	// the month of their own date and render with a sentinel card name.
	if _, err := s.cardRepo.FindCardByID(ctx, cardID); err != nil {
		return err
	}
	if err := s.cardRepo.DeleteCard(ctx, cardID); err != nil {
		s.LogError(ctx, err, "Failed to delete card", slog.String("card_id", cardID))
		return err
	}
	s.LogInfo(ctx, "Card deleted", slog.String("card_id", cardID))
	return nil
}

// CardMetrics sums the card's open installments into the advisory
// used/available view. Limits are never enforced: a purchase that blows
// past the limit still persists, the percentage just exceeds 100.
func (s *cardService) CardMetrics(ctx context.Context, cardID string) (*domain.CardMetrics, error) {
	card, err := s.cardRepo.FindCardByID(ctx, cardID)
	if err != nil {
		return nil, err
	}

	purchases, err := s.purchaseRepo.ListPurchasesByCard(ctx, cardID)
	if err != nil {
		return nil, err
	}

	var used domain.Money
	for _, p := range purchases {
		if p.IsOpen() {
			used = used.Add(p.TotalValue)
		}
	}

	available := card.Limit.Sub(used)
	if available.IsNegative() {
		available = 0
	}
	metrics := domain.CardMetrics{
		CardID:    card.CardID,
		Limit:     card.Limit,
		Used:      used,
		Available: available,
	}
	if !card.Limit.IsZero() {
		metrics.PercentageUsed = float64(used) / float64(card.Limit) * 100
	}
	return &metrics, nil
}

func (s *cardService) EnterPurchase(ctx context.Context, cardID string, req dto.CreatePurchaseRequest) ([]domain.CardPurchase, error) {
	total := domain.MoneyFromDecimal(req.TotalValue)
	if !total.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrValueNotPositive)
	}
	if req.Installments < 1 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrInstallmentsInvalid)
	}

	if _, err := s.cardRepo.FindCardByID(ctx, cardID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrCardNotFound, cardID)
		}
		return nil, err
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	purchases := SplitPurchase(cardID, req.Description, req.Category, total, req.Installments, date)

	// All installments land together or not at all; a purchase must
	// never exist partially split.
	batch := s.ledgerRepo.NewLedgerBatch()
	for _, p := range purchases {
		batch.SetCardPurchase(p)
	}
	if err := batch.Commit(ctx); err != nil {
		s.LogError(ctx, err, "Failed to persist purchase installments", slog.String("card_id", cardID))
		return nil, err
	}

	s.LogInfo(ctx, "Purchase entered",
		slog.String("card_id", cardID),
		slog.String("total", total.String()),
		slog.Int("installments", req.Installments))
	return purchases, nil
}

func (s *cardService) ListPurchases(ctx context.Context) ([]dto.PurchaseResponse, error) {
	purchases, err := s.purchaseRepo.ListPurchases(ctx)
	if err != nil {
		return nil, err
	}
	cards, err := s.cardRepo.ListCards(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(cards))
	for _, c := range cards {
		names[c.CardID] = c.Name
	}

	sort.SliceStable(purchases, func(i, j int) bool {
		return purchases[i].Date.After(purchases[j].Date)
	})

	out := make([]dto.PurchaseResponse, len(purchases))
	for i := range purchases {
		name, ok := names[purchases[i].CardID]
		if !ok {
			name = domain.DeletedCardName
		}
		out[i] = dto.ToPurchaseResponse(&purchases[i], name)
	}
	return out, nil
}

func (s *cardService) DeletePurchase(ctx context.Context, purchaseID string) error {
	if _, err := s.purchaseRepo.FindPurchaseByID(ctx, purchaseID); err != nil {
		return err
	}
	if err := s.purchaseRepo.DeletePurchase(ctx, purchaseID); err != nil {
		s.LogError(ctx, err, "Failed to delete purchase", slog.String("purchase_id", purchaseID))
		return err
	}
	s.LogInfo(ctx, "Purchase deleted", slog.String("purchase_id", purchaseID))
	return nil
}

func (s *cardService) WatchCards(ctx context.Context) (<-chan []domain.Card, error) {
	return s.cardRepo.WatchCards(ctx)
}

func (s *cardService) WatchPurchases(ctx context.Context) (<-chan []domain.CardPurchase, error) {
	return s.purchaseRepo.WatchPurchases(ctx)
}
