package services

import (
	"context"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/KI1208/Anky/internal/errors"
	"github.com/KI1208/Anky/internal/logger"
	"github.com/KI1208/Anky/internal/models"
	"github.com/KI1208/Anky/internal/repository"
	"github.com/KI1208/Anky/internal/validation"
)

// DeckService handles deck-related business logic
type DeckService interface {
	CreateDeck(ctx context.Context, name, description string) (*models.Deck, error)
	GetDeck(ctx context.Context, id string) (*models.Deck, error)
	ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.DeckWithCount, error)
	UpdateDeck(ctx context.Context, id, name, description string) (*models.Deck, error)
	DeleteDeck(ctx context.Context, id string) error
}

type deckService struct {
	deckRepo repository.DeckRepository
}

// NewDeckService creates a new DeckService
func NewDeckService(deckRepo repository.DeckRepository) DeckService {
	return &deckService{deckRepo: deckRepo}
}

// deckSnapshot loads all decks as a plain slice for uniqueness validation.
func (s *deckService) deckSnapshot(ctx context.Context) ([]models.Deck, error) {
	listed, err := s.deckRepo.List(ctx, models.DeckFilter{})
	if err != nil {
		return nil, err
	}
	decks := make([]models.Deck, 0, len(listed))
	for _, d := range listed {
		decks = append(decks, d.Deck)
	}
	return decks, nil
}

func (s *deckService) CreateDeck(ctx context.Context, name, description string) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating deck: name=%q", name)

	existing, err := s.deckSnapshot(ctx)
	if err != nil {
		log.Error("failed to load decks for validation: %v", err)
		return nil, errors.NewInternalError(err)
	}

	trimmedName, verr := validation.DeckName(name, existing, "")
	if verr != nil {
		return nil, verr
	}

	id, err := gonanoid.New()
	if err != nil {
		log.Error("failed to generate deck id: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := time.Now()
	deck := models.Deck{
		ID:          id,
		Name:        trimmedName,
		Description: trimText(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.deckRepo.Insert(ctx, deck); err != nil {
		log.Error("failed to insert deck: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("deck created: id=%s, name=%s", deck.ID, deck.Name)
	return &deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx)

	deck, err := s.deckRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", id)
	}
	return deck, nil
}

func (s *deckService) ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.DeckWithCount, error) {
	log := logger.FromContext(ctx)

	decks, err := s.deckRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return decks, nil
}

func (s *deckService) UpdateDeck(ctx context.Context, id, name, description string) (*models.Deck, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating deck: id=%s", id)

	deck, err := s.GetDeck(ctx, id)
	if err != nil {
		return nil, err
	}

	existing, err := s.deckSnapshot(ctx)
	if err != nil {
		log.Error("failed to load decks for validation: %v", err)
		return nil, errors.NewInternalError(err)
	}

	trimmedName, verr := validation.DeckName(name, existing, id)
	if verr != nil {
		return nil, verr
	}

	deck.Name = trimmedName
	deck.Description = trimText(description)
	deck.UpdatedAt = time.Now()

	if err := s.deckRepo.Update(ctx, *deck); err != nil {
		log.Error("failed to update deck: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("deck updated: id=%s", id)
	return deck, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%s", id)

	if _, err := s.GetDeck(ctx, id); err != nil {
		return err
	}

	if err := s.deckRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete deck: %v", err)
		return errors.NewInternalError(err)
	}

	log.Info("deck deleted: id=%s", id)
	return nil
}
