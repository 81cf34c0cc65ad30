package services

import (
	"context"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/KI1208/Anky/internal/errors"
	"github.com/KI1208/Anky/internal/logger"
	"github.com/KI1208/Anky/internal/models"
	"github.com/KI1208/Anky/internal/repository"
	"github.com/KI1208/Anky/internal/validation"
)

// FlashcardService handles flashcard-related business logic
type FlashcardService interface {
	CreateFlashcard(ctx context.Context, deckID, question, answer string) (*models.Flashcard, error)
	GetFlashcard(ctx context.Context, id string) (*models.Flashcard, error)
	ListFlashcards(ctx context.Context, deckID string) ([]models.Flashcard, error)
	UpdateFlashcard(ctx context.Context, id, question, answer string) (*models.Flashcard, error)
	DeleteFlashcard(ctx context.Context, id string) error
	MoveFlashcard(ctx context.Context, id, targetDeckID string) (*models.Flashcard, error)
}

type flashcardService struct {
	cardRepo repository.FlashcardRepository
	deckRepo repository.DeckRepository
}

// NewFlashcardService creates a new FlashcardService
func NewFlashcardService(cardRepo repository.FlashcardRepository, deckRepo repository.DeckRepository) FlashcardService {
	return &flashcardService{cardRepo: cardRepo, deckRepo: deckRepo}
}

func trimText(s string) string {
	return strings.TrimSpace(s)
}

func (s *flashcardService) CreateFlashcard(ctx context.Context, deckID, question, answer string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating flashcard: deck_id=%s", deckID)

	question, verr := validation.RequiredText("question", question)
	if verr != nil {
		return nil, verr
	}
	answer, verr = validation.RequiredText("answer", answer)
	if verr != nil {
		return nil, verr
	}

	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	id, err := gonanoid.New()
	if err != nil {
		log.Error("failed to generate flashcard id: %v", err)
		return nil, errors.NewInternalError(err)
	}

	now := time.Now()
	card := models.Flashcard{
		ID:        id,
		DeckID:    deckID,
		Question:  question,
		Answer:    answer,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.cardRepo.Insert(ctx, card); err != nil {
		log.Error("failed to insert flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("flashcard created: id=%s, deck_id=%s", card.ID, deckID)
	return &card, nil
}

func (s *flashcardService) GetFlashcard(ctx context.Context, id string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)

	card, err := s.cardRepo.Get(ctx, id)
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("flashcard", id)
	}
	return card, nil
}

func (s *flashcardService) ListFlashcards(ctx context.Context, deckID string) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx)

	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	cards, err := s.cardRepo.ListForDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to list flashcards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *flashcardService) UpdateFlashcard(ctx context.Context, id, question, answer string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating flashcard: id=%s", id)

	question, verr := validation.RequiredText("question", question)
	if verr != nil {
		return nil, verr
	}
	answer, verr = validation.RequiredText("answer", answer)
	if verr != nil {
		return nil, verr
	}

	card, err := s.GetFlashcard(ctx, id)
	if err != nil {
		return nil, err
	}

	card.Question = question
	card.Answer = answer
	card.UpdatedAt = time.Now()

	if err := s.cardRepo.Update(ctx, *card); err != nil {
		log.Error("failed to update flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("flashcard updated: id=%s", id)
	return card, nil
}

func (s *flashcardService) DeleteFlashcard(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting flashcard: id=%s", id)

	if _, err := s.GetFlashcard(ctx, id); err != nil {
		return err
	}

	if err := s.cardRepo.Delete(ctx, id); err != nil {
		log.Error("failed to delete flashcard: %v", err)
		return errors.NewInternalError(err)
	}

	log.Info("flashcard deleted: id=%s", id)
	return nil
}

// MoveFlashcard reassigns a card to another deck. The card's deck_id is the
// single source of membership, so moving it updates both sides at once.
func (s *flashcardService) MoveFlashcard(ctx context.Context, id, targetDeckID string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx)
	log.Debug("moving flashcard: id=%s, target_deck_id=%s", id, targetDeckID)

	card, err := s.GetFlashcard(ctx, id)
	if err != nil {
		return nil, err
	}

	deck, err := s.deckRepo.Get(ctx, targetDeckID)
	if err != nil {
		log.Error("failed to get target deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", targetDeckID)
	}

	if card.DeckID == targetDeckID {
		// Moving into the deck it already belongs to is a no-op.
		return card, nil
	}

	card.DeckID = targetDeckID
	card.UpdatedAt = time.Now()

	if err := s.cardRepo.Update(ctx, *card); err != nil {
		log.Error("failed to move flashcard: %v", err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("flashcard moved: id=%s, deck_id=%s", id, targetDeckID)
	return card, nil
}
