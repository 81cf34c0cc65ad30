package services

import (
	"context"
	"fmt"

	"github.com/KI1208/Anky/internal/errors"
	"github.com/KI1208/Anky/internal/logger"
)

// ImportCard is one card in an import payload.
type ImportCard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ImportDeckRequest is the payload for a deck import: a deck plus its cards,
// created together in the background.
type ImportDeckRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Cards       []ImportCard `json:"cards"`
}

// ImportService creates whole decks from import payloads.
type ImportService interface {
	ImportDeck(ctx context.Context, req ImportDeckRequest) error
}

type importService struct {
	deckSvc DeckService
	cardSvc FlashcardService
}

// NewImportService creates a new ImportService
func NewImportService(deckSvc DeckService, cardSvc FlashcardService) ImportService {
	return &importService{deckSvc: deckSvc, cardSvc: cardSvc}
}

// ImportDeck creates the deck and each of its cards through the regular
// services, so the usual validation applies to every record. A card that
// fails validation skips that card only; the deck and the remaining cards
// still land.
func (s *importService) ImportDeck(ctx context.Context, req ImportDeckRequest) error {
	log := logger.FromContext(ctx)
	log.Info("importing deck: name=%q, cards=%d", req.Name, len(req.Cards))

	deck, err := s.deckSvc.CreateDeck(ctx, req.Name, req.Description)
	if err != nil {
		return fmt.Errorf("create deck: %w", err)
	}

	imported := 0
	for i, card := range req.Cards {
		if _, err := s.cardSvc.CreateFlashcard(ctx, deck.ID, card.Question, card.Answer); err != nil {
			if appErr, ok := err.(*errors.AppError); ok && appErr.Code == errors.ErrCodeValidation {
				log.Warn("skipping invalid card %d: %v", i, appErr)
				continue
			}
			return fmt.Errorf("create card %d: %w", i, err)
		}
		imported++
	}

	log.Info("deck imported: id=%s, cards=%d/%d", deck.ID, imported, len(req.Cards))
	return nil
}

// ImportJob adapts an import request to the worker pool.
type ImportJob struct {
	Svc ImportService
	Req ImportDeckRequest
}

func (j *ImportJob) Name() string {
	return fmt.Sprintf("import-deck(%s)", j.Req.Name)
}

func (j *ImportJob) Run(ctx context.Context) error {
	return j.Svc.ImportDeck(ctx, j.Req)
}
