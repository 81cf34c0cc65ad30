package repository

import (
	"context"

	"github.com/KI1208/Anky/internal/models"
)

// DeckRepository handles deck data access
type DeckRepository interface {
	Get(ctx context.Context, id string) (*models.Deck, error)
	GetByName(ctx context.Context, name string) (*models.Deck, error)
	List(ctx context.Context, filter models.DeckFilter) ([]models.DeckWithCount, error)
	Count(ctx context.Context, filter models.DeckFilter) (int, error)
	Insert(ctx context.Context, deck models.Deck) error
	Update(ctx context.Context, deck models.Deck) error
	Delete(ctx context.Context, id string) error
}

// FlashcardRepository handles flashcard data access
type FlashcardRepository interface {
	Get(ctx context.Context, id string) (*models.Flashcard, error)
	ListForDeck(ctx context.Context, deckID string) ([]models.Flashcard, error)
	CountForDeck(ctx context.Context, deckID string) (int, error)
	Insert(ctx context.Context, card models.Flashcard) error
	Update(ctx context.Context, card models.Flashcard) error
	Delete(ctx context.Context, id string) error
}

// StudyRecordRepository persists finished study session summaries
type StudyRecordRepository interface {
	Insert(ctx context.Context, record models.StudyRecord) error
	ListForDeck(ctx context.Context, deckID string, limit int) ([]models.StudyRecord, error)
	Stats(ctx context.Context, deckID string) (*models.StudyStats, error)
}
