package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/KI1208/Anky/internal/logger"
	"github.com/KI1208/Anky/internal/models"
	"github.com/KI1208/Anky/internal/repository"
)

type flashcardRepository struct {
	db *sql.DB
}

// NewFlashcardRepository creates a new FlashcardRepository implementation
func NewFlashcardRepository(db *sql.DB) repository.FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Get(ctx context.Context, id string) (*models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("getting flashcard: id=%s", id)

	var c models.Flashcard
	err := r.db.QueryRowContext(ctx, `
SELECT id, deck_id, question, answer, created_at, updated_at
FROM flashcards
WHERE id = ?
`, id).Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("flashcard not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get flashcard: %v", err)
		return nil, err
	}
	return &c, nil
}

func (r *flashcardRepository) ListForDeck(ctx context.Context, deckID string) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("listing flashcards: deck_id=%s", deckID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, deck_id, question, answer, created_at, updated_at
FROM flashcards
WHERE deck_id = ?
ORDER BY created_at ASC, id ASC
`, deckID)
	if err != nil {
		log.Error("failed to query flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var c models.Flashcard
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.CreatedAt, &c.UpdatedAt); err != nil {
			log.Error("failed to scan flashcard row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d flashcards for deck %s", len(cards), deckID)
	return cards, rows.Err()
}

func (r *flashcardRepository) CountForDeck(ctx context.Context, deckID string) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")

	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flashcards WHERE deck_id = ?`, deckID).Scan(&count)
	if err != nil {
		log.Error("failed to count flashcards: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *flashcardRepository) Insert(ctx context.Context, c models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("inserting flashcard: id=%s, deck_id=%s", c.ID, c.DeckID)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO flashcards (id, deck_id, question, answer, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
`, c.ID, c.DeckID, c.Question, c.Answer, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		log.Error("failed to insert flashcard: %v", err)
	}
	return err
}

func (r *flashcardRepository) Update(ctx context.Context, c models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("updating flashcard: id=%s", c.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE flashcards
SET deck_id = ?, question = ?, answer = ?, updated_at = ?
WHERE id = ?
`, c.DeckID, c.Question, c.Answer, c.UpdatedAt, c.ID)
	if err != nil {
		log.Error("failed to update flashcard: %v", err)
	}
	return err
}

func (r *flashcardRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("flashcard_repo")
	log.Debug("deleting flashcard: id=%s", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete flashcard: %v", err)
	}
	return err
}
