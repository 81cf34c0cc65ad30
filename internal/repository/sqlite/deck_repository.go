package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/KI1208/Anky/internal/logger"
	"github.com/KI1208/Anky/internal/models"
	"github.com/KI1208/Anky/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type deckRepository struct {
	db *sql.DB
}

// NewDeckRepository creates a new DeckRepository implementation
func NewDeckRepository(db *sql.DB) repository.DeckRepository {
	return &deckRepository{db: db}
}

func (r *deckRepository) Get(ctx context.Context, id string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck: id=%s", id)

	var d models.Deck
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, description, created_at, updated_at
FROM decks
WHERE id = ?
`, id).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%s", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) GetByName(ctx context.Context, name string) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("getting deck by name: name=%s", name)

	var d models.Deck
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, description, created_at, updated_at
FROM decks
WHERE name = ? COLLATE NOCASE
`, name).Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck by name: %v", err)
		return nil, err
	}
	return &d, nil
}

func (r *deckRepository) List(ctx context.Context, filter models.DeckFilter) ([]models.DeckWithCount, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("listing decks: name=%q, limit=%d, offset=%d", filter.Name, filter.Limit, filter.Offset)

	query := sqlBuilder.
		Select("d.id", "d.name", "d.description", "d.created_at", "d.updated_at",
			"COUNT(f.id) AS card_count").
		From("decks d").
		LeftJoin("flashcards f ON f.deck_id = d.id").
		GroupBy("d.id").
		OrderBy("d.name COLLATE NOCASE ASC")

	if filter.Name != "" {
		query = query.Where(squirrel.Like{"d.name": "%" + filter.Name + "%"})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	query = query.Limit(uint64(limit))
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build deck list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.DeckWithCount
	for rows.Next() {
		var d models.DeckWithCount
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.CreatedAt, &d.UpdatedAt, &d.CardCount); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (r *deckRepository) Count(ctx context.Context, filter models.DeckFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")

	query := sqlBuilder.Select("COUNT(*)").From("decks")
	if filter.Name != "" {
		query = query.Where(squirrel.Like{"name": "%" + filter.Name + "%"})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count decks: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *deckRepository) Insert(ctx context.Context, deck models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("inserting deck: id=%s, name=%s", deck.ID, deck.Name)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO decks (id, name, description, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
`, deck.ID, deck.Name, deck.Description, deck.CreatedAt, deck.UpdatedAt)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
	}
	return err
}

func (r *deckRepository) Update(ctx context.Context, deck models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("updating deck: id=%s", deck.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE decks
SET name = ?, description = ?, updated_at = ?
WHERE id = ?
`, deck.Name, deck.Description, deck.UpdatedAt, deck.ID)
	if err != nil {
		log.Error("failed to update deck: %v", err)
	}
	return err
}

func (r *deckRepository) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("deck_repo")
	log.Debug("deleting deck: id=%s", id)

	// Flashcards go with the deck via ON DELETE CASCADE.
	_, err := r.db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
	}
	return err
}
