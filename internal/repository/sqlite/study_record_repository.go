package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"

	"github.com/KI1208/Anky/internal/logger"
	"github.com/KI1208/Anky/internal/models"
	"github.com/KI1208/Anky/internal/repository"
)

type studyRecordRepository struct {
	db *sql.DB
}

// NewStudyRecordRepository creates a new StudyRecordRepository implementation
func NewStudyRecordRepository(db *sql.DB) repository.StudyRecordRepository {
	return &studyRecordRepository{db: db}
}

func (r *studyRecordRepository) Insert(ctx context.Context, rec models.StudyRecord) error {
	log := logger.FromContext(ctx).WithPrefix("study_record_repo")
	log.Debug("inserting study record: id=%s, deck_id=%s, reviewed=%d/%d", rec.ID, rec.DeckID, rec.ReviewedCards, rec.TotalCards)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO study_records (id, deck_id, total_cards, reviewed_cards, duration_seconds, completed, started_at, ended_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, rec.ID, rec.DeckID, rec.TotalCards, rec.ReviewedCards, rec.DurationSeconds, rec.Completed, rec.StartedAt, rec.EndedAt)
	if err != nil {
		log.Error("failed to insert study record: %v", err)
	}
	return err
}

func (r *studyRecordRepository) ListForDeck(ctx context.Context, deckID string, limit int) ([]models.StudyRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("study_record_repo")
	log.Debug("listing study records: deck_id=%s, limit=%d", deckID, limit)

	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, deck_id, total_cards, reviewed_cards, duration_seconds, completed, started_at, ended_at
FROM study_records
WHERE deck_id = ?
ORDER BY started_at DESC
LIMIT ?
`, deckID, limit)
	if err != nil {
		log.Error("failed to query study records: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.StudyRecord
	for rows.Next() {
		var rec models.StudyRecord
		if err := rows.Scan(&rec.ID, &rec.DeckID, &rec.TotalCards, &rec.ReviewedCards, &rec.DurationSeconds, &rec.Completed, &rec.StartedAt, &rec.EndedAt); err != nil {
			log.Error("failed to scan study record row: %v", err)
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *studyRecordRepository) Stats(ctx context.Context, deckID string) (*models.StudyStats, error) {
	log := logger.FromContext(ctx).WithPrefix("study_record_repo")
	log.Debug("computing study stats: deck_id=%q", deckID)

	query := sqlBuilder.
		Select(
			"COUNT(*)",
			"COALESCE(SUM(completed), 0)",
			"COALESCE(SUM(reviewed_cards), 0)",
			"COALESCE(SUM(duration_seconds), 0)",
		).
		From("study_records")
	if deckID != "" {
		query = query.Where(squirrel.Eq{"deck_id": deckID})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var stats models.StudyStats
	err = r.db.QueryRowContext(ctx, sqlStr, args...).
		Scan(&stats.TotalSessions, &stats.CompletedSessions, &stats.CardsReviewed, &stats.TotalDurationSecs)
	if err != nil {
		log.Error("failed to compute study stats: %v", err)
		return nil, err
	}

	if stats.TotalSessions > 0 {
		stats.AvgDurationSecs = float64(stats.TotalDurationSecs) / float64(stats.TotalSessions)
		stats.AvgReviewedPerRun = float64(stats.CardsReviewed) / float64(stats.TotalSessions)
	}
	return &stats, nil
}
