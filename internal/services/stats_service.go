package services

import (
	"context"

	"github.com/KI1208/Anky/internal/errors"
	"github.com/KI1208/Anky/internal/logger"
	"github.com/KI1208/Anky/internal/models"
	"github.com/KI1208/Anky/internal/repository"
)

// StatsService reports aggregates over finished study sessions.
type StatsService interface {
	StudyStats(ctx context.Context) (*models.StudyStats, error)
	DeckStats(ctx context.Context, deckID string) (*models.StudyStats, error)
	RecentSessions(ctx context.Context, deckID string, limit int) ([]models.StudyRecord, error)
}

type statsService struct {
	recordRepo repository.StudyRecordRepository
	deckRepo   repository.DeckRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(recordRepo repository.StudyRecordRepository, deckRepo repository.DeckRepository) StatsService {
	return &statsService{recordRepo: recordRepo, deckRepo: deckRepo}
}

func (s *statsService) StudyStats(ctx context.Context) (*models.StudyStats, error) {
	log := logger.FromContext(ctx)

	stats, err := s.recordRepo.Stats(ctx, "")
	if err != nil {
		log.Error("failed to compute study stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) DeckStats(ctx context.Context, deckID string) (*models.StudyStats, error) {
	log := logger.FromContext(ctx)

	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	stats, err := s.recordRepo.Stats(ctx, deckID)
	if err != nil {
		log.Error("failed to compute deck stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}

func (s *statsService) RecentSessions(ctx context.Context, deckID string, limit int) ([]models.StudyRecord, error) {
	log := logger.FromContext(ctx)

	records, err := s.recordRepo.ListForDeck(ctx, deckID, limit)
	if err != nil {
		log.Error("failed to list study records: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return records, nil
}
