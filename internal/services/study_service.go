package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/KI1208/Anky/internal/errors"
	"github.com/KI1208/Anky/internal/logger"
	"github.com/KI1208/Anky/internal/models"
	"github.com/KI1208/Anky/internal/repository"
	"github.com/KI1208/Anky/internal/study"
)

// CardView is the session's view of a flashcard, as handed to the caller.
type CardView struct {
	Card     *models.Flashcard `json:"card"`
	Progress study.Progress    `json:"progress"`
}

// NavResult reports the outcome of a navigation call along with the card now
// under the cursor (nil once the session is complete).
type NavResult struct {
	Moved    bool              `json:"moved"`
	Card     *models.Flashcard `json:"card"`
	Progress study.Progress    `json:"progress"`
}

// StudyService is the study session manager: it owns at most one live
// session, guards every operation with its preconditions, and shields
// callers from internal faults. Exactly one session slot exists; Start on a
// live session replaces it.
type StudyService interface {
	Start(ctx context.Context, deckID string) (*CardView, error)
	Next(ctx context.Context) (*NavResult, error)
	Previous(ctx context.Context) (*NavResult, error)
	JumpTo(ctx context.Context, index int) (*NavResult, error)
	Current(ctx context.Context) (*CardView, error)
	Progress(ctx context.Context) (*study.Progress, error)
	Summary(ctx context.Context) (*study.Summary, error)
	Complete(ctx context.Context) (*study.Summary, error)
	End(ctx context.Context) (*study.Summary, error)
	Reset(ctx context.Context) (*CardView, error)
	HasActiveSession() bool
}

type studyService struct {
	mu         sync.Mutex
	session    *study.Session
	deckRepo   repository.DeckRepository
	cardRepo   repository.FlashcardRepository
	recordRepo repository.StudyRecordRepository
}

// NewStudyService creates a new StudyService with an empty session slot.
func NewStudyService(deckRepo repository.DeckRepository, cardRepo repository.FlashcardRepository, recordRepo repository.StudyRecordRepository) StudyService {
	return &studyService{
		deckRepo:   deckRepo,
		cardRepo:   cardRepo,
		recordRepo: recordRepo,
	}
}

// guard converts a panic in a collaborator call into an INTERNAL_ERROR so
// that no fault escapes the manager boundary.
func guard(ctx context.Context, err *error) {
	if r := recover(); r != nil {
		logger.FromContext(ctx).Error("study operation panicked: %v", r)
		*err = errors.NewInternalError(fmt.Errorf("panic: %v", r))
	}
}

func (s *studyService) Start(ctx context.Context, deckID string) (result *CardView, err error) {
	defer guard(ctx, &err)
	log := logger.FromContext(ctx)
	log.Debug("starting study session: deck_id=%q", deckID)

	deckID = strings.TrimSpace(deckID)
	if deckID == "" {
		return nil, errors.NewInvalidArgumentError("deck_id", "must not be empty")
	}

	deck, err := s.deckRepo.Get(ctx, deckID)
	if err != nil {
		log.Error("failed to load deck: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if deck == nil {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	cards, err := s.cardRepo.ListForDeck(ctx, deckID)
	if err != nil {
		log.Error("failed to load cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if len(cards) == 0 {
		return nil, errors.NewEmptyDeckError(deckID)
	}

	session, err := study.NewSession(deckID, cards)
	if err != nil {
		// Unreachable given the emptiness check above; surface it anyway.
		return nil, errors.NewInternalError(err)
	}

	s.mu.Lock()
	if s.session != nil {
		// A live session is replaced silently; nothing is persisted for it.
		log.Warn("replacing active study session: old_session_id=%s", s.session.ID())
	}
	s.session = session
	card, _ := session.Current()
	progress := session.Progress()
	s.mu.Unlock()

	log.Info("study session started: session_id=%s, deck_id=%s, cards=%d", session.ID(), deckID, len(cards))
	return &CardView{Card: card, Progress: progress}, nil
}

func (s *studyService) Next(ctx context.Context) (result *NavResult, err error) {
	defer guard(ctx, &err)
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, errors.NewNoActiveSessionError()
	}

	outcome := s.session.Advance()
	card, _ := s.session.Current()
	progress := s.session.Progress()

	if outcome == study.AdvanceCompleted {
		log.Info("study session complete: session_id=%s", s.session.ID())
	}
	return &NavResult{
		Moved:    outcome != study.AdvanceNone,
		Card:     card,
		Progress: progress,
	}, nil
}

func (s *studyService) Previous(ctx context.Context) (result *NavResult, err error) {
	defer guard(ctx, &err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, errors.NewNoActiveSessionError()
	}

	if !s.session.Retreat() {
		return nil, errors.NewInvalidNavigationError("already at the first card")
	}
	card, _ := s.session.Current()
	return &NavResult{Moved: true, Card: card, Progress: s.session.Progress()}, nil
}

func (s *studyService) JumpTo(ctx context.Context, index int) (result *NavResult, err error) {
	defer guard(ctx, &err)

	// The manager rejects malformed external input before delegating; the
	// session re-checks bounds against its own state.
	if index < 0 {
		return nil, errors.NewInvalidArgumentError("index", "must be a non-negative integer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, errors.NewNoActiveSessionError()
	}

	if !s.session.JumpTo(index) {
		return nil, errors.NewInvalidNavigationError(fmt.Sprintf("cannot jump to card %d", index))
	}
	card, _ := s.session.Current()
	return &NavResult{Moved: true, Card: card, Progress: s.session.Progress()}, nil
}

func (s *studyService) Current(ctx context.Context) (result *CardView, err error) {
	defer guard(ctx, &err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, errors.NewNoActiveSessionError()
	}

	card, _ := s.session.Current()
	return &CardView{Card: card, Progress: s.session.Progress()}, nil
}

func (s *studyService) Progress(ctx context.Context) (result *study.Progress, err error) {
	defer guard(ctx, &err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, errors.NewNoActiveSessionError()
	}

	p := s.session.Progress()
	return &p, nil
}

func (s *studyService) Summary(ctx context.Context) (result *study.Summary, err error) {
	defer guard(ctx, &err)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, errors.NewNoActiveSessionError()
	}

	sum := s.session.Summary()
	return &sum, nil
}

// Complete force-completes the live session, persists its summary, and
// clears the slot.
func (s *studyService) Complete(ctx context.Context) (result *study.Summary, err error) {
	defer guard(ctx, &err)
	log := logger.FromContext(ctx)

	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil, errors.NewNoActiveSessionError()
	}

	s.session.ForceComplete()
	sum := s.session.Summary()
	s.session = nil
	s.mu.Unlock()

	s.persistRecord(ctx, sum)
	log.Info("study session completed: session_id=%s, reviewed=%d/%d", sum.SessionID, sum.ReviewedCards, sum.TotalCards)
	return &sum, nil
}

// End clears the slot without force-completing: a session ended early keeps
// its partial reviewed count.
func (s *studyService) End(ctx context.Context) (result *study.Summary, err error) {
	defer guard(ctx, &err)
	log := logger.FromContext(ctx)

	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return nil, errors.NewNoActiveSessionError()
	}

	sum := s.session.Summary()
	s.session = nil
	s.mu.Unlock()

	s.persistRecord(ctx, sum)
	log.Info("study session ended: session_id=%s, reviewed=%d/%d", sum.SessionID, sum.ReviewedCards, sum.TotalCards)
	return &sum, nil
}

// Reset rewinds the live session in place; it stays current and active.
func (s *studyService) Reset(ctx context.Context) (result *CardView, err error) {
	defer guard(ctx, &err)
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil, errors.NewNoActiveSessionError()
	}

	s.session.ResetToStart()
	card, _ := s.session.Current()
	log.Info("study session reset: session_id=%s", s.session.ID())
	return &CardView{Card: card, Progress: s.session.Progress()}, nil
}

func (s *studyService) HasActiveSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// persistRecord writes the finished session's summary to the store. The
// session outcome is already decided, so a storage failure is logged and
// swallowed.
func (s *studyService) persistRecord(ctx context.Context, sum study.Summary) {
	log := logger.FromContext(ctx)

	record := models.StudyRecord{
		ID:              uuid.NewString(),
		DeckID:          sum.DeckID,
		TotalCards:      sum.TotalCards,
		ReviewedCards:   sum.ReviewedCards,
		DurationSeconds: sum.DurationSeconds,
		Completed:       sum.IsComplete,
		StartedAt:       sum.StartedAt,
		EndedAt:         sum.EndedAt,
	}
	if err := s.recordRepo.Insert(ctx, record); err != nil {
		log.Warn("failed to persist study record: %v", err)
	}
}
