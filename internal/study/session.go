// Package study implements the in-memory study session state machine: a
// cursor over a fixed, ordered snapshot of a deck's flashcards.
package study

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/KI1208/Anky/internal/models"
)

// ErrNoCards is returned when a session is constructed with an empty card list.
var ErrNoCards = errors.New("study: session requires at least one card")

// AdvanceOutcome describes what a call to Advance did.
type AdvanceOutcome int

const (
	// AdvanceNone means the session was already complete and nothing moved.
	AdvanceNone AdvanceOutcome = iota
	// AdvanceMoved means the cursor moved and another card is available.
	AdvanceMoved
	// AdvanceCompleted means the cursor moved past the last card and the
	// session is now complete.
	AdvanceCompleted
)

// Progress is a read-only snapshot of session progress.
type Progress struct {
	Cursor          int  `json:"cursor"`
	TotalCards      int  `json:"total_cards"`
	ReviewedCount   int  `json:"reviewed_count"`
	PercentComplete int  `json:"percent_complete"`
	IsComplete      bool `json:"is_complete"`
	HasNext         bool `json:"has_next"`
	HasPrevious     bool `json:"has_previous"`
}

// Summary describes a session's outcome. It can be taken mid-session, in
// which case the duration is measured against the current time without
// mutating the session.
type Summary struct {
	SessionID       string     `json:"session_id"`
	DeckID          string     `json:"deck_id"`
	TotalCards      int        `json:"total_cards"`
	ReviewedCards   int        `json:"reviewed_cards"`
	DurationSeconds int        `json:"duration_seconds"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
	IsComplete      bool       `json:"is_complete"`
}

// Session walks a fixed ordered list of flashcards exactly once. The card
// list is copied at construction, so later changes to the store do not reach
// an in-progress session. A Session is not safe for concurrent use; its
// owner serializes access.
type Session struct {
	id        uuid.UUID
	deckID    string
	cards     []models.Flashcard
	cursor    int
	reviewed  map[int]struct{}
	startedAt time.Time
	endedAt   *time.Time
	complete  bool
	now       func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock overrides the session's time source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// NewSession creates a session over a private copy of cards. The list must
// not be empty; the caller checks the deck before constructing.
func NewSession(deckID string, cards []models.Flashcard, opts ...Option) (*Session, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}

	snapshot := make([]models.Flashcard, len(cards))
	copy(snapshot, cards)

	s := &Session{
		id:       uuid.New(),
		deckID:   deckID,
		cards:    snapshot,
		reviewed: make(map[int]struct{}, len(snapshot)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.startedAt = s.now()
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id.String() }

// DeckID returns the deck under study.
func (s *Session) DeckID() string { return s.deckID }

// Current returns the card under the cursor. The second return is false when
// the session is complete and no card is available.
func (s *Session) Current() (*models.Flashcard, bool) {
	if s.complete || s.cursor >= len(s.cards) {
		return nil, false
	}
	card := s.cards[s.cursor]
	return &card, true
}

// Advance marks the current card reviewed and moves the cursor forward.
// Moving past the last card completes the session and counts every card as
// reviewed.
func (s *Session) Advance() AdvanceOutcome {
	if s.complete {
		return AdvanceNone
	}

	s.reviewed[s.cursor] = struct{}{}
	s.cursor++

	if s.cursor >= len(s.cards) {
		s.finish()
		return AdvanceCompleted
	}
	return AdvanceMoved
}

// Retreat moves the cursor back one card. Returns false at the first card.
// Retreating out of a completed session reopens it: the cursor lands back on
// the last card and the end time is cleared.
func (s *Session) Retreat() bool {
	if s.cursor == 0 {
		return false
	}
	s.cursor--
	s.complete = false
	s.endedAt = nil
	return true
}

// JumpTo moves the cursor to index. It fails on a completed session or an
// out-of-range index, leaving the cursor unchanged. Jumping to the last card
// never completes the session; only Advance and ForceComplete do.
func (s *Session) JumpTo(index int) bool {
	if s.complete || index < 0 || index >= len(s.cards) {
		return false
	}
	s.cursor = index
	return true
}

// Progress returns a snapshot of the session's progress counters.
func (s *Session) Progress() Progress {
	n := len(s.cards)
	reviewed := len(s.reviewed)
	return Progress{
		Cursor:          s.cursor,
		TotalCards:      n,
		ReviewedCount:   reviewed,
		PercentComplete: int(math.Round(float64(reviewed) / float64(n) * 100)),
		IsComplete:      s.complete,
		HasNext:         s.cursor < n-1,
		HasPrevious:     s.cursor > 0,
	}
}

// ForceComplete ends the session regardless of cursor position, counting
// every card as reviewed. Idempotent.
func (s *Session) ForceComplete() {
	if s.complete {
		return
	}
	s.finish()
}

// Summary reports the session's outcome. On a live session the duration runs
// up to now; state is not mutated.
func (s *Session) Summary() Summary {
	end := s.now()
	if s.endedAt != nil {
		end = *s.endedAt
	}
	return Summary{
		SessionID:       s.id.String(),
		DeckID:          s.deckID,
		TotalCards:      len(s.cards),
		ReviewedCards:   len(s.reviewed),
		DurationSeconds: int(math.Round(end.Sub(s.startedAt).Seconds())),
		StartedAt:       s.startedAt,
		EndedAt:         s.endedAt,
		IsComplete:      s.complete,
	}
}

// ResetToStart rewinds the session to a fresh state over the same cards,
// restarting the clock. Works on a completed session.
func (s *Session) ResetToStart() {
	s.cursor = 0
	s.complete = false
	s.endedAt = nil
	s.reviewed = make(map[int]struct{}, len(s.cards))
	s.startedAt = s.now()
}

func (s *Session) finish() {
	s.complete = true
	now := s.now()
	s.endedAt = &now
	for i := range s.cards {
		s.reviewed[i] = struct{}{}
	}
}
