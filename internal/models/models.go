package models

import "time"

type Deck struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeckWithCount is a deck plus its flashcard count, for list views.
type DeckWithCount struct {
	Deck
	CardCount int `json:"card_count"`
}

type Flashcard struct {
	ID        string    `json:"id"`
	DeckID    string    `json:"deck_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DeckFilter struct {
	Name   string
	Limit  int
	Offset int
}

// StudyRecord is the persisted outcome of a finished study session.
type StudyRecord struct {
	ID              string     `json:"id"`
	DeckID          string     `json:"deck_id"`
	TotalCards      int        `json:"total_cards"`
	ReviewedCards   int        `json:"reviewed_cards"`
	DurationSeconds int        `json:"duration_seconds"`
	Completed       bool       `json:"completed"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at"`
}

// StudyStats aggregates study records, optionally scoped to one deck.
type StudyStats struct {
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	CardsReviewed     int     `json:"cards_reviewed"`
	TotalDurationSecs int     `json:"total_duration_seconds"`
	AvgDurationSecs   float64 `json:"avg_duration_seconds"`
	AvgReviewedPerRun float64 `json:"avg_reviewed_per_session"`
}
