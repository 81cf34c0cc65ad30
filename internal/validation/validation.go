// Package validation holds the pure record-validation rules applied before
// any write to the store. Study sessions never validate; they rely on these
// rules having run first.
package validation

import (
	"strings"

	"github.com/KI1208/Anky/internal/errors"
	"github.com/KI1208/Anky/internal/models"
)

// RequiredText trims value and rejects it when nothing remains.
// Returns the trimmed value on success.
func RequiredText(field, value string) (string, *errors.AppError) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.NewValidationError(field, "must not be empty")
	}
	return trimmed, nil
}

// DeckName validates a deck name against a snapshot of existing decks.
// Names are compared case-insensitively after trimming. excludeID skips the
// deck being renamed so an unchanged name still passes.
func DeckName(name string, existing []models.Deck, excludeID string) (string, *errors.AppError) {
	trimmed, err := RequiredText("name", name)
	if err != nil {
		return "", err
	}
	for _, d := range existing {
		if d.ID == excludeID {
			continue
		}
		if strings.EqualFold(d.Name, trimmed) {
			return "", errors.NewValidationError("name", "a deck with this name already exists")
		}
	}
	return trimmed, nil
}
