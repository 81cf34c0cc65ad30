package api

import (
	"database/sql"

	"github.com/KI1208/Anky/internal/services"
	"github.com/KI1208/Anky/internal/worker"
)

// Server bundles the services behind the HTTP surface.
type Server struct {
	DeckService      services.DeckService
	FlashcardService services.FlashcardService
	StudyService     services.StudyService
	ImportService    services.ImportService
	StatsService     services.StatsService
	ImportPool       *worker.Pool
	DB               *sql.DB
}
