package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KI1208/Anky/internal/api"
	"github.com/KI1208/Anky/internal/repository/sqlite"
	"github.com/KI1208/Anky/internal/services"
	"github.com/KI1208/Anky/internal/testutil"
	"github.com/KI1208/Anky/internal/worker"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Errors  []struct {
		Code    string `json:"code"`
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func newTestServer(t *testing.T) http.Handler {
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })

	deckRepo := sqlite.NewDeckRepository(db)
	cardRepo := sqlite.NewFlashcardRepository(db)
	recordRepo := sqlite.NewStudyRecordRepository(db)

	deckSvc := services.NewDeckService(deckRepo)
	cardSvc := services.NewFlashcardService(cardRepo, deckRepo)

	srv := &api.Server{
		DeckService:      deckSvc,
		FlashcardService: cardSvc,
		StudyService:     services.NewStudyService(deckRepo, cardRepo, recordRepo),
		ImportService:    services.NewImportService(deckSvc, cardSvc),
		StatsService:     services.NewStatsService(recordRepo, deckRepo),
		ImportPool:       worker.NewPool(1, 4),
		DB:               db,
	}
	return srv.Routes()
}

func do(t *testing.T, h http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func createDeckWithCards(t *testing.T, h http.Handler, name string, questions ...string) string {
	rec, env := do(t, h, http.MethodPost, "/decks", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, rec.Code)

	var deck struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &deck))

	for _, q := range questions {
		rec, _ := do(t, h, http.MethodPost, "/decks/"+deck.ID+"/cards", map[string]string{
			"question": q,
			"answer":   "answer to " + q,
		})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	return deck.ID
}

func TestStudyFlow(t *testing.T) {
	h := newTestServer(t)
	deckID := createDeckWithCards(t, h, "Geography", "q1", "q2", "q3")

	rec, env := do(t, h, http.MethodPost, "/study/start", map[string]string{"deck_id": deckID})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, env.Success)

	var view struct {
		Card struct {
			Question string `json:"question"`
		} `json:"card"`
		Progress struct {
			TotalCards int  `json:"total_cards"`
			HasNext    bool `json:"has_next"`
		} `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "q1", view.Card.Question)
	assert.Equal(t, 3, view.Progress.TotalCards)
	assert.True(t, view.Progress.HasNext)

	rec, env = do(t, h, http.MethodPost, "/study/next", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var nav struct {
		Moved bool `json:"moved"`
		Card  *struct {
			Question string `json:"question"`
		} `json:"card"`
		Progress struct {
			ReviewedCount int  `json:"reviewed_count"`
			IsComplete    bool `json:"is_complete"`
		} `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &nav))
	assert.True(t, nav.Moved)
	require.NotNil(t, nav.Card)
	assert.Equal(t, "q2", nav.Card.Question)
	assert.Equal(t, 1, nav.Progress.ReviewedCount)

	rec, env = do(t, h, http.MethodPost, "/study/complete", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary struct {
		ReviewedCards int  `json:"reviewed_cards"`
		IsComplete    bool `json:"is_complete"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.True(t, summary.IsComplete)
	assert.Equal(t, 3, summary.ReviewedCards)

	// The slot is cleared after complete.
	rec, env = do(t, h, http.MethodGet, "/study/active", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var active struct {
		Active bool `json:"active"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &active))
	assert.False(t, active.Active)

	// Stats picked up the persisted record.
	rec, env = do(t, h, http.MethodGet, "/stats/study", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var stats struct {
		TotalSessions     int `json:"total_sessions"`
		CompletedSessions int `json:"completed_sessions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 1, stats.TotalSessions)
	assert.Equal(t, 1, stats.CompletedSessions)
}

func TestStudyErrorEnvelopes(t *testing.T) {
	h := newTestServer(t)

	rec, env := do(t, h, http.MethodPost, "/study/next", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.False(t, env.Success)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "NO_ACTIVE_SESSION", env.Errors[0].Code)

	rec, env = do(t, h, http.MethodPost, "/study/start", map[string]string{"deck_id": "missing"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Errors[0].Code)

	emptyDeck := createDeckWithCards(t, h, "Empty")
	rec, env = do(t, h, http.MethodPost, "/study/start", map[string]string{"deck_id": emptyDeck})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "EMPTY_DECK", env.Errors[0].Code)
}

func TestStudyJumpValidation(t *testing.T) {
	h := newTestServer(t)
	deckID := createDeckWithCards(t, h, "Jumpy", "q1", "q2")

	rec, _ := do(t, h, http.MethodPost, "/study/start", map[string]string{"deck_id": deckID})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := do(t, h, http.MethodPost, "/study/jump", map[string]interface{}{"index": "one"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ARGUMENT", env.Errors[0].Code)

	rec, env = do(t, h, http.MethodPost, "/study/jump", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = do(t, h, http.MethodPost, "/study/jump", map[string]interface{}{"index": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, env.Success)

	rec, env = do(t, h, http.MethodPost, "/study/jump", map[string]interface{}{"index": 5})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "INVALID_NAVIGATION", env.Errors[0].Code)
}

func TestValidationErrorCarriesField(t *testing.T) {
	h := newTestServer(t)

	rec, env := do(t, h, http.MethodPost, "/decks", map[string]string{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "VALIDATION_ERROR", env.Errors[0].Code)
	assert.Equal(t, "name", env.Errors[0].Field)
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
