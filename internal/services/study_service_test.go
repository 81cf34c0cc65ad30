package services_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KI1208/Anky/internal/errors"
	"github.com/KI1208/Anky/internal/repository"
	"github.com/KI1208/Anky/internal/repository/sqlite"
	"github.com/KI1208/Anky/internal/services"
	"github.com/KI1208/Anky/internal/testutil"
)

type StudyServiceSuite struct {
	suite.Suite
	db       *sql.DB
	deckRepo repository.DeckRepository
	cardRepo repository.FlashcardRepository
	recRepo  repository.StudyRecordRepository
	deckSvc  services.DeckService
	cardSvc  services.FlashcardService
	studySvc services.StudyService
}

func (s *StudyServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.deckRepo = sqlite.NewDeckRepository(s.db)
	s.cardRepo = sqlite.NewFlashcardRepository(s.db)
	s.recRepo = sqlite.NewStudyRecordRepository(s.db)
	s.deckSvc = services.NewDeckService(s.deckRepo)
	s.cardSvc = services.NewFlashcardService(s.cardRepo, s.deckRepo)
	s.studySvc = services.NewStudyService(s.deckRepo, s.cardRepo, s.recRepo)
}

func (s *StudyServiceSuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

// makeDeck creates a deck with n cards and returns its id.
func (s *StudyServiceSuite) makeDeck(name string, n int) string {
	ctx := context.Background()
	deck, err := s.deckSvc.CreateDeck(ctx, name, "")
	s.Require().NoError(err)
	for i := 0; i < n; i++ {
		_, err := s.cardSvc.CreateFlashcard(ctx, deck.ID,
			"question "+string(rune('a'+i)), "answer "+string(rune('a'+i)))
		s.Require().NoError(err)
	}
	return deck.ID
}

func (s *StudyServiceSuite) assertCode(err error, code string) {
	s.Require().Error(err)
	appErr, ok := err.(*errors.AppError)
	s.Require().True(ok, "expected *errors.AppError, got %T", err)
	s.Assert().Equal(code, appErr.Code)
}

func (s *StudyServiceSuite) TestStartValidations() {
	ctx := context.Background()

	_, err := s.studySvc.Start(ctx, "")
	s.assertCode(err, errors.ErrCodeInvalidArgument)

	_, err = s.studySvc.Start(ctx, "   ")
	s.assertCode(err, errors.ErrCodeInvalidArgument)

	_, err = s.studySvc.Start(ctx, "no-such-deck")
	s.assertCode(err, errors.ErrCodeNotFound)

	emptyDeck := s.makeDeck("Empty", 0)
	_, err = s.studySvc.Start(ctx, emptyDeck)
	s.assertCode(err, errors.ErrCodeEmptyDeck)
	s.Assert().False(s.studySvc.HasActiveSession())
}

func (s *StudyServiceSuite) TestStartReturnsFirstCard() {
	ctx := context.Background()
	deckID := s.makeDeck("Geography", 3)

	view, err := s.studySvc.Start(ctx, deckID)
	s.Require().NoError(err)
	s.Require().NotNil(view.Card)
	s.Assert().Equal("question a", view.Card.Question)
	s.Assert().Equal(3, view.Progress.TotalCards)
	s.Assert().Equal(0, view.Progress.Cursor)
	s.Assert().True(s.studySvc.HasActiveSession())
}

func (s *StudyServiceSuite) TestOperationsWithoutSession() {
	ctx := context.Background()

	_, err := s.studySvc.Next(ctx)
	s.assertCode(err, errors.ErrCodeNoActiveSession)
	_, err = s.studySvc.Previous(ctx)
	s.assertCode(err, errors.ErrCodeNoActiveSession)
	_, err = s.studySvc.JumpTo(ctx, 0)
	s.assertCode(err, errors.ErrCodeNoActiveSession)
	_, err = s.studySvc.Current(ctx)
	s.assertCode(err, errors.ErrCodeNoActiveSession)
	_, err = s.studySvc.Progress(ctx)
	s.assertCode(err, errors.ErrCodeNoActiveSession)
	_, err = s.studySvc.Summary(ctx)
	s.assertCode(err, errors.ErrCodeNoActiveSession)
	_, err = s.studySvc.Complete(ctx)
	s.assertCode(err, errors.ErrCodeNoActiveSession)
	_, err = s.studySvc.End(ctx)
	s.assertCode(err, errors.ErrCodeNoActiveSession)
	_, err = s.studySvc.Reset(ctx)
	s.assertCode(err, errors.ErrCodeNoActiveSession)
}

func (s *StudyServiceSuite) TestPartialSessionSummary() {
	ctx := context.Background()
	deckID := s.makeDeck("History", 3)

	_, err := s.studySvc.Start(ctx, deckID)
	s.Require().NoError(err)

	// next() twice, then a non-terminating summary.
	_, err = s.studySvc.Next(ctx)
	s.Require().NoError(err)
	_, err = s.studySvc.Next(ctx)
	s.Require().NoError(err)

	sum, err := s.studySvc.Summary(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(2, sum.ReviewedCards)
	s.Assert().Equal(3, sum.TotalCards)
	s.Assert().False(sum.IsComplete)
	s.Assert().True(s.studySvc.HasActiveSession(), "summary does not clear the session")
}

func (s *StudyServiceSuite) TestSingleCardDeckEndToEnd() {
	ctx := context.Background()
	deckID := s.makeDeck("Solo", 1)

	_, err := s.studySvc.Start(ctx, deckID)
	s.Require().NoError(err)

	result, err := s.studySvc.Next(ctx)
	s.Require().NoError(err)
	s.Assert().True(result.Moved)
	s.Assert().Nil(result.Card)
	s.Assert().True(result.Progress.IsComplete)
	s.Assert().False(result.Progress.HasNext)

	sum, err := s.studySvc.Complete(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(1, sum.ReviewedCards)
	s.Assert().False(s.studySvc.HasActiveSession())
}

func (s *StudyServiceSuite) TestCompleteForceCompletesAndPersists() {
	ctx := context.Background()
	deckID := s.makeDeck("Math", 4)

	_, err := s.studySvc.Start(ctx, deckID)
	s.Require().NoError(err)
	_, err = s.studySvc.Next(ctx)
	s.Require().NoError(err)

	sum, err := s.studySvc.Complete(ctx)
	s.Require().NoError(err)
	s.Assert().True(sum.IsComplete)
	s.Assert().Equal(4, sum.ReviewedCards, "force-complete counts every card")
	s.Assert().False(s.studySvc.HasActiveSession())

	records, err := s.recRepo.ListForDeck(ctx, deckID, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Assert().True(records[0].Completed)
	s.Assert().Equal(4, records[0].ReviewedCards)
}

func (s *StudyServiceSuite) TestEndKeepsPartialCount() {
	ctx := context.Background()
	deckID := s.makeDeck("Physics", 3)

	_, err := s.studySvc.Start(ctx, deckID)
	s.Require().NoError(err)
	_, err = s.studySvc.Next(ctx)
	s.Require().NoError(err)

	sum, err := s.studySvc.End(ctx)
	s.Require().NoError(err)
	s.Assert().False(sum.IsComplete, "end does not force-complete")
	s.Assert().Equal(1, sum.ReviewedCards)
	s.Assert().False(s.studySvc.HasActiveSession())

	records, err := s.recRepo.ListForDeck(ctx, deckID, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Assert().False(records[0].Completed)
}

func (s *StudyServiceSuite) TestJumpValidation() {
	ctx := context.Background()
	deckID := s.makeDeck("Chemistry", 3)

	_, err := s.studySvc.Start(ctx, deckID)
	s.Require().NoError(err)

	// Negative index is rejected by the manager before delegation.
	_, err = s.studySvc.JumpTo(ctx, -1)
	s.assertCode(err, errors.ErrCodeInvalidArgument)

	// In-range index succeeds.
	result, err := s.studySvc.JumpTo(ctx, 2)
	s.Require().NoError(err)
	s.Assert().Equal("question c", result.Card.Question)
	s.Assert().False(result.Progress.IsComplete, "jump to the last card does not complete")

	// Past-the-end index is a navigation failure.
	_, err = s.studySvc.JumpTo(ctx, 3)
	s.assertCode(err, errors.ErrCodeInvalidNavigation)

	view, err := s.studySvc.Current(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(2, view.Progress.Cursor, "failed jump leaves the cursor alone")
}

func (s *StudyServiceSuite) TestPreviousAtStartFails() {
	ctx := context.Background()
	deckID := s.makeDeck("Biology", 2)

	_, err := s.studySvc.Start(ctx, deckID)
	s.Require().NoError(err)

	_, err = s.studySvc.Previous(ctx)
	s.assertCode(err, errors.ErrCodeInvalidNavigation)

	_, err = s.studySvc.Next(ctx)
	s.Require().NoError(err)
	result, err := s.studySvc.Previous(ctx)
	s.Require().NoError(err)
	s.Assert().Equal("question a", result.Card.Question)
}

func (s *StudyServiceSuite) TestResetKeepsSessionActive() {
	ctx := context.Background()
	deckID := s.makeDeck("Music", 3)

	_, err := s.studySvc.Start(ctx, deckID)
	s.Require().NoError(err)
	_, err = s.studySvc.Next(ctx)
	s.Require().NoError(err)

	view, err := s.studySvc.Reset(ctx)
	s.Require().NoError(err)
	s.Assert().Equal("question a", view.Card.Question)
	s.Assert().Equal(0, view.Progress.ReviewedCount)
	s.Assert().True(s.studySvc.HasActiveSession())
}

func (s *StudyServiceSuite) TestStartReplacesLiveSessionSilently() {
	ctx := context.Background()
	first := s.makeDeck("First", 2)
	second := s.makeDeck("Second", 3)

	_, err := s.studySvc.Start(ctx, first)
	s.Require().NoError(err)
	_, err = s.studySvc.Next(ctx)
	s.Require().NoError(err)

	view, err := s.studySvc.Start(ctx, second)
	s.Require().NoError(err)
	s.Assert().Equal(3, view.Progress.TotalCards)

	// The replaced session leaves no record behind.
	records, err := s.recRepo.ListForDeck(ctx, first, 10)
	s.Require().NoError(err)
	s.Assert().Empty(records)
}

func (s *StudyServiceSuite) TestEmptyDeckStartLeavesLiveSessionUntouched() {
	ctx := context.Background()
	full := s.makeDeck("Full", 2)
	empty := s.makeDeck("Vacant", 0)

	_, err := s.studySvc.Start(ctx, full)
	s.Require().NoError(err)

	_, err = s.studySvc.Start(ctx, empty)
	s.assertCode(err, errors.ErrCodeEmptyDeck)

	s.Assert().True(s.studySvc.HasActiveSession())
	view, err := s.studySvc.Current(ctx)
	s.Require().NoError(err)
	s.Assert().Equal(2, view.Progress.TotalCards, "failed start keeps the old session")
}

func (s *StudyServiceSuite) TestSessionSnapshotIgnoresLaterStoreMutation() {
	ctx := context.Background()
	deckID := s.makeDeck("Frozen", 2)

	view, err := s.studySvc.Start(ctx, deckID)
	s.Require().NoError(err)
	cardID := view.Card.ID

	// Mutate and shrink the deck behind the session's back.
	_, err = s.cardSvc.UpdateFlashcard(ctx, cardID, "rewritten", "rewritten")
	s.Require().NoError(err)

	current, err := s.studySvc.Current(ctx)
	s.Require().NoError(err)
	s.Assert().Equal("question a", current.Card.Question)
	s.Assert().Equal(2, current.Progress.TotalCards)
}

func TestStudyServiceSuite(t *testing.T) {
	suite.Run(t, new(StudyServiceSuite))
}
