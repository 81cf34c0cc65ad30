package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/KI1208/Anky/internal/models"
	"github.com/KI1208/Anky/internal/repository"
	"github.com/KI1208/Anky/internal/repository/sqlite"
	"github.com/KI1208/Anky/internal/testutil"
)

type DeckRepositorySuite struct {
	suite.Suite
	db       *sql.DB
	repo     repository.DeckRepository
	cardRepo repository.FlashcardRepository
}

func (s *DeckRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewDeckRepository(s.db)
	s.cardRepo = sqlite.NewFlashcardRepository(s.db)
}

func (s *DeckRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *DeckRepositorySuite) insertDeck(id, name string) models.Deck {
	now := time.Now().UTC().Truncate(time.Second)
	deck := models.Deck{ID: id, Name: name, Description: "d", CreatedAt: now, UpdatedAt: now}
	s.Require().NoError(s.repo.Insert(context.Background(), deck))
	return deck
}

func (s *DeckRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	s.insertDeck("deck-1", "Spanish")

	got, err := s.repo.Get(ctx, "deck-1")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("Spanish", got.Name)

	missing, err := s.repo.Get(ctx, "nope")
	s.Require().NoError(err)
	s.Assert().Nil(missing)
}

func (s *DeckRepositorySuite) TestGetByNameIsCaseInsensitive() {
	ctx := context.Background()
	s.insertDeck("deck-1", "Spanish")

	got, err := s.repo.GetByName(ctx, "sPaNiSh")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal("deck-1", got.ID)
}

func (s *DeckRepositorySuite) TestUniqueNameEnforced() {
	ctx := context.Background()
	s.insertDeck("deck-1", "Spanish")

	err := s.repo.Insert(ctx, models.Deck{ID: "deck-2", Name: "spanish", CreatedAt: time.Now(), UpdatedAt: time.Now()})
	s.Assert().Error(err, "duplicate name (case-insensitive) is rejected by the unique index")
}

func (s *DeckRepositorySuite) TestListWithCardCounts() {
	ctx := context.Background()
	s.insertDeck("deck-1", "Spanish")
	s.insertDeck("deck-2", "French")

	now := time.Now()
	for i, id := range []string{"c1", "c2", "c3"} {
		s.Require().NoError(s.cardRepo.Insert(ctx, models.Flashcard{
			ID: id, DeckID: "deck-1", Question: "q", Answer: "a",
			CreatedAt: now.Add(time.Duration(i) * time.Second), UpdatedAt: now,
		}))
	}

	decks, err := s.repo.List(ctx, models.DeckFilter{})
	s.Require().NoError(err)
	s.Require().Len(decks, 2)

	// Sorted by name: French first.
	s.Assert().Equal("French", decks[0].Name)
	s.Assert().Equal(0, decks[0].CardCount)
	s.Assert().Equal("Spanish", decks[1].Name)
	s.Assert().Equal(3, decks[1].CardCount)
}

func (s *DeckRepositorySuite) TestListFilterByName() {
	ctx := context.Background()
	s.insertDeck("deck-1", "Spanish Verbs")
	s.insertDeck("deck-2", "French")

	decks, err := s.repo.List(ctx, models.DeckFilter{Name: "Spanish"})
	s.Require().NoError(err)
	s.Require().Len(decks, 1)
	s.Assert().Equal("deck-1", decks[0].ID)

	count, err := s.repo.Count(ctx, models.DeckFilter{Name: "Spanish"})
	s.Require().NoError(err)
	s.Assert().Equal(1, count)
}

func (s *DeckRepositorySuite) TestUpdate() {
	ctx := context.Background()
	deck := s.insertDeck("deck-1", "Spanish")

	deck.Name = "Spanish Advanced"
	deck.UpdatedAt = time.Now()
	s.Require().NoError(s.repo.Update(ctx, deck))

	got, err := s.repo.Get(ctx, "deck-1")
	s.Require().NoError(err)
	s.Assert().Equal("Spanish Advanced", got.Name)
}

func (s *DeckRepositorySuite) TestDeleteCascadesToCards() {
	ctx := context.Background()
	s.insertDeck("deck-1", "Spanish")
	now := time.Now()
	s.Require().NoError(s.cardRepo.Insert(ctx, models.Flashcard{
		ID: "c1", DeckID: "deck-1", Question: "q", Answer: "a", CreatedAt: now, UpdatedAt: now,
	}))

	s.Require().NoError(s.repo.Delete(ctx, "deck-1"))

	got, err := s.repo.Get(ctx, "deck-1")
	s.Require().NoError(err)
	s.Assert().Nil(got)

	card, err := s.cardRepo.Get(ctx, "c1")
	s.Require().NoError(err)
	s.Assert().Nil(card)
}

func TestDeckRepositorySuite(t *testing.T) {
	suite.Run(t, new(DeckRepositorySuite))
}
