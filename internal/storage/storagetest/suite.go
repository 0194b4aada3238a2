// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/storage"
)

// StorageSuite runs the storage contract against a backend. Backends embed it
// and set Storage in their SetupTest.
type StorageSuite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

// NewPlayer returns an unsaved, valid player
func NewPlayer(name string, experience int) *model.Player {
	p := &model.Player{
		Name:       name,
		Title:      "Tester",
		Race:       model.RaceElf,
		Profession: model.ProfessionDruid,
		Birthday:   time.Date(2010, time.April, 5, 6, 7, 8, 9_000_000, time.UTC),
		Experience: experience,
	}
	p.ApplyLevel()
	return p
}

func (s *StorageSuite) ctx() context.Context {
	if s.Ctx == nil {
		return context.Background()
	}
	return s.Ctx
}

func (s *StorageSuite) TestSaveAssignsIncreasingIDs() {
	first := NewPlayer("Alice", 10)
	second := NewPlayer("Bob", 20)

	s.Require().NoError(s.Storage.SavePlayer(s.ctx(), first))
	s.Require().NoError(s.Storage.SavePlayer(s.ctx(), second))

	s.Positive(int64(first.ID))
	s.Greater(int64(second.ID), int64(first.ID))
}

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := NewPlayer("Alice", 750)
	player.Banned = true
	s.Require().NoError(s.Storage.SavePlayer(s.ctx(), player))

	retrieved, err := s.Storage.GetPlayer(s.ctx(), player.ID)
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.Name, retrieved.Name)
	s.Equal(player.Title, retrieved.Title)
	s.Equal(player.Race, retrieved.Race)
	s.Equal(player.Profession, retrieved.Profession)
	s.True(player.Birthday.Equal(retrieved.Birthday), "birthday %s != %s", player.Birthday, retrieved.Birthday)
	s.True(retrieved.Banned)
	s.Equal(750, retrieved.Experience)
	s.Equal(3, retrieved.Level)
	s.Equal(250, retrieved.UntilNextLevel)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.Storage.GetPlayer(s.ctx(), 4242)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSaveExistingPlayerReplacesIt() {
	player := NewPlayer("Alice", 10)
	s.Require().NoError(s.Storage.SavePlayer(s.ctx(), player))
	id := player.ID

	player.Name = "Alicia"
	player.Experience = 300
	player.ApplyLevel()
	s.Require().NoError(s.Storage.SavePlayer(s.ctx(), player))
	s.Equal(id, player.ID)

	retrieved, err := s.Storage.GetPlayer(s.ctx(), id)
	s.Require().NoError(err)
	s.Equal("Alicia", retrieved.Name)
	s.Equal(2, retrieved.Level)

	all, err := s.Storage.ListPlayers(s.ctx())
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *StorageSuite) TestReturnedPlayersAreDetached() {
	player := NewPlayer("Alice", 10)
	s.Require().NoError(s.Storage.SavePlayer(s.ctx(), player))

	player.Name = "Mutated"
	retrieved, err := s.Storage.GetPlayer(s.ctx(), player.ID)
	s.Require().NoError(err)
	s.Equal("Alice", retrieved.Name)

	retrieved.Name = "Mutated again"
	again, err := s.Storage.GetPlayer(s.ctx(), player.ID)
	s.Require().NoError(err)
	s.Equal("Alice", again.Name)
}

func (s *StorageSuite) TestListPlayersOrderedByID() {
	for _, name := range []string{"Carol", "Alice", "Bob"} {
		s.Require().NoError(s.Storage.SavePlayer(s.ctx(), NewPlayer(name, 0)))
	}

	players, err := s.Storage.ListPlayers(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal("Carol", players[0].Name)
	s.Equal("Alice", players[1].Name)
	s.Equal("Bob", players[2].Name)
	s.Less(int64(players[0].ID), int64(players[1].ID))
	s.Less(int64(players[1].ID), int64(players[2].ID))
}

func (s *StorageSuite) TestListPlayersEmpty() {
	players, err := s.Storage.ListPlayers(s.ctx())
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestDeletePlayer() {
	keep := NewPlayer("Keep", 0)
	drop := NewPlayer("Drop", 0)
	s.Require().NoError(s.Storage.SavePlayer(s.ctx(), keep))
	s.Require().NoError(s.Storage.SavePlayer(s.ctx(), drop))

	s.Require().NoError(s.Storage.DeletePlayer(s.ctx(), drop.ID))

	_, err := s.Storage.GetPlayer(s.ctx(), drop.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	players, err := s.Storage.ListPlayers(s.ctx())
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(keep.ID, players[0].ID)
}

func (s *StorageSuite) TestDeletedIDsAreNotReused() {
	first := NewPlayer("First", 0)
	s.Require().NoError(s.Storage.SavePlayer(s.ctx(), first))
	s.Require().NoError(s.Storage.DeletePlayer(s.ctx(), first.ID))

	second := NewPlayer("Second", 0)
	s.Require().NoError(s.Storage.SavePlayer(s.ctx(), second))
	s.NotEqual(first.ID, second.ID)
}

func (s *StorageSuite) TestSaveDeletedPlayerIsNotFound() {
	player := NewPlayer("Ghost", 100)
	s.Require().NoError(s.Storage.SavePlayer(s.ctx(), player))
	s.Require().NoError(s.Storage.DeletePlayer(s.ctx(), player.ID))

	// An update racing a delete must not bring the record back
	player.Experience = 200
	player.ApplyLevel()
	err := s.Storage.SavePlayer(s.ctx(), player)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_, err = s.Storage.GetPlayer(s.ctx(), player.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)

	players, err := s.Storage.ListPlayers(s.ctx())
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *StorageSuite) TestSaveUnknownIDIsNotFound() {
	player := NewPlayer("Nobody", 0)
	player.ID = 4242

	s.ErrorIs(s.Storage.SavePlayer(s.ctx(), player), model.ErrPlayerNotFound)

	players, err := s.Storage.ListPlayers(s.ctx())
	s.Require().NoError(err)
	s.Empty(players)
}
