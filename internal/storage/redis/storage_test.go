package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/playerregistry/internal/storage/storagetest"
)

type StorageSuite struct {
	storagetest.StorageSuite
	mini    *miniredis.Miniredis
	storage *Storage
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.Storage = s.storage
	s.Ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestKeyLayout() {
	player := storagetest.NewPlayer("Alice", 0)
	s.Require().NoError(s.storage.SavePlayer(s.Ctx, player))

	s.True(s.mini.Exists("players:player:1"))
	s.True(s.mini.Exists("players:idx:ids"))

	seq, err := s.mini.Get("players:seq")
	s.Require().NoError(err)
	s.Equal("1", seq)

	members, err := s.mini.ZMembers("players:idx:ids")
	s.Require().NoError(err)
	s.Equal([]string{"players:player:1"}, members)
}

func (s *StorageSuite) TestDeleteRemovesIndexEntry() {
	player := storagetest.NewPlayer("Alice", 0)
	s.Require().NoError(s.storage.SavePlayer(s.Ctx, player))
	s.Require().NoError(s.storage.DeletePlayer(s.Ctx, player.ID))

	s.False(s.mini.Exists("players:player:1"))
	s.False(s.mini.Exists("players:idx:ids"))
}

func (s *StorageSuite) TestListSkipsKeysDeletedOutsideTheStore() {
	first := storagetest.NewPlayer("First", 0)
	second := storagetest.NewPlayer("Second", 0)
	s.Require().NoError(s.storage.SavePlayer(s.Ctx, first))
	s.Require().NoError(s.storage.SavePlayer(s.Ctx, second))

	s.mini.Del("players:player:1")

	players, err := s.storage.ListPlayers(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal("Second", players[0].Name)
}

func (s *StorageSuite) TestCustomKeyPrefix() {
	cfg := DefaultConfig()
	cfg.KeyPrefix = "tenant-a"
	client := redis.NewClient(&redis.Options{Addr: s.mini.Addr()})
	store := NewWithClient(client, cfg)
	defer func() { _ = store.Close() }()

	s.Require().NoError(store.SavePlayer(s.Ctx, storagetest.NewPlayer("Alice", 0)))
	s.True(s.mini.Exists("tenant-a:player:1"))
}

func (s *StorageSuite) TestNewRejectsBadURL() {
	cfg := DefaultConfig()
	cfg.URL = "not a url"
	_, err := New(cfg)
	s.Error(err)
}

func (s *StorageSuite) TestNewConnects() {
	cfg := DefaultConfig()
	cfg.URL = "redis://" + s.mini.Addr()
	store, err := New(cfg)
	s.Require().NoError(err)
	s.NoError(store.Close())
}
