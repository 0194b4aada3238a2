package player

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/query"
	"github.com/mcoot/playerregistry/internal/storage/memory"
	"github.com/mcoot/playerregistry/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage, testutil.NopLogger(), nil)
	s.ctx = context.Background()
}

func ptr[T any](v T) *T {
	return &v
}

func newPatch(name string, experience int) model.PlayerPatch {
	return model.PlayerPatch{
		Name:       ptr(name),
		Title:      ptr("Adventurer"),
		Race:       ptr(model.RaceHuman),
		Profession: ptr(model.ProfessionWarrior),
		Birthday:   ptr(time.Date(2012, time.July, 4, 0, 0, 0, 0, time.UTC)),
		Experience: ptr(experience),
	}
}

func (s *ServiceSuite) createPlayers(n int) []*model.Player {
	players := make([]*model.Player, n)
	for i := range n {
		p, err := s.service.Create(s.ctx, newPatch("Player"+string(rune('A'+i)), i*100))
		s.Require().NoError(err)
		players[i] = p
	}
	return players
}

// Create tests

func (s *ServiceSuite) TestCreateDerivesLevelAndDefaultsBanned() {
	player, err := s.service.Create(s.ctx, newPatch("Aragorn", 750))
	s.Require().NoError(err)

	s.Equal(model.PlayerID(1), player.ID)
	s.False(player.Banned)
	s.Equal(3, player.Level)
	s.Equal(250, player.UntilNextLevel)

	stored, err := s.storage.GetPlayer(s.ctx, player.ID)
	s.Require().NoError(err)
	s.Equal(*player, *stored)
}

func (s *ServiceSuite) TestCreateKeepsExplicitBanned() {
	patch := newPatch("Boromir", 0)
	patch.Banned = ptr(true)

	player, err := s.service.Create(s.ctx, patch)
	s.Require().NoError(err)
	s.True(player.Banned)
}

func (s *ServiceSuite) TestCreateRejectsInvalidPlayer() {
	patch := newPatch(strings.Repeat("x", 13), 0)

	_, err := s.service.Create(s.ctx, patch)
	s.ErrorIs(err, model.ErrInvalidPlayer)

	players, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(players)
}

// Get tests

func (s *ServiceSuite) TestGet() {
	created := s.createPlayers(2)

	player, err := s.service.Get(s.ctx, created[1].ID)
	s.Require().NoError(err)
	s.Equal("PlayerB", player.Name)
}

func (s *ServiceSuite) TestGetNotFound() {
	_, err := s.service.Get(s.ctx, 99)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Update tests

func (s *ServiceSuite) TestUpdateExperienceOnly() {
	created, err := s.service.Create(s.ctx, newPatch("Faramir", 0))
	s.Require().NoError(err)

	updated, err := s.service.Update(s.ctx, created.ID, model.PlayerPatch{Experience: ptr(750)})
	s.Require().NoError(err)

	s.Equal(created.ID, updated.ID)
	s.Equal(created.Name, updated.Name)
	s.Equal(created.Title, updated.Title)
	s.Equal(created.Race, updated.Race)
	s.Equal(created.Profession, updated.Profession)
	s.Equal(created.Birthday, updated.Birthday)
	s.Equal(created.Banned, updated.Banned)
	s.Equal(3, updated.Level)
	s.Equal(250, updated.UntilNextLevel)

	stored, err := s.storage.GetPlayer(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(750, stored.Experience)
	s.Equal(3, stored.Level)
}

func (s *ServiceSuite) TestUpdateEmptyPatchKeepsRecord() {
	created, err := s.service.Create(s.ctx, newPatch("Eowyn", 300))
	s.Require().NoError(err)

	updated, err := s.service.Update(s.ctx, created.ID, model.PlayerPatch{})
	s.Require().NoError(err)
	s.Equal(*created, *updated)
}

func (s *ServiceSuite) TestUpdateNotFound() {
	_, err := s.service.Update(s.ctx, 5, model.PlayerPatch{Experience: ptr(1)})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestUpdateRejectsInvalidField() {
	created, err := s.service.Create(s.ctx, newPatch("Eomer", 300))
	s.Require().NoError(err)

	_, err = s.service.Update(s.ctx, created.ID, model.PlayerPatch{Experience: ptr(model.MaxExperience + 1)})
	s.ErrorIs(err, model.ErrInvalidPlayer)

	stored, err := s.storage.GetPlayer(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(300, stored.Experience)
}

// Delete tests

func (s *ServiceSuite) TestDelete() {
	created := s.createPlayers(1)

	s.Require().NoError(s.service.Delete(s.ctx, created[0].ID))

	_, err := s.service.Get(s.ctx, created[0].ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestDeleteNotFound() {
	s.ErrorIs(s.service.Delete(s.ctx, 1), model.ErrPlayerNotFound)
}

// Listing tests

func (s *ServiceSuite) TestListDefaultPage() {
	s.createPlayers(5)

	players, err := s.service.List(s.ctx, query.Criteria{}, query.DefaultPage())
	s.Require().NoError(err)
	s.Require().Len(players, 3)
	s.Equal(model.PlayerID(1), players[0].ID)
	s.Equal(model.PlayerID(3), players[2].ID)
}

func (s *ServiceSuite) TestListTenPlayersLastPages() {
	s.createPlayers(10)
	page := query.Page{Order: query.OrderID, Number: 3, Size: 3}

	players, err := s.service.List(s.ctx, query.Criteria{}, page)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(model.PlayerID(10), players[0].ID)

	page.Number = 4
	players, err = s.service.List(s.ctx, query.Criteria{}, page)
	s.Require().NoError(err)
	s.Empty(players)
}

func (s *ServiceSuite) TestListFiltersAndSorts() {
	s.createPlayers(6) // experience 0,100,...,500
	c := query.Criteria{MinExperience: ptr(200)}
	page := query.Page{Order: query.OrderName, Number: 0, Size: 10}

	players, err := s.service.List(s.ctx, c, page)
	s.Require().NoError(err)
	s.Require().Len(players, 4)
	s.Equal("PlayerC", players[0].Name)
	s.Equal("PlayerF", players[3].Name)
}

func (s *ServiceSuite) TestListRejectsInvalidPage() {
	_, err := s.service.List(s.ctx, query.Criteria{}, query.Page{Order: query.OrderID, Number: -1, Size: 3})
	s.ErrorIs(err, query.ErrInvalidQuery)
}

func (s *ServiceSuite) TestCount() {
	s.createPlayers(6)

	count, err := s.service.Count(s.ctx, query.Criteria{})
	s.Require().NoError(err)
	s.Equal(6, count)

	count, err = s.service.Count(s.ctx, query.Criteria{MaxLevel: ptr(1)})
	s.Require().NoError(err)
	s.Equal(3, count) // experience 0, 100, 200
}

// Store failure tests

var errStoreDown = errors.New("store down")

type brokenStorage struct{}

func (brokenStorage) ListPlayers(context.Context) ([]*model.Player, error) {
	return nil, errStoreDown
}

func (brokenStorage) SavePlayer(context.Context, *model.Player) error {
	return errStoreDown
}

func (brokenStorage) GetPlayer(context.Context, model.PlayerID) (*model.Player, error) {
	return nil, errStoreDown
}

func (brokenStorage) DeletePlayer(context.Context, model.PlayerID) error {
	return errStoreDown
}

// deletingStorage removes each player right after handing it out
type deletingStorage struct {
	*memory.Storage
}

func (d deletingStorage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	player, err := d.Storage.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}
	return player, d.Storage.DeletePlayer(ctx, id)
}

func (s *ServiceSuite) TestUpdateAfterConcurrentDeleteIsNotFound() {
	created := s.createPlayers(1)[0]
	service := New(deletingStorage{s.storage}, testutil.NopLogger(), nil)

	_, err := service.Update(s.ctx, created.ID, model.PlayerPatch{Experience: ptr(900)})
	s.ErrorIs(err, model.ErrPlayerNotFound)

	_, err = s.storage.GetPlayer(s.ctx, created.ID)
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ServiceSuite) TestStoreFailuresAreNotNotFound() {
	service := New(brokenStorage{}, testutil.NopLogger(), nil)

	_, err := service.Get(s.ctx, 1)
	s.ErrorIs(err, errStoreDown)
	s.NotErrorIs(err, model.ErrPlayerNotFound)

	_, err = service.List(s.ctx, query.Criteria{}, query.DefaultPage())
	s.ErrorIs(err, errStoreDown)

	_, err = service.Count(s.ctx, query.Criteria{})
	s.ErrorIs(err, errStoreDown)

	_, err = service.Create(s.ctx, newPatch("Saruman", 0))
	s.ErrorIs(err, errStoreDown)

	s.ErrorIs(service.Delete(s.ctx, 1), errStoreDown)
}

// Tracing tests

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func (s *ServiceSuite) TestSpansRecordOutcome() {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	service := New(s.storage, testutil.NopLogger(), tp)

	s.createPlayers(2)

	_, err := service.Update(s.ctx, 42, newPatch("Gollum", 0))
	s.Require().ErrorIs(err, model.ErrPlayerNotFound)

	players, err := service.List(s.ctx, query.Criteria{}, query.DefaultPage())
	s.Require().NoError(err)
	s.Require().Len(players, 2)

	ended := recorder.Ended()
	s.Require().Len(ended, 2)

	update := ended[0]
	s.Equal("player.Update", update.Name())
	s.Equal(codes.Error, update.Status().Code)
	id, ok := spanAttr(update, "player.id")
	s.Require().True(ok)
	s.Equal(int64(42), id.AsInt64())
	s.NotEmpty(update.Events(), "error should be recorded as an event")

	list := ended[1]
	s.Equal("player.List", list.Name())
	s.Equal(codes.Unset, list.Status().Code)
	count, ok := spanAttr(list, "result.count")
	s.Require().True(ok)
	s.Equal(int64(2), count.AsInt64())
}
