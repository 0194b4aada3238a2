// Package player orchestrates the player record operations: validation, level
// derivation, persistence and the listing pipeline.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mcoot/playerregistry/internal/metrics"
	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/query"
	"github.com/mcoot/playerregistry/internal/storage"
)

const tracerName = "github.com/mcoot/playerregistry/internal/services/player"

// Service handles player CRUD and listing
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
	tracer  trace.Tracer
}

// New creates a new player Service. Spans go to tp, or to the global
// provider when tp is nil.
func New(storage storage.Storage, logger *slog.Logger, tp trace.TracerProvider) *Service {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Service{
		storage: storage,
		logger:  logger,
		tracer:  tp.Tracer(tracerName),
	}
}

// List returns one page of the players matching c, sorted by page.Order
func (s *Service) List(ctx context.Context, c query.Criteria, page query.Page) ([]*model.Player, error) {
	ctx, span := s.tracer.Start(ctx, "player.List", trace.WithAttributes(
		attribute.String("page.order", string(page.Order)),
		attribute.Int("page.number", page.Number),
		attribute.Int("page.size", page.Size),
	))
	defer span.End()

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return nil, fail(span, err)
	}

	players, err := query.Apply(snapshot, c, page)
	if err != nil {
		return nil, fail(span, err)
	}
	span.SetAttributes(attribute.Int("result.count", len(players)))
	return players, nil
}

// Count returns how many players match c
func (s *Service) Count(ctx context.Context, c query.Criteria) (int, error) {
	ctx, span := s.tracer.Start(ctx, "player.Count")
	defer span.End()

	snapshot, err := s.snapshot(ctx)
	if err != nil {
		return 0, fail(span, err)
	}
	count := len(query.Filter(snapshot, c))
	span.SetAttributes(attribute.Int("result.count", count))
	return count, nil
}

// Create validates a new player body, derives its level and stores it
func (s *Service) Create(ctx context.Context, patch model.PlayerPatch) (*model.Player, error) {
	ctx, span := s.tracer.Start(ctx, "player.Create")
	defer span.End()

	if err := ValidateNew(patch); err != nil {
		return nil, fail(span, err)
	}

	player := model.NewPlayer(patch)
	if err := s.storage.SavePlayer(ctx, &player); err != nil {
		return nil, fail(span, fmt.Errorf("save player: %w", err))
	}

	metrics.PlayerMutationsTotal.WithLabelValues(metrics.OpCreate).Inc()
	span.SetAttributes(attribute.Int64("player.id", int64(player.ID)))
	s.logger.InfoContext(ctx, "player created",
		slog.Int64("player_id", int64(player.ID)),
		slog.String("name", player.Name),
	)
	return &player, nil
}

// Get returns the player with the given id
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	ctx, span := s.tracer.Start(ctx, "player.Get", trace.WithAttributes(attribute.Int64("player.id", int64(id))))
	defer span.End()

	player, err := s.lookup(ctx, id)
	if err != nil {
		return nil, fail(span, err)
	}
	return player, nil
}

// Update merges the present fields of patch into the stored player and
// re-derives its level
func (s *Service) Update(ctx context.Context, id model.PlayerID, patch model.PlayerPatch) (*model.Player, error) {
	ctx, span := s.tracer.Start(ctx, "player.Update", trace.WithAttributes(attribute.Int64("player.id", int64(id))))
	defer span.End()

	stored, err := s.lookup(ctx, id)
	if err != nil {
		return nil, fail(span, err)
	}

	if err := ValidatePatch(patch); err != nil {
		return nil, fail(span, err)
	}

	updated := model.Merge(*stored, patch)
	updated.ApplyLevel()

	if err := s.storage.SavePlayer(ctx, &updated); err != nil {
		return nil, fail(span, fmt.Errorf("save player %d: %w", id, err))
	}

	metrics.PlayerMutationsTotal.WithLabelValues(metrics.OpUpdate).Inc()
	s.logger.InfoContext(ctx, "player updated", slog.Int64("player_id", int64(id)))
	return &updated, nil
}

// Delete removes the player with the given id
func (s *Service) Delete(ctx context.Context, id model.PlayerID) error {
	ctx, span := s.tracer.Start(ctx, "player.Delete", trace.WithAttributes(attribute.Int64("player.id", int64(id))))
	defer span.End()

	if _, err := s.lookup(ctx, id); err != nil {
		return fail(span, err)
	}

	if err := s.storage.DeletePlayer(ctx, id); err != nil {
		return fail(span, fmt.Errorf("delete player %d: %w", id, err))
	}

	metrics.PlayerMutationsTotal.WithLabelValues(metrics.OpDelete).Inc()
	s.logger.InfoContext(ctx, "player deleted", slog.Int64("player_id", int64(id)))
	return nil
}

// ValidateNew wraps model.ValidateNew, counting rejections per field
func ValidateNew(patch model.PlayerPatch) error {
	return countValidation(model.ValidateNew(patch))
}

// ValidatePatch wraps model.ValidatePatch, counting rejections per field
func ValidatePatch(patch model.PlayerPatch) error {
	return countValidation(model.ValidatePatch(patch))
}

func countValidation(err error) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		metrics.PlayerValidationFailuresTotal.WithLabelValues(verr.Field).Inc()
	}
	return err
}

// lookup fetches a player, keeping "absent" distinct from store failures
func (s *Service) lookup(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	player, err := s.storage.GetPlayer(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlayerNotFound) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "player lookup failed",
			slog.Int64("player_id", int64(id)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("get player %d: %w", id, err)
	}
	return player, nil
}

// snapshot fetches every stored player for one listing request
func (s *Service) snapshot(ctx context.Context) ([]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "player snapshot failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("list players: %w", err)
	}
	metrics.StoreSnapshotSize.Observe(float64(len(players)))
	return players, nil
}

func fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
