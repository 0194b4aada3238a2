package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	keys   keys
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultConfig().KeyPrefix
	}
	return &Storage{
		client: client,
		keys:   keys{prefix: prefix},
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	playerKeys, err := s.client.ZRange(ctx, s.keys.index(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list player index: %w", err)
	}

	if len(playerKeys) == 0 {
		return []*model.Player{}, nil
	}

	values, err := s.client.MGet(ctx, playerKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch players: %w", err)
	}

	players := make([]*model.Player, 0, len(values))
	for i, val := range values {
		if val == nil {
			continue // Deleted between ZRANGE and MGET
		}
		raw, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected value type %T at %s", val, playerKeys[i])
		}
		var player model.Player
		if err := json.Unmarshal([]byte(raw), &player); err != nil {
			return nil, fmt.Errorf("decode %s: %w", playerKeys[i], err)
		}
		players = append(players, &player)
	}

	return players, nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	if player.ID != 0 {
		return s.replacePlayer(ctx, player)
	}

	id, err := s.client.Incr(ctx, s.keys.sequence()).Result()
	if err != nil {
		return fmt.Errorf("allocate player id: %w", err)
	}
	player.ID = model.PlayerID(id)

	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := s.keys.player(player.ID)

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.ZAdd(ctx, s.keys.index(), redis.Z{Score: float64(player.ID), Member: key})
	_, err = pipe.Exec(ctx)
	return err
}

// replacePlayer overwrites an existing record only; the index entry is
// already present
func (s *Storage) replacePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}
	ok, err := s.client.SetXX(ctx, s.keys.player(player.ID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("update player %d: %w", player.ID, err)
	}
	if !ok {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, s.keys.player(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	key := s.keys.player(id)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.ZRem(ctx, s.keys.index(), key)
	_, err := pipe.Exec(ctx)
	return err
}
