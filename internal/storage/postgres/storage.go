// Package postgres provides a PostgreSQL-backed player storage implementation.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id               BIGSERIAL PRIMARY KEY,
	name             VARCHAR(12)  NOT NULL,
	title            VARCHAR(30)  NOT NULL,
	race             TEXT         NOT NULL,
	profession       TEXT         NOT NULL,
	birthday         TIMESTAMPTZ  NOT NULL,
	banned           BOOLEAN      NOT NULL DEFAULT FALSE,
	experience       INTEGER      NOT NULL,
	level            INTEGER      NOT NULL,
	until_next_level INTEGER      NOT NULL
)`

const selectColumns = `id, name, title, race, profession, birthday, banned, experience, level, until_next_level`

// Config holds database connection settings
type Config struct {
	URL      string
	MinConns int32
	MaxConns int32
}

// DefaultConfig returns pool defaults; URL must still be set
func DefaultConfig() Config {
	return Config{
		MinConns: 1,
		MaxConns: 10,
	}
}

// Storage persists players in PostgreSQL using pgxpool
type Storage struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and ensures the schema exists
func New(ctx context.Context, cfg Config) (*Storage, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Storage{pool: pool}, nil
}

// Close closes the database connection pool
func (s *Storage) Close() error {
	s.pool.Close()
	return nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+selectColumns+` FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	players, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*model.Player, error) {
		return scanPlayer(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	if player.ID == 0 {
		var id int64
		err := s.pool.QueryRow(ctx,
			`INSERT INTO players (name, title, race, profession, birthday, banned, experience, level, until_next_level)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 RETURNING id`,
			player.Name, player.Title, string(player.Race), string(player.Profession),
			player.Birthday.UTC(), player.Banned, player.Experience, player.Level, player.UntilNextLevel,
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert player: %w", err)
		}
		player.ID = model.PlayerID(id)
		return nil
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE players SET
		   name = $2, title = $3, race = $4, profession = $5, birthday = $6,
		   banned = $7, experience = $8, level = $9, until_next_level = $10
		 WHERE id = $1`,
		int64(player.ID), player.Name, player.Title, string(player.Race), string(player.Profession),
		player.Birthday.UTC(), player.Banned, player.Experience, player.Level, player.UntilNextLevel,
	)
	if err != nil {
		return fmt.Errorf("update player %d: %w", player.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+selectColumns+` FROM players WHERE id = $1`, int64(id))
	p, err := scanPlayer(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	return p, err
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM players WHERE id = $1`, int64(id)); err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	return nil
}

func scanPlayer(row pgx.Row) (*model.Player, error) {
	var (
		p          model.Player
		id         int64
		race, prof string
		birthday   time.Time
	)
	err := row.Scan(&id, &p.Name, &p.Title, &race, &prof, &birthday, &p.Banned, &p.Experience, &p.Level, &p.UntilNextLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	p.ID = model.PlayerID(id)
	p.Race = model.Race(race)
	p.Profession = model.Profession(prof)
	p.Birthday = birthday.UTC()
	return &p, nil
}
