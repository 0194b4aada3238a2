// Package sqlite provides a SQLite-backed player storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS players (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	name             TEXT    NOT NULL,
	title            TEXT    NOT NULL,
	race             TEXT    NOT NULL,
	profession       TEXT    NOT NULL,
	birthday         INTEGER NOT NULL,
	banned           INTEGER NOT NULL DEFAULT 0,
	experience       INTEGER NOT NULL,
	level            INTEGER NOT NULL,
	until_next_level INTEGER NOT NULL
)`

const selectColumns = `id, name, title, race, profession, birthday, banned, experience, level, until_next_level`

// Storage persists players in SQLite
type Storage struct {
	db *sql.DB
}

// Open opens (creating if needed) a SQLite database at path and ensures the schema exists.
func Open(path string) (*Storage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the SQLite handle
func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM players ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer func() { _ = rows.Close() }()

	players := []*model.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	if player.ID == 0 {
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO players (name, title, race, profession, birthday, banned, experience, level, until_next_level)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			player.Name, player.Title, string(player.Race), string(player.Profession),
			toMillis(player.Birthday), player.Banned, player.Experience, player.Level, player.UntilNextLevel,
		)
		if err != nil {
			return fmt.Errorf("insert player: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert player: %w", err)
		}
		player.ID = model.PlayerID(id)
		return nil
	}

	res, err := s.db.ExecContext(ctx,
		`UPDATE players SET
		   name = ?, title = ?, race = ?, profession = ?, birthday = ?,
		   banned = ?, experience = ?, level = ?, until_next_level = ?
		 WHERE id = ?`,
		player.Name, player.Title, string(player.Race), string(player.Profession),
		toMillis(player.Birthday), player.Banned, player.Experience, player.Level, player.UntilNextLevel,
		int64(player.ID),
	)
	if err != nil {
		return fmt.Errorf("update player %d: %w", player.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player %d: %w", player.ID, err)
	}
	if n == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM players WHERE id = ?`, int64(id))
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrPlayerNotFound
	}
	return p, err
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM players WHERE id = ?`, int64(id)); err != nil {
		return fmt.Errorf("delete player %d: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (*model.Player, error) {
	var (
		p          model.Player
		id         int64
		race, prof string
		birthday   int64
	)
	err := row.Scan(&id, &p.Name, &p.Title, &race, &prof, &birthday, &p.Banned, &p.Experience, &p.Level, &p.UntilNextLevel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	p.ID = model.PlayerID(id)
	p.Race = model.Race(race)
	p.Profession = model.Profession(prof)
	p.Birthday = fromMillis(birthday)
	return &p, nil
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}
