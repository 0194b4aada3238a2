package redis

import (
	"fmt"

	"github.com/mcoot/playerregistry/internal/model"
)

// keys builds the Redis key layout under a prefix
type keys struct {
	prefix string
}

// player returns the key holding a Player as JSON
func (k keys) player(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%d", k.prefix, id)
}

// sequence returns the counter INCR'd to allocate player ids
func (k keys) sequence() string {
	return fmt.Sprintf("%s:seq", k.prefix)
}

// index returns the sorted set of player keys scored by id
func (k keys) index() string {
	return fmt.Sprintf("%s:idx:ids", k.prefix)
}
