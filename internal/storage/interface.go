package storage

import (
	"context"

	"github.com/mcoot/playerregistry/internal/model"
)

// Storage defines the persistence collaborator for player records
type Storage interface {
	// ListPlayers returns a snapshot of every stored player ordered by id
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	// SavePlayer inserts a player when its ID is zero, assigning the new ID
	// to player.ID, and replaces the stored record otherwise. Replacing a
	// record that no longer exists returns model.ErrPlayerNotFound.
	SavePlayer(ctx context.Context, player *model.Player) error
	// GetPlayer returns model.ErrPlayerNotFound when no record has the id
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error
}
