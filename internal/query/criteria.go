// Package query implements the in-memory filter, sort and paginate pipeline
// used by the player listing endpoints.
package query

import (
	"errors"
	"strings"
	"time"

	"github.com/mcoot/playerregistry/internal/model"
)

// ErrInvalidQuery is wrapped by every error produced while building a query
var ErrInvalidQuery = errors.New("invalid query")

// Criteria groups the optional filter predicates of a list or count request.
// A nil field imposes no constraint.
type Criteria struct {
	Name          *string
	Title         *string
	Race          *model.Race
	Profession    *model.Profession
	After         *time.Time
	Before        *time.Time
	Banned        *bool
	MinExperience *int
	MaxExperience *int
	MinLevel      *int
	MaxLevel      *int
}

// Matches reports whether p satisfies every predicate in c
func (c Criteria) Matches(p *model.Player) bool {
	if c.Name != nil && *c.Name != "" && !strings.Contains(p.Name, *c.Name) {
		return false
	}
	if c.Title != nil && *c.Title != "" && !strings.Contains(p.Title, *c.Title) {
		return false
	}
	if c.Race != nil && p.Race != *c.Race {
		return false
	}
	if c.Profession != nil && p.Profession != *c.Profession {
		return false
	}
	// after is "not earlier than", before is "not later than"
	if c.After != nil && p.Birthday.Before(*c.After) {
		return false
	}
	if c.Before != nil && p.Birthday.After(*c.Before) {
		return false
	}
	if c.Banned != nil && p.Banned != *c.Banned {
		return false
	}
	if c.MinExperience != nil && p.Experience < *c.MinExperience {
		return false
	}
	if c.MaxExperience != nil && p.Experience > *c.MaxExperience {
		return false
	}
	if c.MinLevel != nil && p.Level < *c.MinLevel {
		return false
	}
	if c.MaxLevel != nil && p.Level > *c.MaxLevel {
		return false
	}
	return true
}

// Filter returns the players matching c, preserving their relative order.
// The input slice is not modified.
func Filter(players []*model.Player, c Criteria) []*model.Player {
	matched := make([]*model.Player, 0, len(players))
	for _, p := range players {
		if c.Matches(p) {
			matched = append(matched, p)
		}
	}
	return matched
}
