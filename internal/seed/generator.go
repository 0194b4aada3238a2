// Package seed generates plausible, valid player records for demos and
// load testing.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/mcoot/playerregistry/internal/dependencies/clock"
	"github.com/mcoot/playerregistry/internal/model"
)

// MaxSeedExperience caps generated experience so levels stay in a readable range
const MaxSeedExperience = 200_000

// Creator is anything that can persist a new player, such as the player
// service or the CLI's HTTP client
type Creator interface {
	Create(ctx context.Context, patch model.PlayerPatch) (*model.Player, error)
}

// Generator produces random valid player bodies
type Generator struct {
	faker *gofakeit.Faker
	clock clock.Clock
	seed  uint64
}

// New creates a generator. The same seed yields the same sequence as long as
// the clock reports the same time. A zero seed picks a random one.
func New(clk clock.Clock, seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(clk.Now().UnixNano())
	}
	return &Generator{
		faker: gofakeit.New(seed),
		clock: clk,
		seed:  seed,
	}
}

// Seed returns the seed the generator was created with
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Patch returns one complete, valid create body
func (g *Generator) Patch() model.PlayerPatch {
	name := truncate(g.faker.FirstName(), model.MaxNameLength)
	if name == "" {
		name = "Player"
	}

	title := ""
	if g.faker.Number(0, 4) > 0 {
		title = truncate(g.faker.JobDescriptor()+" "+g.faker.JobTitle(), model.MaxTitleLength)
	}

	race := model.Races[g.faker.Number(0, len(model.Races)-1)]
	profession := model.Professions[g.faker.Number(0, len(model.Professions)-1)]

	latest := g.clock.Now()
	if !latest.Before(model.MaxBirthday) {
		latest = model.MaxBirthday.Add(-time.Millisecond)
	}
	if latest.Before(model.MinBirthday) {
		latest = model.MinBirthday
	}
	ms := g.faker.Number(int(model.MinBirthday.UnixMilli()), int(latest.UnixMilli()))
	birthday := time.UnixMilli(int64(ms)).UTC()

	banned := g.faker.Number(0, 9) == 0
	experience := g.faker.Number(0, MaxSeedExperience)

	return model.PlayerPatch{
		Name:       &name,
		Title:      &title,
		Race:       &race,
		Profession: &profession,
		Birthday:   &birthday,
		Banned:     &banned,
		Experience: &experience,
	}
}

// Patches returns n create bodies
func (g *Generator) Patches(n int) []model.PlayerPatch {
	out := make([]model.PlayerPatch, n)
	for i := range out {
		out[i] = g.Patch()
	}
	return out
}

// Populate creates n generated players through c and returns how many were
// created before the first failure
func Populate(ctx context.Context, c Creator, g *Generator, n int) (int, error) {
	for i := 0; i < n; i++ {
		if _, err := c.Create(ctx, g.Patch()); err != nil {
			return i, fmt.Errorf("seed player %d: %w", i+1, err)
		}
	}
	return n, nil
}

// truncate cuts s to at most n runes and trims trailing spaces
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
