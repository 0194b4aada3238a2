package model

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func validPatch() PlayerPatch {
	return PlayerPatch{
		Name:       ptr("Aragorn"),
		Title:      ptr("King of Gondor"),
		Race:       ptr(RaceHuman),
		Profession: ptr(ProfessionWarrior),
		Birthday:   ptr(time.Date(2010, time.March, 1, 0, 0, 0, 0, time.UTC)),
		Experience: ptr(750),
	}
}

func TestValidateNewAcceptsValidPatch(t *testing.T) {
	assert.NoError(t, ValidateNew(validPatch()))
}

func TestValidateNewRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *PlayerPatch)
		field  string
	}{
		{"missing name", func(p *PlayerPatch) { p.Name = nil }, "name"},
		{"empty name", func(p *PlayerPatch) { p.Name = ptr("") }, "name"},
		{"name of 13 characters", func(p *PlayerPatch) { p.Name = ptr(strings.Repeat("a", 13)) }, "name"},
		{"missing title", func(p *PlayerPatch) { p.Title = nil }, "title"},
		{"title of 31 characters", func(p *PlayerPatch) { p.Title = ptr(strings.Repeat("t", 31)) }, "title"},
		{"missing race", func(p *PlayerPatch) { p.Race = nil }, "race"},
		{"unknown race", func(p *PlayerPatch) { p.Race = ptr(Race("GOBLIN")) }, "race"},
		{"missing profession", func(p *PlayerPatch) { p.Profession = nil }, "profession"},
		{"unknown profession", func(p *PlayerPatch) { p.Profession = ptr(Profession("BARD")) }, "profession"},
		{"missing birthday", func(p *PlayerPatch) { p.Birthday = nil }, "birthday"},
		{"birthday before 2000", func(p *PlayerPatch) { p.Birthday = ptr(MinBirthday.Add(-time.Millisecond)) }, "birthday"},
		{"birthday at 3001", func(p *PlayerPatch) { p.Birthday = ptr(MaxBirthday) }, "birthday"},
		{"negative epoch birthday", func(p *PlayerPatch) { p.Birthday = ptr(time.UnixMilli(-1)) }, "birthday"},
		{"missing experience", func(p *PlayerPatch) { p.Experience = nil }, "experience"},
		{"negative experience", func(p *PlayerPatch) { p.Experience = ptr(-1) }, "experience"},
		{"experience above maximum", func(p *PlayerPatch) { p.Experience = ptr(MaxExperience + 1) }, "experience"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatch()
			tt.mutate(&p)

			err := ValidateNew(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPlayer)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidateNewBoundaries(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *PlayerPatch)
	}{
		{"name of exactly 12 characters", func(p *PlayerPatch) { p.Name = ptr(strings.Repeat("a", 12)) }},
		{"multibyte name of 12 characters", func(p *PlayerPatch) { p.Name = ptr(strings.Repeat("ж", 12)) }},
		{"empty title", func(p *PlayerPatch) { p.Title = ptr("") }},
		{"title of exactly 30 characters", func(p *PlayerPatch) { p.Title = ptr(strings.Repeat("t", 30)) }},
		{"birthday at 2000-01-01", func(p *PlayerPatch) { p.Birthday = ptr(MinBirthday) }},
		{"birthday just before 3001", func(p *PlayerPatch) { p.Birthday = ptr(MaxBirthday.Add(-time.Millisecond)) }},
		{"zero experience", func(p *PlayerPatch) { p.Experience = ptr(0) }},
		{"maximum experience", func(p *PlayerPatch) { p.Experience = ptr(MaxExperience) }},
		{"banned set", func(p *PlayerPatch) { p.Banned = ptr(true) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatch()
			tt.mutate(&p)
			assert.NoError(t, ValidateNew(p))
		})
	}
}

func TestValidatePatchChecksOnlyPresentFields(t *testing.T) {
	assert.NoError(t, ValidatePatch(PlayerPatch{}))
	assert.NoError(t, ValidatePatch(PlayerPatch{Experience: ptr(42)}))
	assert.ErrorIs(t, ValidatePatch(PlayerPatch{Name: ptr("")}), ErrInvalidPlayer)
	assert.ErrorIs(t, ValidatePatch(PlayerPatch{Experience: ptr(-3)}), ErrInvalidPlayer)
}

func TestParsePlayerID(t *testing.T) {
	for _, bad := range []string{"0", "-5", "abc", "", "1.5", "99999999999999999999"} {
		_, err := ParsePlayerID(bad)
		assert.ErrorIs(t, err, ErrInvalidPlayerID, "input %q", bad)
	}

	id, err := ParsePlayerID("1")
	require.NoError(t, err)
	assert.Equal(t, PlayerID(1), id)
}
