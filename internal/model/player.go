package model

import (
	"strings"
	"time"
)

// PlayerID uniquely identifies a player record. Zero means not yet stored.
type PlayerID int64

// Race is the fantasy race of a player
type Race string

const (
	RaceHuman  Race = "HUMAN"
	RaceDwarf  Race = "DWARF"
	RaceElf    Race = "ELF"
	RaceGiant  Race = "GIANT"
	RaceOrc    Race = "ORC"
	RaceTroll  Race = "TROLL"
	RaceHobbit Race = "HOBBIT"
)

// Races lists every known race in declaration order
var Races = []Race{RaceHuman, RaceDwarf, RaceElf, RaceGiant, RaceOrc, RaceTroll, RaceHobbit}

// Valid reports whether r is a known race
func (r Race) Valid() bool {
	for _, known := range Races {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRace parses a race name case-insensitively
func ParseRace(s string) (Race, bool) {
	r := Race(strings.ToUpper(strings.TrimSpace(s)))
	return r, r.Valid()
}

// Profession is the class of a player
type Profession string

const (
	ProfessionWarrior  Profession = "WARRIOR"
	ProfessionRogue    Profession = "ROGUE"
	ProfessionSorcerer Profession = "SORCERER"
	ProfessionCleric   Profession = "CLERIC"
	ProfessionPaladin  Profession = "PALADIN"
	ProfessionNazgul   Profession = "NAZGUL"
	ProfessionWarlock  Profession = "WARLOCK"
	ProfessionDruid    Profession = "DRUID"
)

// Professions lists every known profession in declaration order
var Professions = []Profession{
	ProfessionWarrior, ProfessionRogue, ProfessionSorcerer, ProfessionCleric,
	ProfessionPaladin, ProfessionNazgul, ProfessionWarlock, ProfessionDruid,
}

// Valid reports whether p is a known profession
func (p Profession) Valid() bool {
	for _, known := range Professions {
		if p == known {
			return true
		}
	}
	return false
}

// ParseProfession parses a profession name case-insensitively
func ParseProfession(s string) (Profession, bool) {
	p := Profession(strings.ToUpper(strings.TrimSpace(s)))
	return p, p.Valid()
}

// Player is a stored player record.
// Level and UntilNextLevel are derived from Experience and never set directly.
type Player struct {
	ID             PlayerID
	Name           string
	Title          string
	Race           Race
	Profession     Profession
	Birthday       time.Time
	Banned         bool
	Experience     int
	Level          int
	UntilNextLevel int
}

// PlayerPatch carries an incoming create or update body.
// Nil fields are absent and leave the stored value untouched on update.
type PlayerPatch struct {
	Name       *string
	Title      *string
	Race       *Race
	Profession *Profession
	Birthday   *time.Time
	Banned     *bool
	Experience *int
}

// NewPlayer builds an unsaved player from a validated patch, deriving level fields
// and defaulting Banned to false.
func NewPlayer(p PlayerPatch) Player {
	player := Merge(Player{}, p)
	player.ApplyLevel()
	return player
}

// Merge returns stored with every present patch field overwritten.
// Derived fields are not recomputed; call ApplyLevel afterwards.
func Merge(stored Player, patch PlayerPatch) Player {
	merged := stored
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Title != nil {
		merged.Title = *patch.Title
	}
	if patch.Race != nil {
		merged.Race = *patch.Race
	}
	if patch.Profession != nil {
		merged.Profession = *patch.Profession
	}
	if patch.Birthday != nil {
		merged.Birthday = *patch.Birthday
	}
	if patch.Banned != nil {
		merged.Banned = *patch.Banned
	}
	if patch.Experience != nil {
		merged.Experience = *patch.Experience
	}
	return merged
}
