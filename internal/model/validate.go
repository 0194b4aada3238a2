package model

import (
	"strconv"
	"time"
	"unicode/utf8"
)

// Field limits for player records
const (
	MaxNameLength  = 12
	MaxTitleLength = 30
	MaxExperience  = 10_000_000
)

var (
	// MinBirthday is the earliest accepted birthday (inclusive)
	MinBirthday = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	// MaxBirthday is the first birthday no longer accepted (exclusive)
	MaxBirthday = time.Date(3001, time.January, 1, 0, 0, 0, 0, time.UTC)
)

// ValidateNew checks a create body: every field except Banned is required.
func ValidateNew(p PlayerPatch) error {
	switch {
	case p.Name == nil:
		return missing("name")
	case p.Title == nil:
		return missing("title")
	case p.Race == nil:
		return missing("race")
	case p.Profession == nil:
		return missing("profession")
	case p.Birthday == nil:
		return missing("birthday")
	case p.Experience == nil:
		return missing("experience")
	}
	return ValidatePatch(p)
}

// ValidatePatch checks only the fields present in p
func ValidatePatch(p PlayerPatch) error {
	if p.Name != nil {
		n := utf8.RuneCountInString(*p.Name)
		if n == 0 {
			return &ValidationError{Field: "name", Reason: "must not be empty"}
		}
		if n > MaxNameLength {
			return &ValidationError{Field: "name", Reason: "must be at most " + strconv.Itoa(MaxNameLength) + " characters"}
		}
	}
	if p.Title != nil && utf8.RuneCountInString(*p.Title) > MaxTitleLength {
		return &ValidationError{Field: "title", Reason: "must be at most " + strconv.Itoa(MaxTitleLength) + " characters"}
	}
	if p.Race != nil && !p.Race.Valid() {
		return &ValidationError{Field: "race", Reason: "is not a known race"}
	}
	if p.Profession != nil && !p.Profession.Valid() {
		return &ValidationError{Field: "profession", Reason: "is not a known profession"}
	}
	if p.Birthday != nil {
		b := *p.Birthday
		if b.UnixMilli() < 0 || b.Before(MinBirthday) || !b.Before(MaxBirthday) {
			return &ValidationError{Field: "birthday", Reason: "must be in [2000-01-01, 3001-01-01)"}
		}
	}
	if p.Experience != nil {
		if *p.Experience < 0 || *p.Experience > MaxExperience {
			return &ValidationError{Field: "experience", Reason: "must be between 0 and " + strconv.Itoa(MaxExperience)}
		}
	}
	return nil
}

// ParsePlayerID parses a path-supplied identifier. Only strictly positive
// base-10 integers are valid.
func ParsePlayerID(s string) (PlayerID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidPlayerID
	}
	return PlayerID(id), nil
}

func missing(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}
