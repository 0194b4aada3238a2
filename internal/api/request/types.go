package request

import (
	"time"

	"github.com/mcoot/playerregistry/internal/model"
)

// PlayerBody is the request body for creating or updating a player.
// Absent fields decode to nil. Derived fields (level, untilNextLevel) and id
// are not part of the body and are ignored if sent.
type PlayerBody struct {
	Name       *string `json:"name,omitempty"`
	Title      *string `json:"title,omitempty"`
	Race       *string `json:"race,omitempty"`
	Profession *string `json:"profession,omitempty"`
	// Birthday is milliseconds since the Unix epoch
	Birthday   *int64  `json:"birthday,omitempty"`
	Banned     *bool   `json:"banned,omitempty"`
	Experience *int    `json:"experience,omitempty"`
}

// ToPatch converts the body to a model.PlayerPatch. Enum values are
// upper-cased but not checked; validation happens in the service.
func (b PlayerBody) ToPatch() model.PlayerPatch {
	patch := model.PlayerPatch{
		Name:       b.Name,
		Title:      b.Title,
		Banned:     b.Banned,
		Experience: b.Experience,
	}
	if b.Race != nil {
		r, _ := model.ParseRace(*b.Race)
		patch.Race = &r
	}
	if b.Profession != nil {
		p, _ := model.ParseProfession(*b.Profession)
		patch.Profession = &p
	}
	if b.Birthday != nil {
		t := time.UnixMilli(*b.Birthday).UTC()
		patch.Birthday = &t
	}
	return patch
}

// PlayerBodyFromPatch is the inverse of ToPatch, used by clients
func PlayerBodyFromPatch(p model.PlayerPatch) PlayerBody {
	body := PlayerBody{
		Name:       p.Name,
		Title:      p.Title,
		Banned:     p.Banned,
		Experience: p.Experience,
	}
	if p.Race != nil {
		r := string(*p.Race)
		body.Race = &r
	}
	if p.Profession != nil {
		pr := string(*p.Profession)
		body.Profession = &pr
	}
	if p.Birthday != nil {
		ms := p.Birthday.UnixMilli()
		body.Birthday = &ms
	}
	return body
}
