package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/playerregistry/internal/api/request"
	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/query"
)

// filterFlags are shared by list and count
type filterFlags struct {
	name, title        string
	race, profession   string
	after, before      string
	banned             bool
	minExp, maxExp     int
	minLevel, maxLevel int
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, "name", "", "Name contains")
	fs.StringVar(&f.title, "title", "", "Title contains")
	fs.StringVar(&f.race, "race", "", "Race")
	fs.StringVar(&f.profession, "profession", "", "Profession")
	fs.StringVar(&f.after, "after", "", "Born on or after (YYYY-MM-DD, RFC3339 or epoch millis)")
	fs.StringVar(&f.before, "before", "", "Born on or before (YYYY-MM-DD, RFC3339 or epoch millis)")
	fs.BoolVar(&f.banned, "banned", false, "Banned status")
	fs.IntVar(&f.minExp, "min-experience", 0, "Minimum experience")
	fs.IntVar(&f.maxExp, "max-experience", 0, "Maximum experience")
	fs.IntVar(&f.minLevel, "min-level", 0, "Minimum level")
	fs.IntVar(&f.maxLevel, "max-level", 0, "Maximum level")
}

// criteria builds query.Criteria from the flags the user actually set
func (f *filterFlags) criteria(cmd *cobra.Command) (query.Criteria, error) {
	fs := cmd.Flags()
	var c query.Criteria

	if fs.Changed("name") {
		c.Name = &f.name
	}
	if fs.Changed("title") {
		c.Title = &f.title
	}
	if fs.Changed("race") {
		r, ok := model.ParseRace(f.race)
		if !ok {
			return c, fmt.Errorf("unknown race %q", f.race)
		}
		c.Race = &r
	}
	if fs.Changed("profession") {
		p, ok := model.ParseProfession(f.profession)
		if !ok {
			return c, fmt.Errorf("unknown profession %q", f.profession)
		}
		c.Profession = &p
	}
	if fs.Changed("after") {
		t, err := parseDate(f.after)
		if err != nil {
			return c, fmt.Errorf("--after: %w", err)
		}
		c.After = &t
	}
	if fs.Changed("before") {
		t, err := parseDate(f.before)
		if err != nil {
			return c, fmt.Errorf("--before: %w", err)
		}
		c.Before = &t
	}
	if fs.Changed("banned") {
		c.Banned = &f.banned
	}
	if fs.Changed("min-experience") {
		c.MinExperience = &f.minExp
	}
	if fs.Changed("max-experience") {
		c.MaxExperience = &f.maxExp
	}
	if fs.Changed("min-level") {
		c.MinLevel = &f.minLevel
	}
	if fs.Changed("max-level") {
		c.MaxLevel = &f.maxLevel
	}
	return c, nil
}

// bodyFlags are shared by create and update
type bodyFlags struct {
	name, title      string
	race, profession string
	birthday         string
	banned           bool
	experience       int
}

func (b *bodyFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&b.name, "name", "", "Name (1-12 characters)")
	fs.StringVar(&b.title, "title", "", "Title (up to 30 characters)")
	fs.StringVar(&b.race, "race", "", "Race")
	fs.StringVar(&b.profession, "profession", "", "Profession")
	fs.StringVar(&b.birthday, "birthday", "", "Birthday (YYYY-MM-DD, RFC3339 or epoch millis)")
	fs.BoolVar(&b.banned, "banned", false, "Banned")
	fs.IntVar(&b.experience, "experience", 0, "Experience")
}

// body builds a request body holding only the flags the user set, so an
// update leaves every other field untouched
func (b *bodyFlags) body(cmd *cobra.Command) (request.PlayerBody, error) {
	fs := cmd.Flags()
	var body request.PlayerBody

	if fs.Changed("name") {
		body.Name = &b.name
	}
	if fs.Changed("title") {
		body.Title = &b.title
	}
	if fs.Changed("race") {
		body.Race = &b.race
	}
	if fs.Changed("profession") {
		body.Profession = &b.profession
	}
	if fs.Changed("birthday") {
		t, err := parseDate(b.birthday)
		if err != nil {
			return body, fmt.Errorf("--birthday: %w", err)
		}
		ms := t.UnixMilli()
		body.Birthday = &ms
	}
	if fs.Changed("banned") {
		body.Banned = &b.banned
	}
	if fs.Changed("experience") {
		body.Experience = &b.experience
	}
	return body, nil
}

// parseDate accepts epoch milliseconds, a plain date or an RFC3339 timestamp
func parseDate(s string) (time.Time, error) {
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
