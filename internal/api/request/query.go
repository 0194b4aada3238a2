package request

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/mcoot/playerregistry/internal/model"
	"github.com/mcoot/playerregistry/internal/query"
)

// Query parameter names accepted by the list and count endpoints
const (
	ParamName          = "name"
	ParamTitle         = "title"
	ParamRace          = "race"
	ParamProfession    = "profession"
	ParamAfter         = "after"
	ParamBefore        = "before"
	ParamBanned        = "banned"
	ParamMinExperience = "minExperience"
	ParamMaxExperience = "maxExperience"
	ParamMinLevel      = "minLevel"
	ParamMaxLevel      = "maxLevel"
	ParamOrder         = "order"
	ParamPageNumber    = "pageNumber"
	ParamPageSize      = "pageSize"
)

// ParseCriteria reads the filter parameters from v. Empty values are treated
// as absent. Malformed values return an error wrapping query.ErrInvalidQuery.
func ParseCriteria(v url.Values) (query.Criteria, error) {
	var c query.Criteria

	if s := v.Get(ParamName); s != "" {
		c.Name = &s
	}
	if s := v.Get(ParamTitle); s != "" {
		c.Title = &s
	}
	if s := v.Get(ParamRace); s != "" {
		r, ok := model.ParseRace(s)
		if !ok {
			return query.Criteria{}, invalid(ParamRace, s)
		}
		c.Race = &r
	}
	if s := v.Get(ParamProfession); s != "" {
		p, ok := model.ParseProfession(s)
		if !ok {
			return query.Criteria{}, invalid(ParamProfession, s)
		}
		c.Profession = &p
	}

	var err error
	if c.After, err = parseMillis(v, ParamAfter); err != nil {
		return query.Criteria{}, err
	}
	if c.Before, err = parseMillis(v, ParamBefore); err != nil {
		return query.Criteria{}, err
	}
	if s := v.Get(ParamBanned); s != "" {
		b, perr := strconv.ParseBool(s)
		if perr != nil {
			return query.Criteria{}, invalid(ParamBanned, s)
		}
		c.Banned = &b
	}

	ints := []struct {
		param string
		dst   **int
	}{
		{ParamMinExperience, &c.MinExperience},
		{ParamMaxExperience, &c.MaxExperience},
		{ParamMinLevel, &c.MinLevel},
		{ParamMaxLevel, &c.MaxLevel},
	}
	for _, f := range ints {
		if *f.dst, err = parseInt(v, f.param); err != nil {
			return query.Criteria{}, err
		}
	}

	return c, nil
}

// ParsePage reads order and paging parameters from v, applying the defaults
// (ID, 0, 3) for absent values.
func ParsePage(v url.Values) (query.Page, error) {
	page := query.DefaultPage()

	if s := v.Get(ParamOrder); s != "" {
		o, err := query.ParseOrder(s)
		if err != nil {
			return query.Page{}, err
		}
		page.Order = o
	}

	n, err := parseInt(v, ParamPageNumber)
	if err != nil {
		return query.Page{}, err
	}
	if n != nil {
		page.Number = *n
	}

	size, err := parseInt(v, ParamPageSize)
	if err != nil {
		return query.Page{}, err
	}
	if size != nil {
		page.Size = *size
	}

	if err := page.Validate(); err != nil {
		return query.Page{}, err
	}
	return page, nil
}

// EncodeCriteria is the inverse of ParseCriteria, used by clients
func EncodeCriteria(c query.Criteria, v url.Values) {
	setString := func(k string, s *string) {
		if s != nil && *s != "" {
			v.Set(k, *s)
		}
	}
	setInt := func(k string, i *int) {
		if i != nil {
			v.Set(k, strconv.Itoa(*i))
		}
	}
	setString(ParamName, c.Name)
	setString(ParamTitle, c.Title)
	if c.Race != nil {
		v.Set(ParamRace, string(*c.Race))
	}
	if c.Profession != nil {
		v.Set(ParamProfession, string(*c.Profession))
	}
	if c.After != nil {
		v.Set(ParamAfter, strconv.FormatInt(c.After.UnixMilli(), 10))
	}
	if c.Before != nil {
		v.Set(ParamBefore, strconv.FormatInt(c.Before.UnixMilli(), 10))
	}
	if c.Banned != nil {
		v.Set(ParamBanned, strconv.FormatBool(*c.Banned))
	}
	setInt(ParamMinExperience, c.MinExperience)
	setInt(ParamMaxExperience, c.MaxExperience)
	setInt(ParamMinLevel, c.MinLevel)
	setInt(ParamMaxLevel, c.MaxLevel)
}

// EncodePage is the inverse of ParsePage, used by clients
func EncodePage(p query.Page, v url.Values) {
	if p.Order != "" {
		v.Set(ParamOrder, string(p.Order))
	}
	v.Set(ParamPageNumber, strconv.Itoa(p.Number))
	v.Set(ParamPageSize, strconv.Itoa(p.Size))
}

func parseInt(v url.Values, param string) (*int, error) {
	s := v.Get(param)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, invalid(param, s)
	}
	return &n, nil
}

func parseMillis(v url.Values, param string) (*time.Time, error) {
	s := v.Get(param)
	if s == "" {
		return nil, nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, invalid(param, s)
	}
	t := time.UnixMilli(ms).UTC()
	return &t, nil
}

func invalid(param, value string) error {
	return fmt.Errorf("%w: invalid %s %q", query.ErrInvalidQuery, param, value)
}
