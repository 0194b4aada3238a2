package query

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/mcoot/playerregistry/internal/model"
)

// Order selects the field a player list is sorted by. Sorting is always ascending.
type Order string

const (
	OrderID         Order = "ID"
	OrderName       Order = "NAME"
	OrderExperience Order = "EXPERIENCE"
	OrderBirthday   Order = "BIRTHDAY"
	OrderLevel      Order = "LEVEL"
)

// DefaultOrder is used when a request does not name one
const DefaultOrder = OrderID

// Comparator orders two players, returning a negative, zero or positive number
type Comparator func(a, b *model.Player) int

var comparators = map[Order]Comparator{
	OrderID: func(a, b *model.Player) int {
		return cmp.Compare(a.ID, b.ID)
	},
	OrderName: func(a, b *model.Player) int {
		return strings.Compare(a.Name, b.Name)
	},
	OrderExperience: func(a, b *model.Player) int {
		return cmp.Compare(a.Experience, b.Experience)
	},
	OrderBirthday: func(a, b *model.Player) int {
		return a.Birthday.Compare(b.Birthday)
	},
	OrderLevel: func(a, b *model.Player) int {
		return cmp.Compare(a.Level, b.Level)
	},
}

// ParseOrder resolves an order name. Enum names ("EXPERIENCE") and field
// names ("experience") are both accepted, case-insensitively.
func ParseOrder(s string) (Order, error) {
	o := Order(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := comparators[o]; !ok {
		return "", fmt.Errorf("%w: unknown order %q", ErrInvalidQuery, s)
	}
	return o, nil
}

// Comparator returns the comparator for o, breaking ties by ascending id.
func (o Order) Comparator() (Comparator, error) {
	byField, ok := comparators[o]
	if !ok {
		return nil, fmt.Errorf("%w: unknown order %q", ErrInvalidQuery, string(o))
	}
	return func(a, b *model.Player) int {
		if c := byField(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}, nil
}

// Sort orders players in place by o
func Sort(players []*model.Player, o Order) error {
	compare, err := o.Comparator()
	if err != nil {
		return err
	}
	slices.SortStableFunc(players, compare)
	return nil
}
