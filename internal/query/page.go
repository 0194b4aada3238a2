package query

import (
	"fmt"

	"github.com/mcoot/playerregistry/internal/model"
)

// Page defaults
const (
	DefaultPageNumber = 0
	DefaultPageSize   = 3
)

// Page describes one slice of a filtered and sorted list
type Page struct {
	Order  Order
	Number int
	Size   int
}

// DefaultPage returns the page used when a request gives no paging parameters
func DefaultPage() Page {
	return Page{
		Order:  DefaultOrder,
		Number: DefaultPageNumber,
		Size:   DefaultPageSize,
	}
}

// Validate rejects negative page numbers or sizes and unknown orders
func (p Page) Validate() error {
	if p.Number < 0 {
		return fmt.Errorf("%w: pageNumber must not be negative", ErrInvalidQuery)
	}
	if p.Size < 0 {
		return fmt.Errorf("%w: pageSize must not be negative", ErrInvalidQuery)
	}
	_, err := p.Order.Comparator()
	return err
}

// Paginate returns items[number*size : min(number*size+size, len(items))].
// A start index past the end yields an empty slice rather than an error.
func Paginate[T any](items []T, number, size int) []T {
	if number < 0 || size <= 0 {
		return items[:0:0]
	}
	start := number * size
	if start/size != number || start >= len(items) {
		return items[:0:0]
	}
	end := min(start+size, len(items))
	return items[start:end:end]
}

// Apply runs the full list pipeline over a snapshot: filter, sort, paginate.
func Apply(players []*model.Player, c Criteria, p Page) ([]*model.Player, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	matched := Filter(players, c)
	if err := Sort(matched, p.Order); err != nil {
		return nil, err
	}
	return Paginate(matched, p.Number, p.Size), nil
}
