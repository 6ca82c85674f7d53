// Package paging holds the from/size pagination shared by list endpoints.
// From is a zero-based page index, not a row offset.
package paging

import "github.com/shareit-go/shareit/internal/pkg/apperror"

const (
	DefaultFrom = 0
	DefaultSize = 10
)

var ErrInvalidPage = apperror.InvalidArgument("Params from and size must not be negative")

type Page struct {
	From int
	Size int
}

// Default returns the first page with the default size.
func Default() Page {
	return Page{From: DefaultFrom, Size: DefaultSize}
}

// Validate rejects negative values. A zero size is legal and yields no rows.
func (p Page) Validate() error {
	if p.From < 0 || p.Size < 0 {
		return ErrInvalidPage
	}
	return nil
}

func (p Page) Limit() uint64 {
	return uint64(p.Size)
}

func (p Page) Offset() uint64 {
	return uint64(p.From) * uint64(p.Size)
}

// Empty reports whether the page can never hold a row.
func (p Page) Empty() bool {
	return p.Size == 0
}
