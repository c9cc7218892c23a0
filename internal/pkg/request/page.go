package request

import "github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"

var (
	ErrInvalidFrom = apperror.Validation("from must not be negative")
	ErrInvalidSize = apperror.Validation("size must be at least 1")
)

// Page is a from/size window over an ordered listing.
//
// From is aligned down to the page that contains it: the page index is From / Size
// (integer division), so from=10,size=10 and from=15,size=10 both address page 1.
type Page struct {
	From int
	Size int
}

func (p Page) Validate() error {
	if p.From < 0 {
		return ErrInvalidFrom
	}
	if p.Size < 1 {
		return ErrInvalidSize
	}
	return nil
}

// Index returns the zero-based page number.
func (p Page) Index() int {
	return p.From / p.Size
}

// Offset returns the first row of the page.
func (p Page) Offset() int {
	return p.Index() * p.Size
}

func (p Page) Limit() int {
	return p.Size
}
