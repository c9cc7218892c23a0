package item

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("item not found")
	ErrUserNotFound        = apperror.NotFound("user not found")
	ErrRequestNotFound     = apperror.NotFound("item request not found")
	ErrNameRequired        = apperror.Validation("name is required")
	ErrDescriptionRequired = apperror.Validation("description is required")
	ErrAvailableRequired   = apperror.Validation("available is required")
	ErrCommentRequired     = apperror.Validation("comment text is required")
	ErrCommentNotAllowed   = apperror.Validation("only users who completed a booking of the item may comment on it")
)

// Item is a thing a user offers for sharing.
type Item struct {
	ID          string
	Name        string
	Description string
	Available   bool
	OwnerID     string
	RequestID   *string // request this item answers, if any
	CreatedAt   time.Time
}

type Comment struct {
	ID         string
	Text       string
	ItemID     string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
}

// Details is an item as presented to a caller: its comments and, for the
// owner only, the surrounding approved bookings.
type Details struct {
	*Item
	Comments  []*Comment
	Occupancy booking.Occupancy
}

type CreateRequest struct {
	Name        string
	Description string
	Available   *bool
	RequestID   *string
}

// UpdateRequest carries optional fields. Nil means "keep".
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type Filter struct {
	OwnerID    string
	Text       string // case-insensitive substring of name or description
	Available  *bool
	RequestIDs []string
	Limit      int
	Offset     int
}
