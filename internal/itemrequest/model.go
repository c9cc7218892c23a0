package itemrequest

import (
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.NotFound("item request not found")
	ErrUserNotFound        = apperror.NotFound("user not found")
	ErrDescriptionRequired = apperror.Validation("description is required")
)

// ItemRequest is a user's ask for an item nobody has listed yet.
type ItemRequest struct {
	ID          string
	Description string
	RequesterID string
	CreatedAt   time.Time
}

// WithItems pairs a request with the items listed in answer to it.
type WithItems struct {
	*ItemRequest
	Items []*item.Item
}

type Filter struct {
	RequesterID        string
	ExcludeRequesterID string
	Limit              int
	Offset             int
}
