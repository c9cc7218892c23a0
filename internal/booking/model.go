package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.NotFound("booking not found")
	ErrUserNotFound     = apperror.NotFound("user not found")
	ErrItemNotFound     = apperror.NotFound("item not found")
	ErrItemUnavailable  = apperror.Validation("item is not available for booking")
	ErrInvalidTimeRange = apperror.Validation("start time must be before end time")
	ErrNotWaiting       = apperror.Validation("booking is not in WAITING state")
	ErrUnknownState     = apperror.InvalidArgument("unknown state")

	// ErrStatusChanged is returned by the repository when a status transition
	// lost a race against another writer.
	ErrStatusChanged = apperror.New(http.StatusConflict, "booking status changed concurrently")
)

// Booking is a reservation of an item by a user for a time window.
type Booking struct {
	ID          string
	ItemID      string
	ItemName    string
	ItemOwnerID string
	BookerID    string
	BookerName  string
	Start       time.Time
	End         time.Time
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ItemRef is the slice of an item the booking lifecycle needs to know about.
type ItemRef struct {
	ID        string
	Name      string
	OwnerID   string
	Available bool
}

type CreateRequest struct {
	BookerID string
	ItemID   string
	Start    time.Time
	End      time.Time
}

// Filter scopes a booking listing. Exactly one of BookerID and OwnerID is
// normally set. State predicates are evaluated against Now.
type Filter struct {
	BookerID string
	OwnerID  string
	State    State
	Now      time.Time
	Limit    int
	Offset   int
}
