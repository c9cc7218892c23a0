package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/metrics"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// UserDirectory resolves users by id.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemCatalog resolves items by id. It returns ErrItemNotFound for unknown ids.
type ItemCatalog interface {
	LookupItem(ctx context.Context, id string) (*ItemRef, error)
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	SetApproval(ctx context.Context, ownerID, bookingID string, approved bool) (*Booking, error)
	GetByID(ctx context.Context, callerID, bookingID string) (*Booking, error)
	ListForBooker(ctx context.Context, bookerID, state string, page request.Page) ([]*Booking, error)
	ListForOwner(ctx context.Context, ownerID, state string, page request.Page) ([]*Booking, error)
}

type service struct {
	repo   Repository
	users  UserDirectory
	items  ItemCatalog
	logger *zap.Logger
	clock  func() time.Time
}

func NewService(repo Repository, users UserDirectory, items ItemCatalog, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		users:  users,
		items:  items,
		logger: logger,
		clock:  time.Now,
	}
}

// isItemOwner is the predicate for changing a booking's status.
func isItemOwner(b *Booking, userID string) bool {
	return b.ItemOwnerID == userID
}

// canView is the predicate for reading a booking.
func canView(b *Booking, userID string) bool {
	return b.BookerID == userID || isItemOwner(b, userID)
}

func (s *service) lookupUser(ctx context.Context, id string) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	booker, err := s.lookupUser(ctx, req.BookerID)
	if err != nil {
		return nil, err
	}

	item, err := s.items.LookupItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if !item.Available {
		return nil, ErrItemUnavailable
	}
	// Owners booking their own item see the item as missing.
	if item.OwnerID == booker.ID {
		return nil, ErrItemNotFound
	}
	if !req.Start.Before(req.End) {
		return nil, ErrInvalidTimeRange
	}

	b := &Booking{
		ItemID:      item.ID,
		ItemName:    item.Name,
		ItemOwnerID: item.OwnerID,
		BookerID:    booker.ID,
		BookerName:  booker.Name,
		Start:       req.Start,
		End:         req.End,
		Status:      StatusWaiting,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("booking_create").Inc()
		return nil, err
	}

	metrics.BookingsCreatedTotal.Inc()
	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("item_id", b.ItemID),
		zap.String("booker_id", b.BookerID),
	)
	return b, nil
}

func (s *service) SetApproval(ctx context.Context, ownerID, bookingID string, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !isItemOwner(b, ownerID) {
		return nil, ErrNotFound
	}

	target := ApprovalStatus(approved)
	if !b.Status.CanTransitionTo(target) {
		return nil, ErrNotWaiting
	}

	updatedAt, err := s.repo.UpdateStatus(ctx, b.ID, b.Status, target)
	if err != nil {
		if errors.Is(err, ErrStatusChanged) {
			return nil, ErrNotWaiting
		}
		metrics.OperationErrorsTotal.WithLabelValues("booking_set_approval").Inc()
		return nil, err
	}

	b.Status = target
	b.UpdatedAt = updatedAt

	metrics.BookingTransitionsTotal.WithLabelValues(string(target)).Inc()
	s.logger.Info("booking status changed",
		zap.String("booking_id", b.ID),
		zap.String("status", string(target)),
		zap.String("owner_id", ownerID),
	)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, callerID, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !canView(b, callerID) {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, bookerID, state string, page request.Page) ([]*Booking, error) {
	return s.list(ctx, bookerID, state, page, func(f *Filter) { f.BookerID = bookerID })
}

func (s *service) ListForOwner(ctx context.Context, ownerID, state string, page request.Page) ([]*Booking, error) {
	return s.list(ctx, ownerID, state, page, func(f *Filter) { f.OwnerID = ownerID })
}

func (s *service) list(ctx context.Context, userID, rawState string, page request.Page, scope func(*Filter)) ([]*Booking, error) {
	if _, err := s.lookupUser(ctx, userID); err != nil {
		return nil, err
	}

	st, err := ParseState(rawState)
	if err != nil {
		return nil, err
	}

	if err := page.Validate(); err != nil {
		return nil, err
	}

	filter := Filter{
		State:  st,
		Now:    s.clock(),
		Limit:  page.Limit(),
		Offset: page.Offset(),
	}
	scope(&filter)

	return s.repo.List(ctx, filter)
}
