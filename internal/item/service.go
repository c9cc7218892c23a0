package item

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// UserDirectory resolves users by id.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// RequestDirectory checks that an item request exists.
type RequestDirectory interface {
	Exists(ctx context.Context, id string) (bool, error)
}

// BookingHistory exposes the booking reads items depend on.
type BookingHistory interface {
	ListApprovedForItems(ctx context.Context, itemIDs []string) ([]*booking.Booking, error)
	HasCompletedBooking(ctx context.Context, bookerID, itemID string, now time.Time) (bool, error)
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	Update(ctx context.Context, ownerID, itemID string, req UpdateRequest) (*Item, error)
	Get(ctx context.Context, callerID, itemID string) (*Details, error)
	ListByOwner(ctx context.Context, ownerID string, page request.Page) ([]*Details, error)
	Search(ctx context.Context, callerID, text string, page request.Page) ([]*Item, error)
	AddComment(ctx context.Context, authorID, itemID, text string) (*Comment, error)

	// ListByRequestIDs returns the items answering any of the given requests.
	ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*Item, error)

	// LookupItem implements booking.ItemCatalog.
	LookupItem(ctx context.Context, id string) (*booking.ItemRef, error)
}

type service struct {
	repo     Repository
	users    UserDirectory
	requests RequestDirectory
	bookings BookingHistory
	logger   *zap.Logger
	clock    func() time.Time
}

func NewService(repo Repository, users UserDirectory, requests RequestDirectory, bookings BookingHistory, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		users:    users,
		requests: requests,
		bookings: bookings,
		logger:   logger,
		clock:    time.Now,
	}
}

func (s *service) requireUser(ctx context.Context, id string) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return u, nil
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if req.Available == nil {
		return nil, ErrAvailableRequired
	}

	if _, err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	if req.RequestID != nil {
		ok, err := s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRequestNotFound
		}
	}

	it := &Item{
		Name:        name,
		Description: description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info("item created", zap.String("item_id", it.ID), zap.String("owner_id", ownerID))
	return it, nil
}

func (s *service) Update(ctx context.Context, ownerID, itemID string, req UpdateRequest) (*Item, error) {
	if _, err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	// Non-owners see the item as missing.
	if it.OwnerID != ownerID {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		it.Name = name
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return nil, ErrDescriptionRequired
		}
		it.Description = description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Get(ctx context.Context, callerID, itemID string) (*Details, error) {
	if _, err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, []string{itemID})
	if err != nil {
		return nil, err
	}

	d := &Details{Item: it, Comments: comments}
	if it.OwnerID != callerID {
		return d, nil
	}

	approved, err := s.bookings.ListApprovedForItems(ctx, []string{itemID})
	if err != nil {
		return nil, err
	}
	d.Occupancy = booking.Project(approved, s.clock())
	return d, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string, page request.Page) ([]*Details, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, Filter{
		OwnerID: ownerID,
		Limit:   page.Limit(),
		Offset:  page.Offset(),
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	var (
		comments []*Comment
		approved []*booking.Booking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		comments, err = s.repo.ListComments(gctx, ids)
		return err
	})
	g.Go(func() error {
		var err error
		approved, err = s.bookings.ListApprovedForItems(gctx, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byItem := make(map[string][]*Comment)
	for _, c := range comments {
		byItem[c.ItemID] = append(byItem[c.ItemID], c)
	}
	occupancy := booking.ProjectByItem(approved, s.clock())

	out := make([]*Details, len(items))
	for i, it := range items {
		out[i] = &Details{
			Item:      it,
			Comments:  byItem[it.ID],
			Occupancy: occupancy[it.ID],
		}
	}
	return out, nil
}

// Search matches available items by name or description. Blank text matches nothing.
func (s *service) Search(ctx context.Context, callerID, text string, page request.Page) ([]*Item, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return []*Item{}, nil
	}
	if _, err := s.requireUser(ctx, callerID); err != nil {
		return nil, err
	}

	available := true
	return s.repo.List(ctx, Filter{
		Text:      text,
		Available: &available,
		Limit:     page.Limit(),
		Offset:    page.Offset(),
	})
}

func (s *service) AddComment(ctx context.Context, authorID, itemID, text string) (*Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentRequired
	}

	author, err := s.requireUser(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	ok, err := s.bookings.HasCompletedBooking(ctx, authorID, itemID, s.clock())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCommentNotAllowed
	}

	c := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("comment added", zap.String("item_id", itemID), zap.String("author_id", authorID))
	return c, nil
}

func (s *service) ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*Item, error) {
	if len(requestIDs) == 0 {
		return nil, nil
	}
	return s.repo.List(ctx, Filter{RequestIDs: requestIDs})
}

func (s *service) LookupItem(ctx context.Context, id string) (*booking.ItemRef, error) {
	it, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, booking.ErrItemNotFound
		}
		return nil, err
	}
	return &booking.ItemRef{
		ID:        it.ID,
		Name:      it.Name,
		OwnerID:   it.OwnerID,
		Available: it.Available,
	}, nil
}
