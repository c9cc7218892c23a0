package itemrequest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

// UserDirectory resolves users by id.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemFinder lists the items answering requests.
type ItemFinder interface {
	ListByRequestIDs(ctx context.Context, requestIDs []string) ([]*item.Item, error)
}

type Service interface {
	Create(ctx context.Context, requesterID, description string) (*ItemRequest, error)
	ListOwn(ctx context.Context, requesterID string) ([]*WithItems, error)
	ListOthers(ctx context.Context, userID string, page request.Page) ([]*WithItems, error)
	GetByID(ctx context.Context, userID, id string) (*WithItems, error)
}

type service struct {
	repo   Repository
	users  UserDirectory
	items  ItemFinder
	logger *zap.Logger
}

func NewService(repo Repository, users UserDirectory, items ItemFinder, logger *zap.Logger) Service {
	return &service{
		repo:   repo,
		users:  users,
		items:  items,
		logger: logger,
	}
}

func (s *service) requireUser(ctx context.Context, id string) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	return nil
}

func (s *service) Create(ctx context.Context, requesterID, description string) (*ItemRequest, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrDescriptionRequired
	}
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	req := &ItemRequest{Description: description, RequesterID: requesterID}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.logger.Info("item request created", zap.String("request_id", req.ID), zap.String("requester_id", requesterID))
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID string) ([]*WithItems, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	reqs, err := s.repo.List(ctx, Filter{RequesterID: requesterID})
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, reqs)
}

func (s *service) ListOthers(ctx context.Context, userID string, page request.Page) ([]*WithItems, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	reqs, err := s.repo.List(ctx, Filter{
		ExcludeRequesterID: userID,
		Limit:              page.Limit(),
		Offset:             page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	return s.attachItems(ctx, reqs)
}

func (s *service) GetByID(ctx context.Context, userID, id string) (*WithItems, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	out, err := s.attachItems(ctx, []*ItemRequest{req})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// attachItems loads the answering items of all requests in one query.
func (s *service) attachItems(ctx context.Context, reqs []*ItemRequest) ([]*WithItems, error) {
	ids := make([]string, len(reqs))
	for i, r := range reqs {
		ids[i] = r.ID
	}

	items, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byRequest := make(map[string][]*item.Item)
	for _, it := range items {
		if it.RequestID != nil {
			byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
		}
	}

	out := make([]*WithItems, len(reqs))
	for i, r := range reqs {
		out[i] = &WithItems{ItemRequest: r, Items: byRequest[r.ID]}
	}
	return out, nil
}
