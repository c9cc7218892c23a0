package itemrequest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/user"
)

const (
	aliceID = "a0000000-0000-4000-8000-000000000001"
	ghostID = "e0000000-0000-4000-8000-000000000005"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, r *ItemRequest) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil {
		r.ID = "req-new"
		r.CreatedAt = time.Now()
	}
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*ItemRequest, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*ItemRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, filter Filter) ([]*ItemRequest, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*ItemRequest), args.Error(1)
}

func (m *mockRepo) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockItems struct {
	mock.Mock
}

func (m *mockItems) ListByRequestIDs(ctx context.Context, ids []string) ([]*item.Item, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*item.Item), args.Error(1)
}

func newTestService() (Service, *mockRepo, *mockItems) {
	users := new(mockUsers)
	users.On("GetByID", mock.Anything, aliceID).Return(&user.User{ID: aliceID}, nil).Maybe()
	users.On("GetByID", mock.Anything, ghostID).Return(nil, user.ErrNotFound).Maybe()

	repo := new(mockRepo)
	items := new(mockItems)
	return NewService(repo, users, items, zap.NewNop()), repo, items
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()
	repo.On("Create", ctx, mock.AnythingOfType("*itemrequest.ItemRequest")).Return(nil)

	r, err := svc.Create(ctx, aliceID, "  need a ladder ")
	require.NoError(t, err)
	assert.Equal(t, "need a ladder", r.Description)
	assert.Equal(t, aliceID, r.RequesterID)

	_, err = svc.Create(ctx, aliceID, " ")
	assert.ErrorIs(t, err, ErrDescriptionRequired)

	_, err = svc.Create(ctx, ghostID, "anything")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListOwnAttachesItems(t *testing.T) {
	ctx := context.Background()
	svc, repo, items := newTestService()

	r1 := &ItemRequest{ID: "r1", RequesterID: aliceID}
	r2 := &ItemRequest{ID: "r2", RequesterID: aliceID}
	repo.On("List", ctx, Filter{RequesterID: aliceID}).Return([]*ItemRequest{r2, r1}, nil)

	answer := "r1"
	ladder := &item.Item{ID: "i1", Name: "Ladder", RequestID: &answer}
	items.On("ListByRequestIDs", ctx, []string{"r2", "r1"}).Return([]*item.Item{ladder}, nil)

	got, err := svc.ListOwn(ctx, aliceID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r2", got[0].ID)
	assert.Empty(t, got[0].Items)
	assert.Equal(t, []*item.Item{ladder}, got[1].Items)
}

func TestListOthersPaging(t *testing.T) {
	ctx := context.Background()
	svc, repo, items := newTestService()

	repo.On("List", ctx, Filter{ExcludeRequesterID: aliceID, Limit: 4, Offset: 8}).Return([]*ItemRequest{}, nil)
	items.On("ListByRequestIDs", ctx, []string{}).Return([]*item.Item(nil), nil)

	got, err := svc.ListOthers(ctx, aliceID, request.Page{From: 9, Size: 4})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = svc.ListOthers(ctx, aliceID, request.Page{From: 0, Size: 0})
	assert.ErrorIs(t, err, request.ErrInvalidSize)
}

func TestGetRequest(t *testing.T) {
	ctx := context.Background()
	svc, repo, items := newTestService()

	repo.On("GetByID", ctx, "r1").Return(&ItemRequest{ID: "r1"}, nil)
	repo.On("GetByID", ctx, "missing").Return(nil, ErrNotFound)
	items.On("ListByRequestIDs", ctx, []string{"r1"}).Return([]*item.Item{}, nil)

	got, err := svc.GetByID(ctx, aliceID, "r1")
	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)

	_, err = svc.GetByID(ctx, aliceID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.GetByID(ctx, ghostID, "r1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
