package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/booking"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
)

const (
	callerID  = "b0000000-0000-4000-8000-000000000002"
	bookingID = "f0000000-0000-4000-8000-000000000006"
	itemID    = "d0000000-0000-4000-8000-000000000004"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) result(args mock.Arguments) (*booking.Booking, error) {
	if b := args.Get(0); b != nil {
		return b.(*booking.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockService) Create(ctx context.Context, req booking.CreateRequest) (*booking.Booking, error) {
	return m.result(m.Called(ctx, req))
}

func (m *mockService) SetApproval(ctx context.Context, ownerID, id string, approved bool) (*booking.Booking, error) {
	return m.result(m.Called(ctx, ownerID, id, approved))
}

func (m *mockService) GetByID(ctx context.Context, callerID, id string) (*booking.Booking, error) {
	return m.result(m.Called(ctx, callerID, id))
}

func (m *mockService) ListForBooker(ctx context.Context, bookerID, state string, page request.Page) ([]*booking.Booking, error) {
	args := m.Called(ctx, bookerID, state, page)
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func (m *mockService) ListForOwner(ctx context.Context, ownerID, state string, page request.Page) ([]*booking.Booking, error) {
	args := m.Called(ctx, ownerID, state, page)
	return args.Get(0).([]*booking.Booking), args.Error(1)
}

func newRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), auth.Identify(nil, true))
	return r
}

func serve(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(auth.UserIDHeader, callerID)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sample(status booking.Status) *booking.Booking {
	return &booking.Booking{
		ID:         bookingID,
		ItemID:     itemID,
		ItemName:   "Drill",
		BookerID:   callerID,
		BookerName: "Bob",
		Start:      time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC),
		Status:     status,
	}
}

func TestCreateBooking(t *testing.T) {
	svc := new(mockService)
	svc.On("Create", mock.Anything, booking.CreateRequest{
		BookerID: callerID,
		ItemID:   itemID,
		Start:    time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC),
		End:      time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC),
	}).Return(sample(booking.StatusWaiting), nil)

	w := serve(newRouter(svc), http.MethodPost, "/v1/bookings",
		`{"item_id":"`+itemID+`","start":"2024-01-10T10:00:00Z","end":"2024-01-12T10:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "WAITING", resp.Status)
	assert.Equal(t, "Drill", resp.Item.Name)
	assert.Equal(t, callerID, resp.Booker.ID)
	svc.AssertExpectations(t)
}

func TestCreateBookingRejectsBadBody(t *testing.T) {
	svc := new(mockService)
	w := serve(newRouter(svc), http.MethodPost, "/v1/bookings", `{"item_id":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSetApprovalRoutes(t *testing.T) {
	t.Run("approved flag is required", func(t *testing.T) {
		svc := new(mockService)
		w := serve(newRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non owner sees not found", func(t *testing.T) {
		svc := new(mockService)
		svc.On("SetApproval", mock.Anything, callerID, bookingID, true).Return(nil, booking.ErrNotFound)

		w := serve(newRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"?approved=true", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"error":"booking not found"}`, w.Body.String())
	})

	t.Run("settled booking", func(t *testing.T) {
		svc := new(mockService)
		svc.On("SetApproval", mock.Anything, callerID, bookingID, false).Return(nil, booking.ErrNotWaiting)

		w := serve(newRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"?approved=false", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"booking is not in WAITING state"}`, w.Body.String())
	})

	t.Run("approve", func(t *testing.T) {
		svc := new(mockService)
		svc.On("SetApproval", mock.Anything, callerID, bookingID, true).Return(sample(booking.StatusApproved), nil)

		w := serve(newRouter(svc), http.MethodPatch, "/v1/bookings/"+bookingID+"?approved=true", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"APPROVED"`)
	})
}

func TestListDefaults(t *testing.T) {
	svc := new(mockService)
	svc.On("ListForBooker", mock.Anything, callerID, "ALL", request.Page{From: 0, Size: 10}).
		Return([]*booking.Booking{}, nil)
	svc.On("ListForOwner", mock.Anything, callerID, "future", request.Page{From: 20, Size: 5}).
		Return([]*booking.Booking{sample(booking.StatusApproved)}, nil)
	r := newRouter(svc)

	w := serve(r, http.MethodGet, "/v1/bookings", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = serve(r, http.MethodGet, "/v1/bookings/owner?state=future&from=20&size=5", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp []BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	svc.AssertExpectations(t)
}

func TestListUnknownState(t *testing.T) {
	_, stateErr := booking.ParseState("BOGUS")
	svc := new(mockService)
	svc.On("ListForBooker", mock.Anything, callerID, "BOGUS", request.Page{From: 0, Size: 10}).
		Return([]*booking.Booking(nil), stateErr)

	w := serve(newRouter(svc), http.MethodGet, "/v1/bookings?state=BOGUS", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Unknown state: BOGUS"}`, w.Body.String())
}

func TestGetRequiresIdentity(t *testing.T) {
	svc := new(mockService)
	req, _ := http.NewRequest(http.MethodGet, "/v1/bookings/"+bookingID, nil)
	w := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
