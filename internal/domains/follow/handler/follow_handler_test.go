package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookjournal-backend/internal/domains/follow/model"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/shared/middleware"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) IsFollowing(ctx context.Context, from, to uuid.UUID) (bool, error) {
	args := m.Called(ctx, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *mockService) CreateRequest(ctx context.Context, viewer visibility.Viewer, to uuid.UUID, message string) (*model.FollowRequest, error) {
	args := m.Called(ctx, viewer, to, message)
	req, _ := args.Get(0).(*model.FollowRequest)
	return req, args.Error(1)
}

func (m *mockService) Accept(ctx context.Context, viewer visibility.Viewer, id uuid.UUID) (*model.FollowRequest, error) {
	args := m.Called(ctx, viewer, id)
	req, _ := args.Get(0).(*model.FollowRequest)
	return req, args.Error(1)
}

func (m *mockService) Decline(ctx context.Context, viewer visibility.Viewer, id uuid.UUID) (*model.FollowRequest, error) {
	args := m.Called(ctx, viewer, id)
	req, _ := args.Get(0).(*model.FollowRequest)
	return req, args.Error(1)
}

func (m *mockService) requests(args mock.Arguments) ([]model.FollowRequest, error) {
	list, _ := args.Get(0).([]model.FollowRequest)
	return list, args.Error(1)
}

func (m *mockService) ListOutstanding(ctx context.Context, to uuid.UUID) ([]model.FollowRequest, error) {
	return m.requests(m.Called(ctx, to))
}

func (m *mockService) ListAccepted(ctx context.Context, to uuid.UUID) ([]model.FollowRequest, error) {
	return m.requests(m.Called(ctx, to))
}

func (m *mockService) ListDeclined(ctx context.Context, to uuid.UUID) ([]model.FollowRequest, error) {
	return m.requests(m.Called(ctx, to))
}

func (m *mockService) ListIncoming(ctx context.Context, viewer visibility.Viewer, status model.RequestStatus) ([]model.FollowRequest, error) {
	return m.requests(m.Called(ctx, viewer, status))
}

func (m *mockService) ListSent(ctx context.Context, viewer visibility.Viewer) ([]model.FollowRequest, error) {
	return m.requests(m.Called(ctx, viewer))
}

func (m *mockService) Unfollow(ctx context.Context, viewer visibility.Viewer, target uuid.UUID) error {
	return m.Called(ctx, viewer, target).Error(0)
}

func (m *mockService) ListFollowing(ctx context.Context, viewer visibility.Viewer) ([]model.Connection, error) {
	args := m.Called(ctx, viewer)
	list, _ := args.Get(0).([]model.Connection)
	return list, args.Error(1)
}

func (m *mockService) ListFollowers(ctx context.Context, viewer visibility.Viewer) ([]model.Connection, error) {
	args := m.Called(ctx, viewer)
	list, _ := args.Get(0).([]model.Connection)
	return list, args.Error(1)
}

func (m *mockService) Relationship(ctx context.Context, viewer visibility.Viewer, target uuid.UUID) (*model.Relationship, error) {
	args := m.Called(ctx, viewer, target)
	rel, _ := args.Get(0).(*model.Relationship)
	return rel, args.Error(1)
}

func newRouter(h *FollowHandler, viewer uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, viewer)
		c.Next()
	})
	r.POST("/follow-requests", h.CreateRequest)
	r.GET("/follow-requests", h.ListIncoming)
	r.POST("/follow-requests/:id/accept", h.Accept)
	r.POST("/follow-requests/:id/decline", h.Decline)
	r.DELETE("/following/:id", h.Unfollow)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateRequest_Created(t *testing.T) {
	svc := new(mockService)
	viewer, target := uuid.New(), uuid.New()
	svc.On("CreateRequest", mock.Anything, visibility.As(viewer), target, "hello").
		Return(&model.FollowRequest{ID: uuid.New(), FromUserID: viewer, ToUserID: target, Status: model.StatusOutstanding}, nil)

	payload, _ := json.Marshal(map[string]string{"to": target.String(), "message": "hello"})
	w := httptest.NewRecorder()
	newRouter(NewFollowHandler(svc), viewer).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/follow-requests", bytes.NewReader(payload)))

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	svc.AssertExpectations(t)
}

func TestCreateRequest_ValidationError(t *testing.T) {
	svc := new(mockService)
	w := httptest.NewRecorder()
	newRouter(NewFollowHandler(svc), uuid.New()).ServeHTTP(w,
		httptest.NewRequest(http.MethodPost, "/follow-requests", bytes.NewReader([]byte(`{"to":"nope"}`))))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestResolve_ErrorMapping(t *testing.T) {
	viewer := uuid.New()
	id := uuid.New()

	tests := []struct {
		name   string
		path   string
		method string
		err    error
		status int
		code   string
	}{
		{"forbidden", "/follow-requests/" + id.String() + "/decline", "Decline", model.NewNotRecipientError(), http.StatusForbidden, model.ErrCodeNotRecipient},
		{"already resolved", "/follow-requests/" + id.String() + "/accept", "Accept", model.NewAlreadyResolvedError(model.StatusAccepted), http.StatusConflict, model.ErrCodeAlreadyResolved},
		{"not found", "/follow-requests/" + id.String() + "/accept", "Accept", model.NewRequestNotFoundError(), http.StatusNotFound, model.ErrCodeRequestNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			svc.On(tt.method, mock.Anything, visibility.As(viewer), id).Return(nil, tt.err)

			w := httptest.NewRecorder()
			newRouter(NewFollowHandler(svc), viewer).ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, nil))

			assert.Equal(t, tt.status, w.Code)
			errBody, _ := decode(t, w)["error"].(map[string]any)
			assert.Equal(t, tt.code, errBody["code"])
		})
	}
}

func TestListIncoming_StatusQuery(t *testing.T) {
	viewer := uuid.New()
	svc := new(mockService)
	svc.On("ListIncoming", mock.Anything, visibility.As(viewer), model.StatusDeclined).
		Return([]model.FollowRequest{{ID: uuid.New()}}, nil)

	w := httptest.NewRecorder()
	newRouter(NewFollowHandler(svc), viewer).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/follow-requests?status=declined", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	newRouter(NewFollowHandler(svc), viewer).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/follow-requests?status=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertExpectations(t)
}

func TestUnfollow_NoContent(t *testing.T) {
	viewer, target := uuid.New(), uuid.New()
	svc := new(mockService)
	svc.On("Unfollow", mock.Anything, visibility.As(viewer), target).Return(nil)

	w := httptest.NewRecorder()
	newRouter(NewFollowHandler(svc), viewer).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/following/"+target.String(), nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	newRouter(NewFollowHandler(svc), viewer).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/following/xyz", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
