package gate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	followmodel "bookjournal-backend/internal/domains/follow/model"
	journalmodel "bookjournal-backend/internal/domains/journal/model"
	"bookjournal-backend/internal/domains/user"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/infrastructure/metrics"
	"bookjournal-backend/internal/shared/apperror"
	"bookjournal-backend/internal/shared/middleware"
)

// =====================================================
// FAKES
// =====================================================

type world struct {
	users    map[uuid.UUID]*user.User
	profiles map[uuid.UUID]*user.Profile
	edges    map[[2]uuid.UUID]bool
	entries  map[uuid.UUID]*journalmodel.Entry
}

func newWorld() *world {
	return &world{
		users:    map[uuid.UUID]*user.User{},
		profiles: map[uuid.UUID]*user.Profile{},
		edges:    map[[2]uuid.UUID]bool{},
		entries:  map[uuid.UUID]*journalmodel.Entry{},
	}
}

func (w *world) addUser(name string, journal visibility.Level) uuid.UUID {
	id := uuid.New()
	w.users[id] = &user.User{ID: id, Username: name}
	w.profiles[id] = &user.Profile{UserID: id, JournalVisibility: journal, About: name + " reads"}
	return id
}

func (w *world) addEntry(author uuid.UUID, status journalmodel.Status, vis visibility.Level) uuid.UUID {
	id := uuid.New()
	w.entries[id] = &journalmodel.Entry{
		ID: id, AuthorID: author, Status: status, Visibility: vis,
		JournalVisibility: w.profiles[author].JournalVisibility,
		PublishedAt:       time.Now(),
	}
	return id
}

func (w *world) GetUser(_ context.Context, id uuid.UUID) (*user.User, error) {
	if u, ok := w.users[id]; ok {
		return u, nil
	}
	return nil, user.NewUserNotFoundError()
}

func (w *world) GetProfile(_ context.Context, id uuid.UUID) (*user.Profile, error) {
	if p, ok := w.profiles[id]; ok {
		return p, nil
	}
	return nil, user.NewUserNotFoundError()
}

func (w *world) IsFollowing(_ context.Context, from, to uuid.UUID) (bool, error) {
	return w.edges[[2]uuid.UUID{from, to}], nil
}

func (w *world) Relationship(ctx context.Context, viewer visibility.Viewer, target uuid.UUID) (*followmodel.Relationship, error) {
	rel := &followmodel.Relationship{}
	if viewer.Authenticated() {
		rel.IsFollowing, _ = w.IsFollowing(ctx, viewer.ID, target)
		rel.FollowsViewer, _ = w.IsFollowing(ctx, target, viewer.ID)
	}
	return rel, nil
}

func (w *world) GetByID(_ context.Context, id uuid.UUID) (*journalmodel.Entry, error) {
	if e, ok := w.entries[id]; ok {
		return e, nil
	}
	return nil, journalmodel.ErrEntryNotFound
}

type deniedCounter struct {
	metrics.Nop
	denied map[string]int
}

func (d *deniedCounter) RecordAccessDenied(resource string) {
	d.denied[resource]++
}

func newGate(w *world) (*Gate, *deniedCounter) {
	rec := &deniedCounter{denied: map[string]int{}}
	return New(w, w, w, visibility.NewPolicy(w), rec), rec
}

// =====================================================
// TESTS
// =====================================================

func TestAuthorizeProfileView_HiddenLooksLikeMissing(t *testing.T) {
	w := newWorld()
	private := w.addUser("hermit", visibility.Private)
	g, rec := newGate(w)

	_, hiddenErr := g.AuthorizeProfileView(context.Background(), visibility.As(uuid.New()), private)
	_, missingErr := g.AuthorizeProfileView(context.Background(), visibility.As(uuid.New()), uuid.New())

	require.Error(t, hiddenErr)
	require.Error(t, missingErr)
	assert.ErrorIs(t, hiddenErr, apperror.ErrNotFound)
	assert.Equal(t, apperror.CodeOf(missingErr), apperror.CodeOf(hiddenErr))
	assert.Equal(t, hiddenErr.Error(), missingErr.Error())
	assert.Equal(t, 1, rec.denied["profile"])
}

func TestAuthorizeProfileView_RelationshipFacts(t *testing.T) {
	w := newWorld()
	owner := w.addUser("owner", visibility.Followers)
	fan := w.addUser("fan", visibility.Public)
	w.edges[[2]uuid.UUID{fan, owner}] = true
	g, _ := newGate(w)

	view, err := g.AuthorizeProfileView(context.Background(), visibility.As(fan), owner)
	require.NoError(t, err)
	assert.Equal(t, visibility.TierFollowers, view.Access)
	assert.True(t, view.IsFollowing)
	assert.False(t, view.FollowsViewer)
	assert.False(t, view.IsSelf)
	assert.Equal(t, "owner", view.User.Username)

	self, err := g.AuthorizeProfileView(context.Background(), visibility.As(owner), owner)
	require.NoError(t, err)
	assert.True(t, self.IsSelf)
	assert.Equal(t, visibility.TierOwner, self.Access)
}

func TestAuthorizeProfileView_AnonymousOnPublic(t *testing.T) {
	w := newWorld()
	owner := w.addUser("open", visibility.Public)
	g, _ := newGate(w)

	view, err := g.AuthorizeProfileView(context.Background(), visibility.Anonymous, owner)
	require.NoError(t, err)
	assert.Equal(t, visibility.TierPublic, view.Access)

	w.profiles[owner].JournalVisibility = visibility.Followers
	_, err = g.AuthorizeProfileView(context.Background(), visibility.Anonymous, owner)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestAuthorizeEntryView(t *testing.T) {
	w := newWorld()
	author := w.addUser("author", visibility.Public)
	reader := w.addUser("reader", visibility.Public)
	draft := w.addEntry(author, journalmodel.StatusDraft, visibility.Public)
	open := w.addEntry(author, journalmodel.StatusPublished, visibility.Public)
	g, rec := newGate(w)
	ctx := context.Background()

	_, err := g.AuthorizeEntryView(ctx, visibility.As(reader), draft)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, journalmodel.ErrCodeEntryNotFound, apperror.CodeOf(err))

	_, err = g.AuthorizeEntryView(ctx, visibility.As(reader), uuid.New())
	assert.Equal(t, journalmodel.ErrCodeEntryNotFound, apperror.CodeOf(err))

	e, err := g.AuthorizeEntryView(ctx, visibility.As(author), draft)
	require.NoError(t, err)
	assert.Equal(t, draft, e.ID)

	e, err = g.AuthorizeEntryView(ctx, visibility.Anonymous, open)
	require.NoError(t, err)
	assert.Equal(t, open, e.ID)

	assert.Equal(t, 1, rec.denied["entry"])
}

func TestAuthorizeJournal(t *testing.T) {
	w := newWorld()
	owner := w.addUser("owner", visibility.Followers)
	g, _ := newGate(w)

	_, tier, err := g.AuthorizeJournal(context.Background(), visibility.As(uuid.New()), owner)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.Equal(t, visibility.TierNone, tier)

	p, tier, err := g.AuthorizeJournal(context.Background(), visibility.As(owner), owner)
	require.NoError(t, err)
	assert.Equal(t, visibility.TierOwner, tier)
	assert.Equal(t, owner, p.UserID)
}

func TestHandler_GetEntry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := newWorld()
	author := w.addUser("author", visibility.Public)
	hidden := w.addEntry(author, journalmodel.StatusPublished, visibility.Followers)
	g, _ := newGate(w)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if raw := c.GetHeader("X-Test-Viewer"); raw != "" {
			c.Set(middleware.ContextUserID, uuid.MustParse(raw))
		}
		c.Next()
	})
	h := NewHandler(g)
	r.GET("/entries/:id", h.GetEntry)
	r.GET("/users/:id", h.GetProfile)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/entries/"+hidden.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/entries/"+hidden.String(), nil)
	req.Header.Set("X-Test-Viewer", author.String())
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+author.String(), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "public", body.Data["access"])
	assert.Equal(t, false, body.Data["is_following"])

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
