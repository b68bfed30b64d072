package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"bookjournal-backend/internal/domains/follow/model"
)

// memRepo is an in-memory RepositoryInterface. Resolve is a real CAS under
// the mutex so concurrent accepts can be exercised.
type memRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*model.FollowRequest
	edges    map[[2]uuid.UUID]time.Time
	names    map[uuid.UUID]string
	edgeAdds int
}

func newMemRepo() *memRepo {
	return &memRepo{
		requests: make(map[uuid.UUID]*model.FollowRequest),
		edges:    make(map[[2]uuid.UUID]time.Time),
		names:    make(map[uuid.UUID]string),
	}
}

func (m *memRepo) CreateRequest(_ context.Context, req *model.FollowRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.requests {
		if r.FromUserID == req.FromUserID && r.ToUserID == req.ToUserID && r.Status == model.StatusOutstanding {
			return model.ErrDuplicateRequest
		}
	}
	cp := *req
	m.requests[req.ID] = &cp
	return nil
}

func (m *memRepo) GetRequest(_ context.Context, id uuid.UUID) (*model.FollowRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, model.ErrRequestNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) LatestOutstanding(_ context.Context, from, to uuid.UUID) (*model.FollowRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *model.FollowRequest
	for _, r := range m.requests {
		if r.FromUserID == from && r.ToUserID == to && r.Status == model.StatusOutstanding {
			if latest == nil || r.RequestedAt.After(latest.RequestedAt) {
				cp := *r
				latest = &cp
			}
		}
	}
	return latest, nil
}

func (m *memRepo) list(match func(*model.FollowRequest) bool) []model.FollowRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.FollowRequest, 0)
	for _, r := range m.requests {
		if match(r) {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RequestedAt.After(out[j].RequestedAt) })
	return out
}

func (m *memRepo) ListByRecipient(_ context.Context, to uuid.UUID, status model.RequestStatus) ([]model.FollowRequest, error) {
	return m.list(func(r *model.FollowRequest) bool { return r.ToUserID == to && r.Status == status }), nil
}

func (m *memRepo) ListBySender(_ context.Context, from uuid.UUID, status model.RequestStatus) ([]model.FollowRequest, error) {
	return m.list(func(r *model.FollowRequest) bool { return r.FromUserID == from && r.Status == status }), nil
}

func (m *memRepo) Resolve(_ context.Context, id uuid.UUID, next model.RequestStatus, at time.Time) (*model.FollowRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.requests[id]
	if !ok {
		return nil, model.ErrRequestNotFound
	}
	if r.Status != model.StatusOutstanding {
		return nil, model.ErrAlreadyResolved
	}
	r.Status = next
	r.UpdatedAt = at
	if next == model.StatusAccepted {
		key := [2]uuid.UUID{r.FromUserID, r.ToUserID}
		if _, exists := m.edges[key]; !exists {
			m.edges[key] = at
			m.edgeAdds++
		}
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) IsFollowing(_ context.Context, from, to uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.edges[[2]uuid.UUID{from, to}]
	return ok, nil
}

func (m *memRepo) DeleteEdge(_ context.Context, from, to uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := [2]uuid.UUID{from, to}
	_, ok := m.edges[key]
	delete(m.edges, key)
	return ok, nil
}

func (m *memRepo) connections(match func(k [2]uuid.UUID) (uuid.UUID, bool)) []model.Connection {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Connection, 0)
	for k, since := range m.edges {
		if id, ok := match(k); ok {
			out = append(out, model.Connection{UserID: id, Username: m.names[id], Since: since})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (m *memRepo) ListFollowing(_ context.Context, user uuid.UUID) ([]model.Connection, error) {
	return m.connections(func(k [2]uuid.UUID) (uuid.UUID, bool) { return k[1], k[0] == user }), nil
}

func (m *memRepo) ListFollowers(_ context.Context, user uuid.UUID) ([]model.Connection, error) {
	return m.connections(func(k [2]uuid.UUID) (uuid.UUID, bool) { return k[0], k[1] == user }), nil
}

type staticUsers map[uuid.UUID]bool

func (u staticUsers) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return u[id], nil
}
