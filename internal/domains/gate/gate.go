// Package gate turns visibility verdicts into caller-facing results. A
// resource the viewer may not see is reported exactly like a missing one.
package gate

import (
	"context"
	"errors"

	"github.com/google/uuid"

	followmodel "bookjournal-backend/internal/domains/follow/model"
	journalmodel "bookjournal-backend/internal/domains/journal/model"
	"bookjournal-backend/internal/domains/user"
	"bookjournal-backend/internal/domains/visibility"
	"bookjournal-backend/internal/infrastructure/metrics"
)

// UserLookup is satisfied by user.Service
type UserLookup interface {
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*user.Profile, error)
}

// RelationshipReader is satisfied by the follow service
type RelationshipReader interface {
	Relationship(ctx context.Context, viewer visibility.Viewer, target uuid.UUID) (*followmodel.Relationship, error)
}

// EntryFinder loads an entry without any visibility filtering
type EntryFinder interface {
	GetByID(ctx context.Context, id uuid.UUID) (*journalmodel.Entry, error)
}

type Gate struct {
	users   UserLookup
	follows RelationshipReader
	entries EntryFinder
	policy  *visibility.Policy
	metrics metrics.Recorder
}

func New(users UserLookup, follows RelationshipReader, entries EntryFinder, policy *visibility.Policy, recorder metrics.Recorder) *Gate {
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &Gate{
		users:   users,
		follows: follows,
		entries: entries,
		policy:  policy,
		metrics: recorder,
	}
}

// ProfileSummary is the part of a profile shown to other users.
type ProfileSummary struct {
	JournalVisibility visibility.Level `json:"journal_visibility"`
	About             string           `json:"about"`
}

// ProfileView - GET /users/:id
type ProfileView struct {
	User    user.PublicUser `json:"user"`
	Profile ProfileSummary  `json:"profile"`
	IsSelf  bool            `json:"is_self"`
	followmodel.Relationship
	Access visibility.Tier `json:"access"`
}

func isNotFound(err error) bool {
	return errors.Is(err, user.ErrUserNotFound)
}

// ========================================
// JOURNAL
// ========================================

// AuthorizeJournal classifies viewer's access to owner's journal.
// A missing owner and a journal the viewer cannot enter both yield NotFound.
func (g *Gate) AuthorizeJournal(ctx context.Context, viewer visibility.Viewer, ownerID uuid.UUID) (*user.Profile, visibility.Tier, error) {
	return g.classify(ctx, viewer, ownerID, "journal")
}

func (g *Gate) classify(ctx context.Context, viewer visibility.Viewer, ownerID uuid.UUID, resource string) (*user.Profile, visibility.Tier, error) {
	profile, err := g.users.GetProfile(ctx, ownerID)
	if err != nil {
		if isNotFound(err) {
			return nil, visibility.TierNone, user.NewUserNotFoundError()
		}
		return nil, visibility.TierNone, err
	}

	tier, err := g.policy.ClassifyJournalAccess(ctx, viewer, profile.Journal())
	if err != nil {
		return nil, visibility.TierNone, err
	}
	if tier == visibility.TierNone {
		g.metrics.RecordAccessDenied(resource)
		return nil, visibility.TierNone, user.NewUserNotFoundError()
	}
	return profile, tier, nil
}

// ========================================
// PROFILE
// ========================================

func (g *Gate) AuthorizeProfileView(ctx context.Context, viewer visibility.Viewer, targetID uuid.UUID) (*ProfileView, error) {
	target, err := g.users.GetUser(ctx, targetID)
	if err != nil {
		if isNotFound(err) {
			return nil, user.NewUserNotFoundError()
		}
		return nil, err
	}

	profile, tier, err := g.classify(ctx, viewer, targetID, "profile")
	if err != nil {
		return nil, err
	}

	rel, err := g.follows.Relationship(ctx, viewer, targetID)
	if err != nil {
		return nil, err
	}

	return &ProfileView{
		User: target.Public(),
		Profile: ProfileSummary{
			JournalVisibility: profile.JournalVisibility,
			About:             profile.About,
		},
		IsSelf:       viewer.Is(targetID),
		Relationship: *rel,
		Access:       tier,
	}, nil
}

// ========================================
// ENTRY
// ========================================

func (g *Gate) AuthorizeEntryView(ctx context.Context, viewer visibility.Viewer, entryID uuid.UUID) (*journalmodel.Entry, error) {
	entry, err := g.entries.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, journalmodel.ErrEntryNotFound) {
			return nil, journalmodel.NewEntryNotFoundError()
		}
		return nil, err
	}

	ok, err := g.policy.IsEntryVisible(ctx, viewer, entry)
	if err != nil {
		return nil, err
	}
	if !ok {
		g.metrics.RecordAccessDenied("entry")
		return nil, journalmodel.NewEntryNotFoundError()
	}
	return entry, nil
}
