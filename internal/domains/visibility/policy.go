package visibility

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Tier is the slice of a journal a viewer is admitted to.
type Tier int8

const (
	TierNone Tier = iota
	TierPublic
	TierFollowers
	// TierOwner is the journal owner looking at their own journal.
	TierOwner
)

func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierPublic:
		return "public"
	case TierFollowers:
		return "followers"
	case TierOwner:
		return "owner"
	}
	return fmt.Sprintf("tier(%d)", int8(t))
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Allows reports whether content marked l is inside the tier.
// Public tier admits Public content only; Followers tier admits Followers and Public.
func (t Tier) Allows(l Level) bool {
	switch t {
	case TierOwner:
		return true
	case TierFollowers:
		return l >= Followers
	case TierPublic:
		return l == Public
	}
	return false
}

// Journal is the journal-level posture of a user, taken from their profile.
type Journal struct {
	OwnerID    uuid.UUID
	Visibility Level
}

// Content is anything authored into a journal that carries its own visibility.
type Content interface {
	Journal() Journal
	IsPublished() bool
	ContentVisibility() Level
}

// ClassifyJournalAccess decides the tier of journal for viewer given whether
// viewer follows the journal owner. It never performs I/O.
func ClassifyJournalAccess(viewer Viewer, journal Journal, following bool) Tier {
	if viewer.Is(journal.OwnerID) {
		return TierOwner
	}
	if journal.Visibility == Private {
		return TierNone
	}
	if !viewer.Authenticated() {
		if journal.Visibility == Public {
			return TierPublic
		}
		return TierNone
	}
	if following && journal.Visibility.AtLeast(Followers) {
		return TierFollowers
	}
	if journal.Visibility == Public {
		return TierPublic
	}
	return TierNone
}

// ContentVisible applies both knobs: the viewer's journal tier and the
// content's own visibility. Authors always see their own content, drafts
// included; nobody else ever sees a draft.
func ContentVisible(viewer Viewer, c Content, tier Tier) bool {
	if viewer.Is(c.Journal().OwnerID) {
		return true
	}
	if !c.IsPublished() {
		return false
	}
	return tier.Allows(c.ContentVisibility())
}

// ========================================
// POLICY (with follow graph lookups)
// ========================================

// FollowChecker answers "does from follow to" against the follow graph.
type FollowChecker interface {
	IsFollowing(ctx context.Context, from, to uuid.UUID) (bool, error)
}

// Policy binds the pure rules to the follow graph.
type Policy struct {
	graph FollowChecker
}

func NewPolicy(graph FollowChecker) *Policy {
	return &Policy{graph: graph}
}

// needsFollowLookup is false whenever the answer cannot depend on the edge.
func needsFollowLookup(viewer Viewer, journal Journal) bool {
	return viewer.Authenticated() &&
		!viewer.Is(journal.OwnerID) &&
		journal.Visibility != Private
}

// ClassifyJournalAccess resolves the follow edge (only when it matters) and classifies.
func (p *Policy) ClassifyJournalAccess(ctx context.Context, viewer Viewer, journal Journal) (Tier, error) {
	following := false
	if needsFollowLookup(viewer, journal) {
		var err error
		following, err = p.graph.IsFollowing(ctx, viewer.ID, journal.OwnerID)
		if err != nil {
			return TierNone, fmt.Errorf("check follow edge: %w", err)
		}
	}
	return ClassifyJournalAccess(viewer, journal, following), nil
}

// IsEntryVisible is the single-item check used by detail views.
func (p *Policy) IsEntryVisible(ctx context.Context, viewer Viewer, c Content) (bool, error) {
	journal := c.Journal()
	if viewer.Is(journal.OwnerID) {
		return true, nil
	}
	if !c.IsPublished() {
		return false, nil
	}
	tier, err := p.ClassifyJournalAccess(ctx, viewer, journal)
	if err != nil {
		return false, err
	}
	return ContentVisible(viewer, c, tier), nil
}

// Session memoizes journal tiers for one viewer across a single listing so a
// page of entries by the same author costs one follow lookup. The memo is
// keyed by the whole Journal since the tier depends on its visibility too.
// A Session must not outlive the request that created it.
type Session struct {
	policy *Policy
	viewer Viewer
	tiers  map[Journal]Tier
}

func (p *Policy) Session(viewer Viewer) *Session {
	return &Session{
		policy: p,
		viewer: viewer,
		tiers:  make(map[Journal]Tier),
	}
}

func (s *Session) Viewer() Viewer {
	return s.viewer
}

// Tier returns the memoized tier for journal, resolving it on first use.
func (s *Session) Tier(ctx context.Context, journal Journal) (Tier, error) {
	if tier, ok := s.tiers[journal]; ok {
		return tier, nil
	}
	tier, err := s.policy.ClassifyJournalAccess(ctx, s.viewer, journal)
	if err != nil {
		return TierNone, err
	}
	s.tiers[journal] = tier
	return tier, nil
}

// IsVisible is IsEntryVisible through the memo.
func (s *Session) IsVisible(ctx context.Context, c Content) (bool, error) {
	if s.viewer.Is(c.Journal().OwnerID) {
		return true, nil
	}
	if !c.IsPublished() {
		return false, nil
	}
	tier, err := s.Tier(ctx, c.Journal())
	if err != nil {
		return false, err
	}
	return ContentVisible(s.viewer, c, tier), nil
}
