// Package visibility holds the visibility levels shared by profiles and
// entries, the viewer identity passed through every access decision, and the
// policy that decides what a viewer may see of a journal.
package visibility

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Level is totally ordered: Private < Followers < Public.
// Values are persisted as smallint so the order is comparable in SQL.
type Level int16

const (
	Private Level = iota
	Followers
	Public
)

func (l Level) String() string {
	switch l {
	case Private:
		return "private"
	case Followers:
		return "followers"
	case Public:
		return "public"
	}
	return fmt.Sprintf("level(%d)", int16(l))
}

// IsValid kiểm tra level hợp lệ
func (l Level) IsValid() bool {
	return l >= Private && l <= Public
}

// AtLeast reports whether l is at or above min in the visibility order.
func (l Level) AtLeast(min Level) bool {
	return l >= min
}

// ParseLevel accepts the lowercase names used by the API.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "private":
		return Private, nil
	case "followers":
		return Followers, nil
	case "public":
		return Public, nil
	}
	return Private, fmt.Errorf("invalid visibility %q", s)
}

func (l Level) MarshalJSON() ([]byte, error) {
	if !l.IsValid() {
		return nil, fmt.Errorf("invalid visibility %d", int16(l))
	}
	return json.Marshal(l.String())
}

func (l *Level) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("visibility must be a string: %w", err)
	}
	parsed, err := ParseLevel(s)
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// ========================================
// VIEWER
// ========================================

// Viewer is the identity a request is evaluated for. The zero value is the
// anonymous viewer.
type Viewer struct {
	ID uuid.UUID
}

// Anonymous is the unauthenticated viewer.
var Anonymous = Viewer{}

// As builds the viewer for an authenticated user id.
func As(id uuid.UUID) Viewer {
	return Viewer{ID: id}
}

func (v Viewer) Authenticated() bool {
	return v.ID != uuid.Nil
}

// Is reports whether the viewer is the authenticated user id.
func (v Viewer) Is(id uuid.UUID) bool {
	return v.Authenticated() && v.ID == id
}

func (v Viewer) String() string {
	if !v.Authenticated() {
		return "anonymous"
	}
	return v.ID.String()
}
