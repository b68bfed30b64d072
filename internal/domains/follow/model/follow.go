package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// =====================================================
// REQUEST STATUS (state machine)
// =====================================================
// outstanding -> accepted | declined; accepted/declined là terminal

type RequestStatus string

const (
	StatusOutstanding RequestStatus = "outstanding"
	StatusAccepted    RequestStatus = "accepted"
	StatusDeclined    RequestStatus = "declined"
)

func ParseRequestStatus(s string) (RequestStatus, error) {
	switch RequestStatus(s) {
	case StatusOutstanding, StatusAccepted, StatusDeclined:
		return RequestStatus(s), nil
	}
	return "", fmt.Errorf("invalid follow request status %q", s)
}

func (s RequestStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// CanTransitionTo reports whether s -> next is a legal transition.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	return s == StatusOutstanding && next.IsTerminal()
}

// =====================================================
// ENTITIES
// =====================================================

// FollowRequest là lời xin follow có hướng from -> to
type FollowRequest struct {
	ID          uuid.UUID     `json:"id"`
	FromUserID  uuid.UUID     `json:"from_user_id"`
	ToUserID    uuid.UUID     `json:"to_user_id"`
	Message     string        `json:"message,omitempty"`
	Status      RequestStatus `json:"status"`
	RequestedAt time.Time     `json:"requested_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Joined for listings
	FromUsername string `json:"from_username,omitempty"`
	ToUsername   string `json:"to_username,omitempty"`
}

// Edge là quan hệ follow đã được chấp nhận: From follows To
type Edge struct {
	FromUserID uuid.UUID `json:"from_user_id"`
	ToUserID   uuid.UUID `json:"to_user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Connection là một user trong danh sách following/followers
type Connection struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Since    time.Time `json:"since"`
}

// Relationship gom các sự thật về quan hệ giữa viewer và target
type Relationship struct {
	IsFollowing       bool           `json:"is_following"`
	FollowsViewer     bool           `json:"follows_viewer"`
	RequestFromTarget *FollowRequest `json:"outstanding_request_from_target,omitempty"`
	RequestToTarget   *FollowRequest `json:"outstanding_request_to_target,omitempty"`
}
