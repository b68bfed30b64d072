package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"bookjournal-backend/internal/shared/apperror"
)

func TestRequestStatus_Transitions(t *testing.T) {
	all := []RequestStatus{StatusOutstanding, StatusAccepted, StatusDeclined}
	for _, from := range all {
		for _, to := range all {
			want := from == StatusOutstanding && to != StatusOutstanding
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, StatusOutstanding.IsTerminal())
	assert.True(t, StatusDeclined.IsTerminal())
}

func TestParseRequestStatus(t *testing.T) {
	s, err := ParseRequestStatus("accepted")
	assert.NoError(t, err)
	assert.Equal(t, StatusAccepted, s)

	_, err = ParseRequestStatus("pending")
	assert.Error(t, err)
}

func TestErrors_CarryKindAndSentinel(t *testing.T) {
	err := NewNotRecipientError()
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
	assert.True(t, errors.Is(err, ErrNotRecipient))
	assert.Equal(t, ErrCodeNotRecipient, apperror.CodeOf(err))

	assert.True(t, errors.Is(NewAlreadyResolvedError(StatusAccepted), apperror.ErrInvalidState))
	assert.True(t, errors.Is(NewSelfFollowError(), apperror.ErrInvalidOperation))
	assert.True(t, errors.Is(NewDuplicateRequestError(), apperror.ErrConflict))
}

func TestCreateFollowRequest_Validate(t *testing.T) {
	assert.NoError(t, CreateFollowRequest{To: uuid.NewString(), Message: "hi"}.Validate())
	assert.Error(t, CreateFollowRequest{To: "nope"}.Validate())
	assert.Error(t, CreateFollowRequest{}.Validate())

	long := make([]rune, MaxMessageLength+1)
	for i := range long {
		long[i] = 'x'
	}
	assert.Error(t, CreateFollowRequest{To: uuid.NewString(), Message: string(long)}.Validate())
}

func TestListRequestsQuery(t *testing.T) {
	assert.Equal(t, StatusOutstanding, ListRequestsQuery{}.StatusOrDefault())
	assert.NoError(t, ListRequestsQuery{Status: "declined"}.Validate())
	assert.Error(t, ListRequestsQuery{Status: "weird"}.Validate())
}
