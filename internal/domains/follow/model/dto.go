package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const MaxMessageLength = 200

// CreateFollowRequest - POST /follow-requests
type CreateFollowRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

func (r CreateFollowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.To, validation.Required, is.UUID),
		validation.Field(&r.Message, validation.RuneLength(0, MaxMessageLength)),
	)
}

// ListRequestsQuery - GET /follow-requests?status=
type ListRequestsQuery struct {
	Status string `form:"status"`
}

func (q ListRequestsQuery) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Status, validation.In(
			string(StatusOutstanding), string(StatusAccepted), string(StatusDeclined),
		)),
	)
}

// StatusOrDefault trả về outstanding khi không truyền status
func (q ListRequestsQuery) StatusOrDefault() RequestStatus {
	if q.Status == "" {
		return StatusOutstanding
	}
	return RequestStatus(q.Status)
}
