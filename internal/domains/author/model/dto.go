package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateAuthorRequest - POST /authors
type CreateAuthorRequest struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Aka        string `json:"aka"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.RuneLength(0, 100)),
		validation.Field(&r.MiddleName, validation.RuneLength(0, 100)),
		validation.Field(&r.LastName, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&r.Aka, validation.RuneLength(0, 200)),
	)
}

// AuthorFilter - GET /authors?query=&limit=&offset=
type AuthorFilter struct {
	Query  string
	Limit  int
	Offset int
}

// AuthorResponse adds the computed display name
type AuthorResponse struct {
	Author
	DisplayName string `json:"display_name"`
}

func ToResponse(a Author) AuthorResponse {
	return AuthorResponse{Author: a, DisplayName: a.DisplayName()}
}

// AuthorDetailResponse - GET /authors/:id
type AuthorDetailResponse struct {
	AuthorResponse
	Books []BookSummary `json:"books"`
}
