package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{"aka wins", Author{FirstName: "Eric", LastName: "Blair", Aka: "George Orwell"}, "George Orwell"},
		{"all parts", Author{FirstName: "Ursula", MiddleName: "K.", LastName: "Le Guin"}, "Ursula K. Le Guin"},
		{"last name only", Author{LastName: "Homer"}, "Homer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.author.DisplayName())
		})
	}
}

func TestCreateAuthorRequest_Validate(t *testing.T) {
	assert.NoError(t, CreateAuthorRequest{LastName: "Tolkien"}.Validate())
	assert.Error(t, CreateAuthorRequest{FirstName: "J.R.R."}.Validate())
}
