package other

import (
	"github.com/Rakhulsr/go-addressbook/app/models"
)

// UserForTemplate is the subset of the user exposed to HTML templates.
type UserForTemplate struct {
	ID       string
	Username string
	Email    string
}

func NewUserForTemplate(user *models.User) *UserForTemplate {
	if user == nil {
		return nil
	}
	return &UserForTemplate{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
