package user

import "strings"

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// CreateUserRequest represents a user creation request.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required" example:"Ada Lovelace"`
	Email    string `json:"email" binding:"required,email" example:"ada@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"correct horse battery"`
}

// Normalize trims the name and lowercases the email.
func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// searchColumns are matched by the search parameter of a listing.
var searchColumns = []string{"name", "email"}
