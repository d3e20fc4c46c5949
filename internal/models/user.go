// Package models defines the domain types exchanged with the staff backend.
package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role classifies what an account is allowed to do in the console.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleTrainee  Role = "trainee"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole normalizes and validates a role string received from user input
// or from the backend.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleEmployee, RoleTrainee:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Roles lists every role the backend knows about, in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleEmployee, RoleTrainee}
}

// UserProfile is a staff record as the backend returns it. The whole value is
// replaced on every profile fetch; nothing is merged field by field.
type UserProfile struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Address     string    `json:"address,omitempty"`
	Role        Role      `json:"role"`
	Suspended   bool      `json:"suspended"`
	Departments []string  `json:"departments,omitempty"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	DocumentURL string    `json:"document_url,omitempty"`
	DeletedAt   *string   `json:"deleted_at,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FullName joins the name fields for display.
func (u UserProfile) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Deleted reports whether the record is soft-deleted on the backend.
func (u UserProfile) Deleted() bool {
	return u.DeletedAt != nil && *u.DeletedAt != ""
}
