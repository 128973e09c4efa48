package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleVolunteer UserRole = "volunteer"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleVolunteer, RoleAdmin:
		return true
	default:
		return false
	}
}

type AvailabilityStatus string

const (
	AvailabilityAvailable AvailabilityStatus = "available"
	AvailabilityBusy      AvailabilityStatus = "busy"
	AvailabilityInactive  AvailabilityStatus = "inactive"
)

func (a AvailabilityStatus) IsValid() bool {
	switch a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityInactive:
		return true
	default:
		return false
	}
}

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Location     *string   `json:"location,omitempty" db:"location"`
	Phone        *string   `json:"phone,omitempty" db:"phone"`

	// Volunteer profile. Zero-valued for reporters.
	Skills         pq.StringArray      `json:"skills,omitempty" db:"skills"`
	Availability   *AvailabilityStatus `json:"availability,omitempty" db:"availability"`
	CompletedTasks int                 `json:"completed_tasks" db:"completed_tasks"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`
}

// HasRole reports whether the user satisfies the required role. Admins
// satisfy everything, volunteers satisfy user-level access.
func (u *User) HasRole(requiredRole string) bool {
	switch requiredRole {
	case "admin":
		return u.Role == "admin"
	case "volunteer":
		return u.Role == "volunteer" || u.Role == "admin"
	case "user":
		return u.Role == "user" || u.Role == "volunteer" || u.Role == "admin"
	default:
		return false
	}
}

func (u *User) Ref() IdentityRef {
	return IdentityRef{ID: u.ID, Name: u.Name}
}

type CreateUserInput struct {
	Name     string   `json:"name" validate:"required,min=2,max=100"`
	Email    string   `json:"email" validate:"required,email"`
	Password string   `json:"password" validate:"required,min=8"`
	Role     UserRole `json:"role" validate:"omitempty,oneof=user volunteer"`
	Location *string  `json:"location,omitempty" validate:"omitempty,max=200"`
	Phone    *string  `json:"phone,omitempty" validate:"omitempty,max=20"`
	Skills   []string `json:"skills,omitempty" validate:"omitempty,max=20,dive,min=2,max=50"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserInput struct {
	Name         *string             `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Location     *string             `json:"location,omitempty" validate:"omitempty,max=200"`
	Phone        *string             `json:"phone,omitempty" validate:"omitempty,max=20"`
	Skills       []string            `json:"skills,omitempty" validate:"omitempty,max=20,dive,min=2,max=50"`
	Availability *AvailabilityStatus `json:"availability,omitempty" validate:"omitempty,oneof=available busy inactive"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
