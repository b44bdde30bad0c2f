package domain

import "time"

// UserRole define el nivel de acceso de un usuario en la plataforma.
type UserRole string

const (
	UserRoleOwner   UserRole = "owner"
	UserRoleAdmin   UserRole = "admin"
	UserRoleStudent UserRole = "student"
)

// IsValid reporta si el rol es uno de los tres conocidos.
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleOwner, UserRoleAdmin, UserRoleStudent:
		return true
	}
	return false
}

// IsStaff reporta si el rol puede administrar cursos.
func (r UserRole) IsStaff() bool {
	return r == UserRoleAdmin || r == UserRoleOwner
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}
