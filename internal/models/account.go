package models

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RolePatient Role = "patient"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RolePatient:
		return true
	}
	return false
}

// Account is an authenticated identity. The password hash never leaves the
// repository layer except through GetByEmail.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
