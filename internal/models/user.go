package models

import "time"

type UserRole string

const (
	UserRoleCreator UserRole = "creator"
	UserRoleAdmin   UserRole = "admin"
)

// User is one account record. PasswordHash is the only credential ever
// stored; reset fields are present only while a reset request is
// outstanding.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Role         UserRole
	Approved     bool
	FirstLogin   bool
	ResetHash    []byte
	ResetExpires *time.Time
	RegisteredAt time.Time
	UpdatedAt    time.Time
}
