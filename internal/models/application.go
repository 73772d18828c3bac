package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Terminal reports whether the status admits no further transitions.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

// CreatorApplication is a "join us" submission. It is linked to a User
// only by email equality; an application may exist with no account.
type CreatorApplication struct {
	ID          string
	Name        string
	Phone       string
	Email       string
	Message     string
	ImageURL    string
	Status      ApplicationStatus
	SubmittedAt time.Time
	UpdatedAt   time.Time
}
