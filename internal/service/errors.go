package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNotApproved means the credential checked out but the account has
	// not been approved by the team yet.
	ErrNotApproved = errors.New("account not approved")
	// ErrInvalidOrExpiredToken is the single failure for reset-token
	// consumption: not-found and expired are indistinguishable.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrWeakPassword  = errors.New("password too weak")
	ErrWrongPassword = errors.New("current password incorrect")
	ErrSelfDeletion  = errors.New("cannot delete own account")
)
