package domain

import "errors"

// Ошибки доменного уровня, которые возвращают use case'ы и адаптеры хранения.
var (
	ErrListingNotFound      = errors.New("listing not found")
	ErrInvalidListing       = errors.New("invalid listing data")
	ErrForbidden            = errors.New("user not authorized to perform this action")
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrLikeExists           = errors.New("like already exists")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrInvalidBooking       = errors.New("invalid booking request")
	ErrInvalidBookingStatus = errors.New("invalid booking status transition")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrEmailInUse           = errors.New("email already in use")
	ErrInvalidRegistration  = errors.New("invalid registration data")
	ErrTokenInvalid         = errors.New("invalid jwt token")
)
