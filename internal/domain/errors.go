package domain

import "errors"

// Business error taxonomy. Services wrap these with detail via
// fmt.Errorf("%w: ...") and the API layer maps them to HTTP statuses.
var (
	ErrValidation            = errors.New("validation failed")
	ErrDuplicateAccount      = errors.New("account already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnauthenticated       = errors.New("authentication required")
	ErrInvalidSession        = errors.New("invalid session")
	ErrForbidden             = errors.New("admin access required")
	ErrNotFound              = errors.New("not found")
	ErrDuplicateFlight       = errors.New("flight number already exists")
	ErrInsufficientSeats     = errors.New("not enough seats available")
	ErrBookingNotCancellable = errors.New("booking is not cancellable")
	ErrDuplicatePNR          = errors.New("booking reference already exists")
)
