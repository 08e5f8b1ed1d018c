package authsvc

import "errors"

// Identity is the verified payload of a session token. It is a snapshot
// taken at login time: a token issued before an account change keeps the
// old values until it expires.
type Identity struct {
	UserID   uint64
	Username string
	IsAdmin  bool
}

var (
	ErrInvalidArgument    = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrClaimsMissing      = errors.New("JWT claims was not passed through the context")
	ErrClaimsInvalid      = errors.New("JWT claims was invalid")
)
