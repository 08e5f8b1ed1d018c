package authservice

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/twinj/uuid"
	"taskapi/usersvc"
)

type Tokenizer interface {
	Generate(user usersvc.User) (string, error)
}

type tokenizer struct {
	secret []byte
}

func NewTokenizer(secret []byte) Tokenizer {
	return &tokenizer{secret: secret}
}

func (t *tokenizer) Generate(user usersvc.User) (string, error) {
	claims := jwt.MapClaims{
		"uuid":     uuid.NewV4().String(),
		"user_id":  user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(TokenExpiry()).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// TokenExpiry is the fixed lifetime of a session token. Issued tokens are
// not revocable before this horizon.
func TokenExpiry() time.Duration {
	return time.Hour * 24 * 5
}
