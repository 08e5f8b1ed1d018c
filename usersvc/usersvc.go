package usersvc

import "errors"

type User struct {
	ID           uint64 `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash []byte `json:"-" gorm:"column:password;not null"`
	IsAdmin      bool   `json:"is_admin" gorm:"default:false"`
}

type UserRepository interface {
	Create(username string, passwordHash []byte, isAdmin bool) (User, error)
	Find(username string) (User, error)
	Delete(id uint64) (bool, error)
}

var (
	ErrInvalidArgument = errors.New("username and password are required")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrUserNotFound    = errors.New("user not found")
)
