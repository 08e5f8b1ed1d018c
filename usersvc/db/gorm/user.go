package gorm

import (
	"errors"

	libgorm "gorm.io/gorm"
	"taskapi/usersvc"
)

type userRepository struct {
	db *libgorm.DB
}

func NewUserRepository(db *libgorm.DB) usersvc.UserRepository {
	return &userRepository{db}
}

func (u *userRepository) Create(username string, passwordHash []byte, isAdmin bool) (usersvc.User, error) {
	user := usersvc.User{Username: username, PasswordHash: passwordHash, IsAdmin: isAdmin}
	result := u.db.Create(&user)

	return user, result.Error
}

func (u *userRepository) Find(username string) (usersvc.User, error) {
	var user usersvc.User
	result := u.db.Where("username = ?", username).First(&user)

	if errors.Is(result.Error, libgorm.ErrRecordNotFound) {
		return usersvc.User{}, usersvc.ErrUserNotFound
	}

	return user, result.Error
}

func (u *userRepository) Delete(id uint64) (bool, error) {
	result := u.db.Delete(&usersvc.User{}, id)

	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, usersvc.ErrUserNotFound
	}

	return true, nil
}
