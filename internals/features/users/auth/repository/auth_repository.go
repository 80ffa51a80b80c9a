// internals/features/users/auth/repository/auth_repository.go
package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	userModel "tilawahku_backend/internals/features/users/user/model"
)

/* ====================== USER ====================== */

func FindUserByUserName(db *gorm.DB, userName string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_name = ?", userName).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByUserNameLight hanya mengambil kolom untuk verifikasi login.
func FindUserByUserNameLight(db *gorm.DB, userName string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Select("user_id", "user_password", "user_is_active", "user_role").
		Where("user_name = ?", userName).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(db *gorm.DB, user *userModel.UserModel) error {
	return db.Create(user).Error
}
