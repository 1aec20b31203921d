package repository

import (
	"context"

	"github.com/yeremiapane/lunch-vote/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepoImpl struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepoImpl{DB: db}
}

func (r *UserRepoImpl) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepoImpl) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepoImpl) FindEmployeeByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).
		Joins("JOIN employee_profiles ON employee_profiles.user_id = users.id").
		Where("users.email = ? AND users.email <> ''", email).
		First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepoImpl) FindProfileByUserID(ctx context.Context, userID uint) (*models.EmployeeProfile, error) {
	var profile models.EmployeeProfile
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (r *UserRepoImpl) InsertUnique(ctx context.Context, user *models.User, withProfile bool) error {
	return translate(r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		if !withProfile {
			return nil
		}
		profile := models.EmployeeProfile{UserID: user.ID}
		return tx.Omit(clause.Associations).Create(&profile).Error
	}))
}
