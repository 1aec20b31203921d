package repository

import (
	"context"
	"fmt"

	"github.com/yeremiapane/lunch-vote/models"
	"gorm.io/gorm"
)

type RestaurantRepoImpl struct {
	DB *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &RestaurantRepoImpl{DB: db}
}

func (r *RestaurantRepoImpl) FindAll(ctx context.Context) ([]models.Restaurant, error) {
	restaurants := []models.Restaurant{}
	if err := r.DB.WithContext(ctx).Order("id").Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("find restaurants: %w", err)
	}
	return restaurants, nil
}

func (r *RestaurantRepoImpl) FindByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.DB.WithContext(ctx).First(&restaurant, id).Error; err != nil {
		return nil, translate(err)
	}
	return &restaurant, nil
}

func (r *RestaurantRepoImpl) Insert(ctx context.Context, restaurant *models.Restaurant) error {
	return translate(r.DB.WithContext(ctx).Create(restaurant).Error)
}
