package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/lunch-vote/models"
	"github.com/yeremiapane/lunch-vote/repository"
	"github.com/yeremiapane/lunch-vote/utils"
)

const maxNameLength = 100

type RestaurantService struct {
	restaurants repository.RestaurantRepository
}

func NewRestaurantService(restaurants repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurants: restaurants}
}

func (s *RestaurantService) List(ctx context.Context) ([]models.Restaurant, error) {
	return s.restaurants.FindAll(ctx)
}

func (s *RestaurantService) Create(ctx context.Context, name string) (*models.Restaurant, error) {
	verr := &ValidationError{}
	validateName(verr, name)
	if err := verr.errOrNil(); err != nil {
		return nil, err
	}

	restaurant := &models.Restaurant{Name: strings.TrimSpace(name)}
	if err := s.restaurants.Insert(ctx, restaurant); err != nil {
		return nil, fmt.Errorf("create restaurant: %w", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"restaurant_id": restaurant.ID,
		"name":          restaurant.Name,
	}).Info("restaurant created")
	return restaurant, nil
}

func validateName(verr *ValidationError, name string) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		verr.Add("name", "This field may not be blank.")
	case utf8.RuneCountInString(name) > maxNameLength:
		verr.Add("name", fmt.Sprintf("Ensure this field has no more than %d characters.", maxNameLength))
	}
}
