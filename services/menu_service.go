package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/lunch-vote/models"
	"github.com/yeremiapane/lunch-vote/repository"
	"github.com/yeremiapane/lunch-vote/utils"
)

const msgPastMenuDate = "Menu date cannot be in the past."

// MenuInput is a menu submission. An empty MenuDate means today.
type MenuInput struct {
	Name         string
	RestaurantID uint
	MenuData     json.RawMessage
	MenuDate     string
}

type MenuService struct {
	menus       repository.MenuRepository
	restaurants repository.RestaurantRepository

	// Now is the clock used for "today"; tests replace it.
	Now func() time.Time
}

func NewMenuService(menus repository.MenuRepository, restaurants repository.RestaurantRepository) *MenuService {
	return &MenuService{menus: menus, restaurants: restaurants, Now: time.Now}
}

func (s *MenuService) today() models.Date {
	return models.NewDate(s.Now())
}

// resolveDay parses the optional day query value, defaulting to today.
func (s *MenuService) resolveDay(day string) (models.Date, error) {
	day = strings.TrimSpace(day)
	if day == "" {
		return s.today(), nil
	}
	d, err := models.ParseDate(day)
	if err != nil {
		return models.Date{}, NewValidationError("day", err.Error())
	}
	return d, nil
}

func (s *MenuService) ListAll(ctx context.Context) ([]models.Menu, error) {
	return s.menus.FindAll(ctx)
}

func (s *MenuService) ListForDate(ctx context.Context, day string) ([]models.Menu, error) {
	d, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}
	return s.menus.FindByDate(ctx, d)
}

// ResultForDate returns the most voted menu of the day with its vote count.
func (s *MenuService) ResultForDate(ctx context.Context, day string) (*models.MenuResult, error) {
	d, err := s.resolveDay(day)
	if err != nil {
		return nil, err
	}

	result, err := s.menus.MostVoted(ctx, d)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoMenuForDate
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *MenuService) Submit(ctx context.Context, in MenuInput) (*models.Menu, error) {
	verr := &ValidationError{}
	validateName(verr, in.Name)

	data := bytes.TrimSpace(in.MenuData)
	switch {
	case len(data) == 0:
		verr.Add("menu_data", "This field is required.")
	case bytes.Equal(data, []byte("null")):
		verr.Add("menu_data", "This field may not be null.")
	case !json.Valid(data):
		verr.Add("menu_data", "Value must be valid JSON.")
	}

	menuDate := s.today()
	if strings.TrimSpace(in.MenuDate) != "" {
		d, err := models.ParseDate(strings.TrimSpace(in.MenuDate))
		if err != nil {
			verr.Add("menu_date", err.Error())
		} else if d.Before(s.today()) {
			verr.Add("menu_date", msgPastMenuDate)
		} else {
			menuDate = d
		}
	}

	if in.RestaurantID == 0 {
		verr.Add("restaurant", "This field is required.")
	} else if _, err := s.restaurants.FindByID(ctx, in.RestaurantID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("look up restaurant %d: %w", in.RestaurantID, err)
		}
		verr.Add("restaurant", invalidPK(in.RestaurantID))
	}

	if err := verr.errOrNil(); err != nil {
		return nil, err
	}

	menu := &models.Menu{
		Name:         strings.TrimSpace(in.Name),
		RestaurantID: in.RestaurantID,
		MenuData:     json.RawMessage(data),
		MenuDate:     menuDate,
	}
	if err := s.menus.Insert(ctx, menu); err != nil {
		return nil, fmt.Errorf("create menu: %w", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"menu_id":       menu.ID,
		"restaurant_id": menu.RestaurantID,
		"menu_date":     menu.MenuDate.String(),
	}).Info("menu submitted")
	return menu, nil
}

func invalidPK(id uint) string {
	return fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id)
}
