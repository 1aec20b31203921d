package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/lunch-vote/config"
	"github.com/yeremiapane/lunch-vote/models"
	"github.com/yeremiapane/lunch-vote/repository"
	"github.com/yeremiapane/lunch-vote/testutil"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, time.May, 10, 12, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fixture struct {
	restaurantRepo repository.RestaurantRepository
	menuRepo       repository.MenuRepository
	voteRepo       repository.VoteRepository
	userRepo       repository.UserRepository

	restaurants *RestaurantService
	menus       *MenuService
	votes       *VoteService
	auth        *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)

	f := &fixture{
		restaurantRepo: repository.NewRestaurantRepository(db),
		menuRepo:       repository.NewMenuRepository(db),
		voteRepo:       repository.NewVoteRepository(db),
		userRepo:       repository.NewUserRepository(db),
	}
	f.restaurants = NewRestaurantService(f.restaurantRepo)
	f.menus = NewMenuService(f.menuRepo, f.restaurantRepo)
	f.menus.Now = clock
	f.votes = NewVoteService(f.voteRepo, f.menuRepo)
	f.votes.Now = clock
	f.auth = NewAuthService(f.userRepo, &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  5 * time.Minute,
		RefreshTokenTTL: time.Hour,
	})
	f.auth.Cost = bcrypt.MinCost
	return f
}

func (f *fixture) restaurant(t *testing.T, name string) *models.Restaurant {
	t.Helper()
	r, err := f.restaurants.Create(context.Background(), name)
	require.NoError(t, err)
	return r
}

func (f *fixture) menu(t *testing.T, restaurantID uint, name, day string) *models.Menu {
	t.Helper()
	m, err := f.menus.Submit(context.Background(), MenuInput{
		Name:         name,
		RestaurantID: restaurantID,
		MenuData:     json.RawMessage(`{"main":"` + name + `"}`),
		MenuDate:     day,
	})
	require.NoError(t, err)
	return m
}

func (f *fixture) user(t *testing.T, username, userType string) *models.User {
	t.Helper()
	u, err := f.auth.Register(context.Background(), RegisterInput{
		Username: username,
		Password: "secret-pass",
		Email:    username + "@example.com",
		UserType: userType,
	})
	require.NoError(t, err)
	return u
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}
