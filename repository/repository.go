package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/yeremiapane/lunch-vote/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned by Find* methods when no row matches.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned by inserts rejected by a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

type RestaurantRepository interface {
	FindAll(ctx context.Context) ([]models.Restaurant, error)
	FindByID(ctx context.Context, id uint) (*models.Restaurant, error)
	Insert(ctx context.Context, restaurant *models.Restaurant) error
}

type MenuRepository interface {
	FindAll(ctx context.Context) ([]models.Menu, error)
	FindByDate(ctx context.Context, day models.Date) ([]models.Menu, error)
	FindByID(ctx context.Context, id uint) (*models.Menu, error)
	Insert(ctx context.Context, menu *models.Menu) error
	// MostVoted returns the menu dated day with the highest vote count. Menus
	// without votes count as zero; ties go to the lowest menu id. It returns
	// ErrNotFound when no menu exists for day.
	MostVoted(ctx context.Context, day models.Date) (*models.MenuResult, error)
}

type VoteRepository interface {
	// InsertUnique inserts the vote or fails with ErrDuplicate when the same
	// (user, menu, vote_date) already exists. The check is the unique index
	// itself, never a prior read.
	InsertUnique(ctx context.Context, vote *models.Vote) error
	CountByMenu(ctx context.Context, menuID uint) (int64, error)
}

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// FindEmployeeByEmail resolves a user that owns an employee profile by the
	// user's email address.
	FindEmployeeByEmail(ctx context.Context, email string) (*models.User, error)
	FindProfileByUserID(ctx context.Context, userID uint) (*models.EmployeeProfile, error)
	// InsertUnique creates the user, and its employee profile when withProfile
	// is set, in one transaction. A taken username yields ErrDuplicate.
	InsertUnique(ctx context.Context, user *models.User, withProfile bool) error
}

// translate maps gorm errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueViolation(err):
		return ErrDuplicate
	default:
		return err
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
