package repository

import (
	"context"
	"fmt"

	"github.com/yeremiapane/lunch-vote/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MenuRepoImpl struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &MenuRepoImpl{DB: db}
}

func (r *MenuRepoImpl) FindAll(ctx context.Context) ([]models.Menu, error) {
	menus := []models.Menu{}
	if err := r.DB.WithContext(ctx).Order("id").Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("find menus: %w", err)
	}
	return menus, nil
}

func (r *MenuRepoImpl) FindByDate(ctx context.Context, day models.Date) ([]models.Menu, error) {
	menus := []models.Menu{}
	if err := r.DB.WithContext(ctx).
		Where("menu_date = ?", day).
		Order("id").
		Find(&menus).Error; err != nil {
		return nil, fmt.Errorf("find menus for %s: %w", day, err)
	}
	return menus, nil
}

func (r *MenuRepoImpl) FindByID(ctx context.Context, id uint) (*models.Menu, error) {
	var menu models.Menu
	if err := r.DB.WithContext(ctx).First(&menu, id).Error; err != nil {
		return nil, translate(err)
	}
	return &menu, nil
}

func (r *MenuRepoImpl) Insert(ctx context.Context, menu *models.Menu) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(menu).Error)
}

func (r *MenuRepoImpl) MostVoted(ctx context.Context, day models.Date) (*models.MenuResult, error) {
	var tally struct {
		MenuID    uint
		VoteCount int64
	}
	err := r.DB.WithContext(ctx).
		Model(&models.Menu{}).
		Select("menus.id AS menu_id, COUNT(votes.id) AS vote_count").
		Joins("LEFT JOIN votes ON votes.menu_id = menus.id").
		Where("menus.menu_date = ?", day).
		Group("menus.id").
		Order("vote_count DESC").
		Order("menus.id ASC").
		Limit(1).
		Scan(&tally).Error
	if err != nil {
		return nil, fmt.Errorf("tally votes for %s: %w", day, err)
	}
	if tally.MenuID == 0 {
		return nil, ErrNotFound
	}

	menu, err := r.FindByID(ctx, tally.MenuID)
	if err != nil {
		return nil, err
	}
	return &models.MenuResult{Menu: *menu, VoteCount: tally.VoteCount}, nil
}
