package repository

import (
	"context"
	"fmt"

	"github.com/yeremiapane/lunch-vote/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VoteRepoImpl struct {
	DB *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &VoteRepoImpl{DB: db}
}

func (r *VoteRepoImpl) InsertUnique(ctx context.Context, vote *models.Vote) error {
	return translate(r.DB.WithContext(ctx).Omit(clause.Associations).Create(vote).Error)
}

func (r *VoteRepoImpl) CountByMenu(ctx context.Context, menuID uint) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&models.Vote{}).
		Where("menu_id = ?", menuID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count votes for menu %d: %w", menuID, err)
	}
	return count, nil
}
