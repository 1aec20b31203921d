package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/lunch-vote/models"
	"github.com/yeremiapane/lunch-vote/repository"
	"github.com/yeremiapane/lunch-vote/utils"
)

const msgDuplicateVote = "The fields user, menu, vote_date must make a unique set."

// VoteInput is a ballot. The voter is always the authenticated user, never a
// value from the request body. An empty VoteDate means today.
type VoteInput struct {
	MenuID   uint
	VoteDate string
}

type VoteService struct {
	votes repository.VoteRepository
	menus repository.MenuRepository

	Now func() time.Time
}

func NewVoteService(votes repository.VoteRepository, menus repository.MenuRepository) *VoteService {
	return &VoteService{votes: votes, menus: menus, Now: time.Now}
}

// Cast records one vote of userID. A second vote for the same menu on the
// same date is rejected by the storage unique index.
func (s *VoteService) Cast(ctx context.Context, userID uint, in VoteInput) (*models.Vote, error) {
	verr := &ValidationError{}

	voteDate := models.NewDate(s.Now())
	if raw := strings.TrimSpace(in.VoteDate); raw != "" {
		d, err := models.ParseDate(raw)
		if err != nil {
			verr.Add("vote_date", err.Error())
		} else {
			voteDate = d
		}
	}

	if in.MenuID == 0 {
		verr.Add("menu", "This field is required.")
	} else if _, err := s.menus.FindByID(ctx, in.MenuID); err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("look up menu %d: %w", in.MenuID, err)
		}
		verr.Add("menu", invalidPK(in.MenuID))
	}

	if err := verr.errOrNil(); err != nil {
		return nil, err
	}

	vote := &models.Vote{
		UserID:   userID,
		MenuID:   in.MenuID,
		VoteDate: voteDate,
	}
	if err := s.votes.InsertUnique(ctx, vote); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			utils.InfoLogger.WithFields(logrus.Fields{
				"user_id":   userID,
				"menu_id":   in.MenuID,
				"vote_date": voteDate.String(),
			}).Info("duplicate vote rejected")
			return nil, NewValidationError(utils.NonFieldErrors, msgDuplicateVote)
		}
		return nil, fmt.Errorf("cast vote: %w", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"vote_id":   vote.ID,
		"user_id":   userID,
		"menu_id":   vote.MenuID,
		"vote_date": vote.VoteDate.String(),
	}).Info("vote cast")
	return vote, nil
}
