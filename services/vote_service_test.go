package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/lunch-vote/models"
	"github.com/yeremiapane/lunch-vote/utils"
)

func TestCastVote(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.restaurant(t, "Bistro")
	m := f.menu(t, r.ID, "Set A", "")
	ann := f.user(t, "ann", models.UserTypeEmployee)

	vote, err := f.votes.Cast(ctx, ann.ID, VoteInput{MenuID: m.ID})
	require.NoError(t, err)
	assert.NotZero(t, vote.ID)
	assert.Equal(t, ann.ID, vote.UserID)
	assert.Equal(t, "2024-05-10", vote.VoteDate.String())

	count, err := f.voteRepo.CountByMenu(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCastVoteDuplicate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.restaurant(t, "Bistro")
	m := f.menu(t, r.ID, "Set A", "")
	ann := f.user(t, "ann", models.UserTypeEmployee)

	_, err := f.votes.Cast(ctx, ann.ID, VoteInput{MenuID: m.ID, VoteDate: "2024-05-10"})
	require.NoError(t, err)

	_, err = f.votes.Cast(ctx, ann.ID, VoteInput{MenuID: m.ID})
	assert.Equal(t, msgDuplicateVote, fieldErrors(t, err)[utils.NonFieldErrors])

	_, err = f.votes.Cast(ctx, ann.ID, VoteInput{MenuID: m.ID, VoteDate: "2024-05-11"})
	assert.NoError(t, err, "another date is a different ballot")

	count, err := f.voteRepo.CountByMenu(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCastVoteValidation(t *testing.T) {
	f := newFixture(t)
	ann := f.user(t, "ann", models.UserTypeEmployee)

	_, err := f.votes.Cast(context.Background(), ann.ID, VoteInput{MenuID: 42})
	assert.Equal(t, `Invalid pk "42" - object does not exist.`, fieldErrors(t, err)["menu"])

	_, err = f.votes.Cast(context.Background(), ann.ID, VoteInput{})
	assert.Equal(t, "This field is required.", fieldErrors(t, err)["menu"])

	r := f.restaurant(t, "Bistro")
	m := f.menu(t, r.ID, "Set A", "")
	_, err = f.votes.Cast(context.Background(), ann.ID, VoteInput{MenuID: m.ID, VoteDate: "2024/05/10"})
	assert.Equal(t, models.ErrDateFormat.Error(), fieldErrors(t, err)["vote_date"])
}
