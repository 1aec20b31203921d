package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lunch-vote/middlewares"
	"github.com/yeremiapane/lunch-vote/services"
	"github.com/yeremiapane/lunch-vote/utils"
)

type VoteController struct {
	Service *services.VoteService
}

func NewVoteController(svc *services.VoteService) *VoteController {
	return &VoteController{Service: svc}
}

// CastVote records a vote for the authenticated user. A "user" field in the
// body is ignored.
func (vc *VoteController) CastVote(c *gin.Context) {
	var req struct {
		Menu     uint   `json:"menu" binding:"required"`
		VoteDate string `json:"vote_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	vote, err := vc.Service.Cast(c.Request.Context(), middlewares.CurrentUserID(c), services.VoteInput{
		MenuID:   req.Menu,
		VoteDate: req.VoteDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Vote recorded", vote)
}
