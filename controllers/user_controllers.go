package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lunch-vote/services"
	"github.com/yeremiapane/lunch-vote/utils"
)

type UserController struct {
	Service *services.AuthService
}

func NewUserController(svc *services.AuthService) *UserController {
	return &UserController{Service: svc}
}

// Register creates a basic or employee account.
func (uc *UserController) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required,max=150"`
		Password string `json:"password" binding:"required"`
		Email    string `json:"email" binding:"omitempty,email"`
		UserType string `json:"user_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := uc.Service.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		UserType: req.UserType,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"user_type": req.UserType,
	})
}

// Token exchanges credentials for an access/refresh token pair.
func (uc *UserController) Token(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	pair, err := uc.Service.IssueToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Token issued", pair)
}

// RefreshToken
func (uc *UserController) RefreshToken(c *gin.Context) {
	var input struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	access, err := uc.Service.Refresh(c.Request.Context(), input.Refresh)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Token refreshed", gin.H{"access": access})
}
