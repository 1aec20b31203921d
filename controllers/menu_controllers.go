package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lunch-vote/services"
	"github.com/yeremiapane/lunch-vote/utils"
)

type MenuController struct {
	Service *services.MenuService
}

func NewMenuController(svc *services.MenuService) *MenuController {
	return &MenuController{Service: svc}
}

// GetAllMenus
func (mc *MenuController) GetAllMenus(c *gin.Context) {
	menus, err := mc.Service.ListAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", menus)
}

// GetMenusForDate lists the menus of ?day=YYYY-MM-DD, today by default.
func (mc *MenuController) GetMenusForDate(c *gin.Context) {
	menus, err := mc.Service.ListForDate(c.Request.Context(), c.Query("day"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus for date", menus)
}

// GetResultForDate returns the winning menu of ?day= with its vote count.
func (mc *MenuController) GetResultForDate(c *gin.Context) {
	result, err := mc.Service.ResultForDate(c.Request.Context(), c.Query("day"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Voting result", result)
}

// AddMenu
func (mc *MenuController) AddMenu(c *gin.Context) {
	var req struct {
		Name       string          `json:"name" binding:"required,max=100"`
		Restaurant uint            `json:"restaurant" binding:"required"`
		MenuData   json.RawMessage `json:"menu_data"`
		MenuDate   string          `json:"menu_date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	menu, err := mc.Service.Submit(c.Request.Context(), services.MenuInput{
		Name:         req.Name,
		RestaurantID: req.Restaurant,
		MenuData:     req.MenuData,
		MenuDate:     req.MenuDate,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu created", menu)
}
