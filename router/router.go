package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/lunch-vote/config"
	"github.com/yeremiapane/lunch-vote/controllers"
	"github.com/yeremiapane/lunch-vote/middlewares"
	"github.com/yeremiapane/lunch-vote/policy"
	"github.com/yeremiapane/lunch-vote/repository"
	"github.com/yeremiapane/lunch-vote/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.CORSOrigins))
	r.Use(middlewares.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow).RateLimit())
	r.Use(middlewares.AuthMiddleware(cfg.JWTSecret))

	// Repositories
	restaurantRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Controllers
	restaurantCtrl := controllers.NewRestaurantController(services.NewRestaurantService(restaurantRepo))
	menuCtrl := controllers.NewMenuController(services.NewMenuService(menuRepo, restaurantRepo))
	voteCtrl := controllers.NewVoteController(services.NewVoteService(voteRepo, menuRepo))
	userCtrl := controllers.NewUserController(services.NewAuthService(userRepo, cfg))

	// Policies
	versioned := middlewares.Require(policy.APIVersion())
	authenticated := middlewares.Require(policy.Authenticated(), policy.APIVersion())
	voter := middlewares.Require(policy.Authenticated(), policy.APIVersion(), policy.CanVote(userRepo))
	authLimiter := middlewares.NewStrictRateLimiter(cfg.AuthRatePerMinute)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Public
	r.POST("/register/", authLimiter, versioned, userCtrl.Register)
	tokenGroup := r.Group("/api/token")
	tokenGroup.Use(authLimiter)
	{
		tokenGroup.POST("/", userCtrl.Token)
		tokenGroup.POST("/refresh/", userCtrl.RefreshToken)
	}

	restaurantGroup := r.Group("/restaurants")
	{
		restaurantGroup.GET("/get_all_restaurants", restaurantCtrl.GetAllRestaurants)
		restaurantGroup.POST("/add_restaurants", authenticated, restaurantCtrl.AddRestaurant)
	}

	menuGroup := r.Group("/menu")
	{
		menuGroup.GET("/get_all_menus", menuCtrl.GetAllMenus)
		menuGroup.GET("/get_menus_for_date", menuCtrl.GetMenusForDate)
		menuGroup.GET("/get_result_for_date", menuCtrl.GetResultForDate)
		menuGroup.POST("/add_menu", authenticated, menuCtrl.AddMenu)
		menuGroup.POST("/add_restaurants", authenticated, restaurantCtrl.AddRestaurant)
	}

	r.POST("/vote", voter, voteCtrl.CastVote)

	return r
}
