package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/lunch-vote/config"
	"github.com/yeremiapane/lunch-vote/controllers"
	"github.com/yeremiapane/lunch-vote/middlewares"
	"github.com/yeremiapane/lunch-vote/policy"
	"github.com/yeremiapane/lunch-vote/repository"
	"github.com/yeremiapane/lunch-vote/services"
	"github.com/yeremiapane/lunch-vote/testutil"
	"github.com/yeremiapane/lunch-vote/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "controller-secret"

type apiResponse struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *services.AuthService
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	db := testutil.SetupTestDB(t)
	cfg := &config.Config{
		JWTSecret:       testSecret,
		AccessTokenTTL:  5 * time.Minute,
		RefreshTokenTTL: time.Hour,
	}

	restaurantRepo := repository.NewRestaurantRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	userRepo := repository.NewUserRepository(db)

	auth := services.NewAuthService(userRepo, cfg)
	auth.Cost = bcrypt.MinCost

	restaurantCtrl := controllers.NewRestaurantController(services.NewRestaurantService(restaurantRepo))
	menuCtrl := controllers.NewMenuController(services.NewMenuService(menuRepo, restaurantRepo))
	voteCtrl := controllers.NewVoteController(services.NewVoteService(voteRepo, menuRepo))
	userCtrl := controllers.NewUserController(auth)

	authenticated := middlewares.Require(policy.Authenticated(), policy.APIVersion())

	r := gin.New()
	r.Use(middlewares.AuthMiddleware(testSecret))
	r.POST("/register/", middlewares.Require(policy.APIVersion()), userCtrl.Register)
	r.POST("/api/token/", userCtrl.Token)
	r.POST("/api/token/refresh/", userCtrl.RefreshToken)
	r.GET("/restaurants/get_all_restaurants", restaurantCtrl.GetAllRestaurants)
	r.POST("/restaurants/add_restaurants", authenticated, restaurantCtrl.AddRestaurant)
	r.GET("/menu/get_all_menus", menuCtrl.GetAllMenus)
	r.GET("/menu/get_menus_for_date", menuCtrl.GetMenusForDate)
	r.GET("/menu/get_result_for_date", menuCtrl.GetResultForDate)
	r.POST("/menu/add_menu", authenticated, menuCtrl.AddMenu)
	r.POST("/vote", middlewares.Require(policy.Authenticated(), policy.APIVersion(), policy.CanVote(userRepo)), voteCtrl.CastVote)

	return &testServer{router: r, db: db, auth: auth}
}

// do sends a JSON request. token and version are optional headers.
func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers map[string]string) (int, apiResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

// login registers username with userType and returns auth headers for it.
func (s *testServer) login(t *testing.T, username, userType string) map[string]string {
	t.Helper()
	user, err := s.auth.Register(context.Background(), services.RegisterInput{
		Username: username,
		Password: "pw-" + username,
		Email:    username + "@example.com",
		UserType: userType,
	})
	require.NoError(t, err)

	token, err := utils.GenerateToken(user.ID, utils.TokenTypeAccess, []byte(testSecret), time.Minute)
	require.NoError(t, err)
	return map[string]string{"Authorization": "Bearer " + token}
}

func withVersion(headers map[string]string, version string) map[string]string {
	out := map[string]string{policy.APIVersionHeader: version}
	for k, v := range headers {
		out[k] = v
	}
	return out
}

func decodeData(t *testing.T, resp apiResponse, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, v))
}
