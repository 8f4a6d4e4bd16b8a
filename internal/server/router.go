package server

import (
	"log/slog"
	"net/http"

	"boardapi/internal/handler"
	"boardapi/internal/middleware"
	"boardapi/internal/policy"
	"boardapi/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "boardapi/docs"
)

type Deps struct {
	Users     *repository.UserRepository
	Boards    *repository.BoardRepository
	Items     *repository.ItemRepository
	Policy    *policy.Policy
	JWTSecret string
	Logger    *slog.Logger
}

func NewRouter(d Deps) (*gin.Engine, error) {
	if err := handler.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger), middleware.Metrics())

	userHandler := handler.NewUserHandler(d.Users, d.Policy.Users)
	boardHandler := handler.NewBoardHandler(d.Boards, d.Policy.Boards)
	naiveHandler := handler.NewNaiveHandler(d.Boards)
	itemHandler := handler.NewItemHandler(d.Items, d.Boards, d.Policy.Items)

	// Public routes
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/naive_view/", naiveHandler.Boards)

	authenticated := r.Group("/")
	authenticated.Use(middleware.Authenticate(d.JWTSecret, d.Users))

	items := authenticated.Group("/api/items")
	items.Use(middleware.RequirePermission(d.Policy.Items.Permission))
	{
		items.GET("/", itemHandler.List)
		items.GET("/random/", itemHandler.Random)
		items.PUT("/:id/", itemHandler.Update)
		items.PATCH("/:id/", itemHandler.PartialUpdate)
		items.GET("/:id/with_details/", itemHandler.WithDetails)
	}

	users := authenticated.Group("/")
	users.Use(middleware.RequirePermission(d.Policy.Users.Permission))
	{
		users.GET("/rest/list_users/", userHandler.ListUsernames)
		users.GET("/generic/users/", userHandler.List)
		users.GET("/generic/users/:email/", userHandler.Retrieve)
	}

	authenticated.GET("/generic/boards/",
		middleware.RequirePermission(d.Policy.Boards.Permission),
		boardHandler.List,
	)

	return r, nil
}
