package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appsvc "recipeshare/internal/app"
	"recipeshare/internal/bootstrap"
	"recipeshare/internal/pkg/upload"
	"recipeshare/internal/repository"
	"recipeshare/internal/transport/http/handler"
	"recipeshare/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.RequestLog(app.Logger), gin.Recovery())
	// Open to any origin, as the upstream frontend expects.
	router.Use(cors.Default())

	// Uploaded files are served from the per-entity static folders.
	router.Static("/static/user", app.Uploads.Dir(upload.KindUser))
	router.Static("/static/recipe", app.Uploads.Dir(upload.KindRecipe))

	userRepo := repository.NewUserRepository(app.DB)
	recipeRepo := repository.NewRecipeRepository(app.DB)
	authService := appsvc.NewAuthService(
		userRepo,
		app.Uploads,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireHour)*time.Hour,
	)
	recipeService := appsvc.NewRecipeService(recipeRepo, app.Uploads)

	authHandler := handler.NewAuthHandler(authService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	healthHandler := handler.NewHealthHandler(app)

	auth := middleware.Auth(app.Config.Auth.JWTSecret, userRepo)

	router.GET("/healthz", healthHandler.Check)
	router.GET("/public", handler.Public)
	router.POST("/public", handler.Public)
	router.GET("/private", auth, handler.Private)

	api := router.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)

	api.POST("/add_recipe", auth, recipeHandler.Create)
	api.GET("/recipes", auth, recipeHandler.List)
	api.GET("/recipes/:id", auth, recipeHandler.Get)
	api.PUT("/update_recipe/:id", auth, recipeHandler.Update)
	api.DELETE("/delete_recipe/:id", auth, recipeHandler.Delete)

	api.PUT("/update_profile", auth, authHandler.UpdateProfile)
	api.GET("/user/:id", auth, authHandler.GetUser)

	return router
}
