package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cppla/aiblog/config"
	"github.com/cppla/aiblog/controllers"
	"github.com/cppla/aiblog/middleware"
	"github.com/cppla/aiblog/services"
	"github.com/cppla/aiblog/templates"
	"github.com/cppla/aiblog/utils"
)

// Deps are the long-lived collaborators the router hands to controllers.
type Deps struct {
	Config config.AppConfig
	// DB backs page view aggregation and stats; nil disables both.
	DB    *gorm.DB
	Posts *services.PostService
	Views *services.ViewCounter
	Log   *zap.Logger
	// AccessLog receives one line per request; defaults to Log.
	AccessLog *zap.Logger
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(deps Deps) (*gin.Engine, error) {
	cfg := deps.Config
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	accessLog := deps.AccessLog
	if accessLog == nil {
		accessLog = log
	}

	pages, err := templates.Load()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.SetHTMLTemplate(pages)
	r.Use(ginzap.Ginzap(accessLog, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(accessLog, true))
	r.Use(middleware.RequestID())
	if deps.DB != nil {
		r.Use(middleware.PageViewRecorder(deps.DB, log))
	}

	site := controllers.SiteFromConfig(cfg)
	postController := controllers.NewPostController(site, deps.Posts, deps.Views, log)
	pageController := controllers.NewPageController(site)
	apiController := controllers.NewAPIController(deps.Posts, deps.Views, log)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	limit := middleware.RateLimit(cfg.RateLimitPerMinute)

	r.GET("/", postController.Index)
	r.GET("/post/:id", postController.ShowPost)
	r.GET("/new-post", postController.NewPostForm)
	r.POST("/new-post", limit, postController.CreatePost)
	r.GET("/edit-post/:id", postController.EditPostForm)
	r.POST("/edit-post/:id", limit, postController.UpdatePost)
	r.POST("/delete/:id", limit, postController.DeletePost)
	r.GET("/about", pageController.About)
	r.GET("/contact", pageController.Contact)

	api := r.Group("/api/v1")
	api.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	postsGroup := api.Group("/posts")
	postsGroup.GET("", apiController.ListPosts)
	postsGroup.GET("/:id", apiController.GetPost)
	postsGroup.POST("", limit, apiController.CreatePost)
	postsGroup.PUT("/:id", limit, apiController.UpdatePost)
	postsGroup.DELETE("/:id", limit, apiController.DeletePost)

	if deps.DB != nil {
		statsController := controllers.NewStatsController(deps.DB)
		api.GET("/stats", statsController.GetStats)
	}

	r.NoRoute(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
			return
		}
		pageController.NotFound(ctx)
	})

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
