package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	ginCors "github.com/rs/cors/wrapper/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"glana/api/handlers"
	"glana/api/middleware"
	"glana/db"
	_ "glana/docs"
	"glana/services"
)

// Deps bundles the services the router wires into handlers.
type Deps struct {
	Items  *services.ItemService
	Themes *services.ThemeService
	Stats  *services.StatsService
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestTrace())
	r.Use(middleware.RequestLoggingMiddleware())

	// 확장 프로그램이 임의 출처에서 호출하므로 모든 origin을 허용한다.
	r.Use(ginCors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		if err := db.Client().Ping(ctx, readpref.Primary()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes. 조회는 공개, 변경은 공유 시크릿 Bearer 토큰을 요구한다.
	api := r.Group("/api/v1")
	{
		api.GET("/items", handlers.ListItemsHandler(deps.Items))
		api.GET("/items/:id", handlers.GetItemHandler(deps.Items))
		api.GET("/suggestions", handlers.SuggestionsHandler(deps.Items))
		api.GET("/themes", handlers.ListThemesHandler(deps.Themes))
		api.GET("/stats", handlers.GetStatsHandler(deps.Stats))

		authed := api.Group("")
		authed.Use(middleware.APIKeyAuthMiddleware())
		{
			authed.POST("/items", handlers.CaptureItemHandler(deps.Items))
			authed.POST("/items/from-url", handlers.CaptureItemFromURLHandler(deps.Items))
			authed.PATCH("/items/:id", handlers.UpdateItemHandler(deps.Items))
			authed.DELETE("/items/:id", handlers.DeleteItemHandler(deps.Items))
			authed.POST("/themes", handlers.CreateThemeHandler(deps.Themes))
			authed.PATCH("/themes/:id", handlers.UpdateThemeHandler(deps.Themes))
			authed.DELETE("/themes/:id", handlers.DeleteThemeHandler(deps.Themes))
		}
	}

	return r
}
