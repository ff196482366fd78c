// Package routers assembles the gin engine of the service.
package routers

import (
	"time"

	"github.com/spacekeep/capture-service/internal/app"
	"github.com/spacekeep/capture-service/internal/middleware"
	"github.com/spacekeep/capture-service/internal/routers/api_router"
	"github.com/spacekeep/capture-service/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/items",
		FillInterval: time.Second,
		Capacity:     100,
		Quantum:      100,
	},
	limiter.BucketRule{
		Key:          "/api/sessions",
		FillInterval: time.Second,
		Capacity:     200,
		Quantum:      200,
	},
)

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {
	cfg := appContainer.Config()

	r := gin.New()

	healthHandler := api_router.NewHealthHandler(appContainer)
	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(appContainer.Metrics.Handler()))

	api := r.Group("/api")
	{
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.Server.ContextTimeout) * time.Second))
		api.Use(middleware.Translations(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		spaceHandler := api_router.NewSpaceHandler(appContainer)
		itemHandler := api_router.NewItemHandler(appContainer)
		draftHandler := api_router.NewDraftHandler(appContainer)

		api.POST("/spaces", spaceHandler.Create)
		api.GET("/spaces", spaceHandler.List)
		api.GET("/spaces/:id", spaceHandler.Get)

		api.POST("/items", itemHandler.Create)
		api.GET("/items", itemHandler.List)
		api.GET("/items/:id", itemHandler.Get)
		api.DELETE("/items/:id", itemHandler.Delete)
		api.PUT("/items/:id/undo", itemHandler.Undo)

		api.POST("/sessions", draftHandler.SessionOpen)
		api.DELETE("/sessions/:sid", draftHandler.SessionClose)
		api.POST("/sessions/:sid/drafts", draftHandler.DraftOpen)
		api.PATCH("/sessions/:sid/drafts/:itemId", draftHandler.DraftEdit)
		api.POST("/sessions/:sid/drafts/:itemId/save", draftHandler.DraftSave)
		api.GET("/sessions/:sid/drafts/:itemId", draftHandler.DraftStatus)

		api.GET("/events", appContainer.Events.Serve)
	}

	r.NoRoute(middleware.NoFound())

	return r
}
