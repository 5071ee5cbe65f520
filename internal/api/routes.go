package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jroosing/tldclaim/internal/api/handlers"
	"github.com/jroosing/tldclaim/internal/api/middleware"
	"github.com/jroosing/tldclaim/internal/config"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/jroosing/tldclaim/internal/api/docs" // swagger docs
)

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Optional API key protection.
	if cfg != nil && cfg.API.APIKey != "" {
		api.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}
	api.Use(middleware.CallerAddress())

	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)

	api.POST("/tlds", h.RegisterTLD)
	api.GET("/tlds/:name", h.GetTLD)
	api.GET("/tlds/:name/history", h.TLDHistory)

	api.POST("/root/subnodes", h.SetSubnode)
	api.GET("/root/controllers", h.ListControllers)
	api.POST("/root/controllers", h.AddController)
	api.DELETE("/root/controllers/:address", h.RemoveController)
	api.POST("/root/transfer", h.TransferRoot)

	api.PUT("/oracle/records", h.PutOracleRecord)
}
