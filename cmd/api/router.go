package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalog-backend/internal/shared/middleware"
	"catalog-backend/pkg/container"
)

const probeTimeout = 2 * time.Second

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.ClientIPMiddleware(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler(c))
		v1.GET("/health/db", dbStatsHandler(c))

		setupCategoryRoutes(v1, c)
	}

	return router
}

// Reads are public; every mutation requires an admin bearer token so the
// audit trail always has an actor.
func setupCategoryRoutes(v1 *gin.RouterGroup, c *container.Container) {
	category := v1.Group("/categories")
	{
		category.GET("", c.CategoryHandler.List)
		category.GET("/tree", c.CategoryHandler.GetTree)
		category.GET("/stats", c.CategoryHandler.GetStats)
		category.GET("/:id", c.CategoryHandler.GetByID)
		category.GET("/:id/path", c.CategoryHandler.GetPath)
		category.GET("/by-slug/:slug", c.CategoryHandler.GetBySlug)
	}

	admin := v1.Group("/categories")
	admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
	{
		admin.POST("", c.CategoryHandler.Create)
		admin.PUT("/:id", c.CategoryHandler.Update)
		admin.PATCH("/:id/parent", c.CategoryHandler.Move)
		admin.POST("/:id/activate", c.CategoryHandler.Activate)
		admin.POST("/:id/deactivate", c.CategoryHandler.Deactivate)
		admin.DELETE("/:id", c.CategoryHandler.Delete)
	}
}

// healthHandler probes postgres and redis. Postgres being down makes the
// whole service unavailable; a dead cache only degrades it.
func healthHandler(app *container.Container) gin.HandlerFunc {
	probe := func(ctx context.Context, ping func(context.Context) error) string {
		if ping == nil {
			return "disconnected"
		}
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()
		if err := ping(probeCtx); err != nil {
			return "error: " + err.Error()
		}
		return "ok"
	}

	return func(c *gin.Context) {
		var dbPing, cachePing func(context.Context) error
		if app.DB != nil && app.DB.Pool != nil {
			dbPing = app.DB.HealthCheck
		}
		if app.Cache != nil {
			cachePing = app.Cache.Ping
		}

		dbStatus := probe(c.Request.Context(), dbPing)
		cacheStatus := probe(c.Request.Context(), cachePing)

		status, code := "ok", http.StatusOK
		if dbStatus != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		} else if cacheStatus != "ok" {
			status = "degraded"
		}

		c.JSON(code, gin.H{
			"status":    status,
			"version":   app.Config.App.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"services": gin.H{
				"postgres": dbStatus,
				"redis":    cacheStatus,
			},
		})
	}
}

// dbStatsHandler exposes connection pool numbers for operators.
func dbStatsHandler(app *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		if app.DB == nil || app.DB.Pool == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not connected"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var version string
		if err := app.DB.Pool.QueryRow(ctx, "SELECT version()").Scan(&version); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		stats, err := app.DB.Stats()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"postgres_version": version,
			"pool":             stats,
		})
	}
}
