package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sheetbrief/core/internal/middleware"
	"github.com/sheetbrief/core/internal/modules/report/digest"
	"github.com/sheetbrief/core/internal/modules/report/objectstore"
	"github.com/sheetbrief/core/internal/modules/report/summarize"
	"github.com/sheetbrief/core/internal/modules/system/health"
	pkgmail "github.com/sheetbrief/core/internal/pkg/mail"
	pkgredis "github.com/sheetbrief/core/internal/pkg/redis"
	"github.com/sheetbrief/core/internal/pkg/response"
	"github.com/sheetbrief/core/internal/pkg/taskqueue"
)

func (a *App) registerRoutes(rc *pkgredis.Client) error {
	r := a.router

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	appInfo := gin.H{
		"name":     "sheetbrief-core",
		"version":  "1.0.0",
		"homepage": "https://github.com/sheetbrief/core",
	}

	// Rate limiting and idempotence run on every route (requires Redis).
	r.Use(middleware.RateLimit(rc.Raw()))
	r.Use(middleware.Idempotence(rc.Raw()))

	sender, err := pkgmail.New(pkgmail.BuildConfig(a.cfg.Mail))
	if err != nil {
		return fmt.Errorf("mail: %w", err)
	}

	fetcher := objectstore.New(a.cfg.Storage)
	summarizer := summarize.NewService(a.cfg.AI, a.cfg.Pipeline, a.logger)
	taskSvc := taskqueue.NewService(rc)

	digestSvc := digest.NewService(fetcher, summarizer, sender, a.cfg, taskSvc, a.logger)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, appInfo)
	})

	api := r.Group("/api/v2")
	api.GET("", func(c *gin.Context) {
		c.JSON(200, appInfo)
	})

	digest.NewHandler(digestSvc).RegisterRoutes(api)
	health.RegisterRoutes(api, rc)

	return nil
}
