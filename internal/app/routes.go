package app

import (
	"github.com/gin-gonic/gin"
	"github.com/inkwell/core/internal/middleware"
	"github.com/inkwell/core/internal/modules/auth/auth"
	"github.com/inkwell/core/internal/modules/content/category"
	"github.com/inkwell/core/internal/modules/content/note"
	"github.com/inkwell/core/internal/modules/processing/ai"
	"github.com/inkwell/core/internal/modules/writer/doc"
	"github.com/inkwell/core/internal/modules/writer/project"
	pkgredis "github.com/inkwell/core/internal/pkg/redis"
	"github.com/inkwell/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) error {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth())
	api.Use(middleware.RateLimit(rc))

	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	categorySvc := category.NewService(db, a.logger)
	if err := categorySvc.EnsureGlobalCatalog(); err != nil {
		return err
	}
	authSvc := auth.NewService(db)
	noteSvc := note.NewService(db, categorySvc)
	projectSvc := project.NewService(db)
	docSvc := doc.NewService(db, projectSvc)
	generator := ai.NewGeminiGenerator(a.cfg.AI)
	aiSvc := ai.NewService(db, generator, projectSvc, categorySvc)

	auth.NewHandler(authSvc).RegisterRoutes(api, authMW)
	category.NewHandler(categorySvc).RegisterRoutes(api, authMW)
	note.NewHandler(noteSvc).RegisterRoutes(api, authMW)
	project.NewHandler(projectSvc).RegisterRoutes(api, authMW)
	doc.NewHandler(docSvc).RegisterRoutes(api, authMW)
	ai.NewHandler(aiSvc).RegisterRoutes(api, authMW)

	return nil
}
