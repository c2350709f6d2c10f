package controllers

import (
	"github.com/fsdevblog/tinylink/internal/config"
	"github.com/fsdevblog/tinylink/internal/controllers/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouterParams зависимости роутера.
type RouterParams struct {
	LinkService LinkStore
	PingService ConnectionChecker
	AppConf     config.Config
	Logger      *logrus.Logger
}

// SetupRouter собирает gin роутер со всеми маршрутами приложения.
func SetupRouter(params RouterParams) *gin.Engine {
	mustRegisterValidators()

	r := gin.New()
	r.ContextWithFallback = true
	r.SetHTMLTemplate(templates())

	r.Use(middlewares.LoggerMiddleware(params.Logger))
	r.Use(gin.Recovery())
	r.Use(middlewares.GzipMiddleware())

	pages := NewPagesController(params.LinkService, params.AppConf.BaseURL)
	links := NewLinksController(params.LinkService)
	redirect := NewRedirectController(params.LinkService)
	ping := NewPingController(params.PingService)

	r.GET("/", pages.Index)
	r.POST("/", pages.Create)
	r.GET("/code/:code", pages.Stats)
	r.POST("/code/:code/delete", pages.Delete)
	r.GET("/ping", ping.Ping)
	r.GET("/:code", redirect.Redirect)

	api := r.Group("/api/links")
	api.GET("", links.List)
	api.POST("", links.Create)
	api.GET("/:code", links.Get)
	api.DELETE("/:code", links.Delete)

	return r
}
