package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LinksController JSON API управления ссылками (/api/links).
type LinksController struct {
	store LinkStore
}

func NewLinksController(store LinkStore) *LinksController {
	return &LinksController{store: store}
}

// List GET /api/links. Отдает массив ссылок, новые первыми.
func (c *LinksController) List(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	links, err := c.store.List(reqCtx)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, links)
}

// Create POST /api/links. Принимает {"url": "...", "code": "..."}, code необязателен.
//
// Ответы:
//   - 201 и созданная ссылка
//   - 400 некорректный url или код
//   - 409 код уже занят
//   - 500 ошибка хранилища
func (c *LinksController) Create(ctx *gin.Context) {
	var req createLinkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		abortWithError(ctx, bindingError(err))
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, err := c.store.Create(reqCtx, req.URL, req.Code)
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, link)
}

// Get GET /api/links/:code.
func (c *LinksController) Get(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, err := c.store.Get(reqCtx, ctx.Param("code"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, link)
}

// Delete DELETE /api/links/:code. 204 при успехе, 404 если ссылки нет.
func (c *LinksController) Delete(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	if err := c.store.Delete(reqCtx, ctx.Param("code")); err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
