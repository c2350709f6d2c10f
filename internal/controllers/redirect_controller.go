package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type RedirectController struct {
	store LinkStore
}

func NewRedirectController(store LinkStore) *RedirectController {
	return &RedirectController{store: store}
}

// Redirect GET /:code. Засчитывает переход и отвечает 307 на целевой адрес, 404 если кода нет.
func (c *RedirectController) Redirect(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, err := c.store.Resolve(reqCtx, ctx.Param("code"))
	if err != nil {
		abortWithError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusTemporaryRedirect, link.URL)
}
