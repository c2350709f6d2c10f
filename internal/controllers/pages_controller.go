package controllers

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// neverClicked подпись для ссылок без переходов.
const neverClicked = "Never"

// PagesController HTML интерфейс: дашборд, страница статистики и формы.
type PagesController struct {
	store   LinkStore
	baseURL string
}

func NewPagesController(store LinkStore, baseURL string) *PagesController {
	return &PagesController{store: store, baseURL: baseURL}
}

// linkView ссылка с готовым коротким адресом для шаблонов.
type linkView struct {
	models.Link
	ShortURL string
}

type indexPage struct {
	Links []linkView
	Form  createLinkRequest
	Error string
}

type statsPage struct {
	Link linkView
}

type errorPage struct {
	Status  int
	Message string
}

// Index GET /. Дашборд со списком ссылок и формой создания.
func (c *PagesController) Index(ctx *gin.Context) {
	c.renderIndex(ctx, http.StatusOK, indexPage{})
}

// Create POST /. Создает ссылку из формы и возвращает на дашборд (303).
// При ошибке дашборд перерисовывается с сообщением и соответствующим статусом.
func (c *PagesController) Create(ctx *gin.Context) {
	var form createLinkRequest
	if err := ctx.ShouldBind(&form); err != nil {
		c.renderFormError(ctx, form, bindingError(err))
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	if _, err := c.store.Create(reqCtx, form.URL, form.Code); err != nil {
		c.renderFormError(ctx, form, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/")
}

// Stats GET /code/:code. Страница статистики ссылки.
func (c *PagesController) Stats(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, err := c.store.Get(reqCtx, ctx.Param("code"))
	if err != nil {
		c.abortWithPage(ctx, err)
		return
	}
	ctx.HTML(http.StatusOK, "stats.tmpl", statsPage{Link: c.view(ctx, *link)})
}

// Delete POST /code/:code/delete. Удаляет ссылку и возвращает на дашборд (303).
func (c *PagesController) Delete(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	if err := c.store.Delete(reqCtx, ctx.Param("code")); err != nil {
		c.abortWithPage(ctx, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, "/")
}

func (c *PagesController) renderFormError(ctx *gin.Context, form createLinkRequest, err error) {
	status, public := errorStatus(err)
	_ = ctx.Error(err)
	c.renderIndex(ctx, status, indexPage{Form: form, Error: public.Error()})
}

func (c *PagesController) renderIndex(ctx *gin.Context, status int, page indexPage) {
	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	links, err := c.store.List(reqCtx)
	if err != nil {
		c.abortWithPage(ctx, err)
		return
	}
	page.Links = make([]linkView, 0, len(links))
	for _, l := range links {
		page.Links = append(page.Links, c.view(ctx, l))
	}
	ctx.HTML(status, "index.tmpl", page)
}

// abortWithPage то же что abortWithError, но ответом будет HTML страница.
func (c *PagesController) abortWithPage(ctx *gin.Context, err error) {
	status, public := errorStatus(err)
	_ = ctx.Error(err)
	ctx.HTML(status, "error.tmpl", errorPage{Status: status, Message: public.Error()})
	ctx.Abort()
}

func (c *PagesController) view(ctx *gin.Context, l models.Link) linkView {
	return linkView{Link: l, ShortURL: shortURL(ctx.Request, c.baseURL, l.Code)}
}

// templates шаблоны страниц с функциями форматирования.
func templates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"formatTime":  formatTime,
		"lastClicked": formatLastClicked,
	}).ParseFS(templatesFS, "templates/*.tmpl"))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatLastClicked(t *time.Time) string {
	if t == nil {
		return neverClicked
	}
	return formatTime(*t)
}
