// Package router binds the HTTP surface to the services. Routers follow
// the struct-with-Bind convention: construct with dependencies, then Bind
// onto the echo instance.
package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/auth"
	"github.com/karyawanmag/content-api/internal/media"
	"github.com/karyawanmag/content-api/internal/service"
	"github.com/karyawanmag/content-api/pkg/pagination"
	"github.com/karyawanmag/content-api/pkg/response"
	"github.com/labstack/echo/v4"
)

type ArticleRouter struct {
	e        *echo.Echo
	articles *service.ArticleService
	settings *service.SettingsService
	authmw   echo.MiddlewareFunc
}

func NewArticleRouter(e *echo.Echo, articles *service.ArticleService, settings *service.SettingsService, authmw echo.MiddlewareFunc) *ArticleRouter {
	return &ArticleRouter{
		e:        e,
		articles: articles,
		settings: settings,
		authmw:   authmw,
	}
}

func (r *ArticleRouter) Bind() {
	g := r.e.Group("/articles")

	g.GET("", r.listHandler)
	g.GET("/search", r.searchHandler)
	g.GET("/trending", r.trendingHandler)
	g.GET("/top-categories", r.topCategoriesHandler)
	g.GET("/all-categories", r.allCategoriesHandler)
	g.GET("/featured", r.featuredHandler)
	g.GET("/top-picks", r.topPicksHandler)
	g.GET("/mine", r.mineHandler, r.authmw)
	g.GET("/:id", r.getHandler)

	g.POST("", r.createHandler, r.authmw)
	g.POST("/upload", r.uploadHandler, r.authmw)
	g.PATCH("/:id", r.updateHandler, r.authmw)
	g.DELETE("/:id", r.deleteHandler, r.authmw)
}

func bindPage(c echo.Context) pagination.OffsetRequest {
	var page pagination.OffsetRequest
	if v := c.QueryParam("page"); v != "" {
		page.Page, _ = strconv.Atoi(v)
	}
	if v := c.QueryParam("limit"); v != "" {
		page.Limit, _ = strconv.Atoi(v)
	}
	_ = page.Validate()
	return page
}

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apperr.NewValidation("invalid " + name)
	}
	return id, nil
}

// listHandler godoc
// @Summary List articles
// @Tags articles
// @Param category query string false "Category filter"
// @Param author query string false "Author ID filter"
// @Param title query string false "Title substring filter"
// @Param type query string false "Kind filter: video or article"
// @Param sort query string false "Sort field, '-' prefix for descending"
// @Param page query int false "Page (1-indexed)"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /articles [get]
func (r *ArticleRouter) listHandler(c echo.Context) error {
	q := service.ListArticlesQuery{
		Category: c.QueryParam("category"),
		Title:    c.QueryParam("title"),
		Type:     c.QueryParam("type"),
		Sort:     c.QueryParam("sort"),
		Page:     bindPage(c),
	}
	if q.Title == "" {
		q.Title = c.QueryParam("search")
	}
	if author := c.QueryParam("author"); author != "" {
		id, err := uuid.Parse(author)
		if err != nil {
			return apperr.NewValidation("invalid author id")
		}
		q.AuthorID = &id
	}

	res, err := r.articles.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Articles fetched", echo.Map{
		"articles":   res.Items,
		"pagination": res.Meta,
	})
}

// searchHandler godoc
// @Summary Full-text search over articles
// @Tags articles
// @Param q query string true "Search query"
// @Success 200 {object} response.Envelope
// @Router /articles/search [get]
func (r *ArticleRouter) searchHandler(c echo.Context) error {
	res, err := r.articles.Search(c.Request().Context(), c.QueryParam("q"), bindPage(c))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Articles fetched", echo.Map{
		"articles":   res.Items,
		"pagination": res.Meta,
	})
}

func (r *ArticleRouter) getHandler(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	article, err := r.articles.View(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Article fetched", article)
}

func (r *ArticleRouter) mineHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}

	articles, err := r.articles.Mine(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Articles fetched", articles)
}

func (r *ArticleRouter) trendingHandler(c echo.Context) error {
	window := service.DefaultTrendingWindow
	if v := c.QueryParam("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days <= 0 {
			return apperr.NewValidation("days must be a positive number")
		}
		window = time.Duration(days) * 24 * time.Hour
	}

	articles, err := r.articles.Trending(c.Request().Context(), window)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Trending articles fetched", articles)
}

func (r *ArticleRouter) topCategoriesHandler(c echo.Context) error {
	categories, err := r.articles.TopCategories(c.Request().Context(), bindPage(c))
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Top categories fetched", categories)
}

func (r *ArticleRouter) allCategoriesHandler(c echo.Context) error {
	categories, err := r.articles.AllCategories(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Categories fetched", categories)
}

func (r *ArticleRouter) featuredHandler(c echo.Context) error {
	article, err := r.settings.FeaturedArticle(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Featured article fetched", article)
}

func (r *ArticleRouter) topPicksHandler(c echo.Context) error {
	articles, err := r.settings.TopPickArticles(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Top picks fetched", articles)
}

type createArticleRequest struct {
	Title        string  `json:"title" form:"title"`
	Content      string  `json:"content" form:"content"`
	Category     string  `json:"category" form:"category"`
	Src          *string `json:"src"`
	VideoArticle bool    `json:"videoArticle" form:"videoArticle"`
}

// createHandler godoc
// @Summary Create an article
// @Tags articles
// @Security BearerAuth
// @Accept json,mpfd
// @Success 201 {object} response.Envelope
// @Router /articles [post]
func (r *ArticleRouter) createHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}

	var req createArticleRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	in := service.CreateArticleInput{
		Title:        req.Title,
		Content:      req.Content,
		Category:     req.Category,
		Src:          req.Src,
		VideoArticle: req.VideoArticle,
	}

	// A multipart "src" file is uploaded first and becomes the primary
	// media, its kind deciding the video flag.
	if file, err := c.FormFile("src"); err == nil {
		src, err := file.Open()
		if err != nil {
			return apperr.NewValidationWrap("unreadable upload", err)
		}
		defer src.Close()

		upload, err := r.articles.UploadMedia(c.Request().Context(), src, file.Filename)
		if err != nil {
			return err
		}
		in.Src = &upload.URL
		in.VideoArticle = upload.Resource == media.ResourceVideo
	}

	article, err := r.articles.Create(c.Request().Context(), user, in)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, "Article created", article)
}

type updateArticleRequest struct {
	Title        *string `json:"title"`
	Content      *string `json:"content"`
	Category     *string `json:"category"`
	Src          *string `json:"src"`
	VideoArticle *bool   `json:"videoArticle"`
}

func (r *ArticleRouter) updateHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateArticleRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	article, err := r.articles.Update(c.Request().Context(), user, id, service.UpdateArticleInput{
		Title:        req.Title,
		Content:      req.Content,
		Category:     req.Category,
		Src:          req.Src,
		VideoArticle: req.VideoArticle,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Article updated", article)
}

func (r *ArticleRouter) deleteHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := r.articles.Delete(c.Request().Context(), user, id); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Article deleted", nil)
}

// uploadHandler accepts an inline-content image and returns its URL.
func (r *ArticleRouter) uploadHandler(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return apperr.NewValidation("file is required")
	}

	src, err := file.Open()
	if err != nil {
		return apperr.NewValidationWrap("unreadable upload", err)
	}
	defer src.Close()

	upload, err := r.articles.UploadMedia(c.Request().Context(), src, file.Filename)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, "Media uploaded", echo.Map{
		"url":      upload.URL,
		"publicId": upload.PublicID,
	})
}
