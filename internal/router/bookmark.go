package router

import (
	"net/http"

	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/auth"
	"github.com/karyawanmag/content-api/internal/service"
	"github.com/karyawanmag/content-api/pkg/response"
	"github.com/labstack/echo/v4"
)

type BookmarkRouter struct {
	e         *echo.Echo
	bookmarks *service.BookmarkService
	authmw    echo.MiddlewareFunc
}

func NewBookmarkRouter(e *echo.Echo, bookmarks *service.BookmarkService, authmw echo.MiddlewareFunc) *BookmarkRouter {
	return &BookmarkRouter{
		e:         e,
		bookmarks: bookmarks,
		authmw:    authmw,
	}
}

func (r *BookmarkRouter) Bind() {
	g := r.e.Group("/bookmarks", r.authmw)

	g.GET("", r.listHandler)
	g.POST("/:articleID", r.createHandler)
	g.DELETE("/:id", r.deleteHandler)
}

func (r *BookmarkRouter) listHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}

	bookmarks, err := r.bookmarks.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Bookmarks fetched", bookmarks)
}

func (r *BookmarkRouter) createHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}
	articleID, err := pathID(c, "articleID")
	if err != nil {
		return err
	}

	bookmark, err := r.bookmarks.Create(c.Request().Context(), user.ID, articleID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, "Bookmark created", bookmark)
}

func (r *BookmarkRouter) deleteHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := r.bookmarks.Delete(c.Request().Context(), user.ID, id); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Bookmark deleted", nil)
}
