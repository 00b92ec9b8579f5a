package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/service"
	"github.com/karyawanmag/content-api/pkg/response"
	"github.com/labstack/echo/v4"
)

// SettingsRouter exposes the editorial configuration and the super-admin
// user administration routes.
type SettingsRouter struct {
	e        *echo.Echo
	settings *service.SettingsService
	authmw   echo.MiddlewareFunc
	adminmw  echo.MiddlewareFunc
	supermw  echo.MiddlewareFunc
}

func NewSettingsRouter(e *echo.Echo, settings *service.SettingsService, authmw, adminmw, supermw echo.MiddlewareFunc) *SettingsRouter {
	return &SettingsRouter{
		e:        e,
		settings: settings,
		authmw:   authmw,
		adminmw:  adminmw,
		supermw:  supermw,
	}
}

func (r *SettingsRouter) Bind() {
	g := r.e.Group("/settings", r.authmw)

	g.PUT("/featured-article/:articleID", r.setFeaturedHandler, r.adminmw)
	g.PUT("/top-pick-articles", r.setTopPicksHandler, r.adminmw)
	g.GET("/users", r.usersHandler, r.supermw)
	g.PATCH("/users/:id/promote", r.promoteHandler, r.supermw)
	g.PATCH("/users/:id/demote", r.demoteHandler, r.supermw)
}

func (r *SettingsRouter) setFeaturedHandler(c echo.Context) error {
	articleID, err := pathID(c, "articleID")
	if err != nil {
		return err
	}

	if err := r.settings.SetFeaturedArticle(c.Request().Context(), articleID); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Featured article set", nil)
}

type setTopPicksRequest struct {
	ArticleIDs    []string `json:"articleIds"`
	DisplayOrders []int    `json:"displayOrders"`
}

func (r *SettingsRouter) setTopPicksHandler(c echo.Context) error {
	var req setTopPicksRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	ids := make([]uuid.UUID, len(req.ArticleIDs))
	for i, raw := range req.ArticleIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return apperr.NewValidation("invalid article id: " + raw)
		}
		ids[i] = id
	}

	if err := r.settings.SetTopPicks(c.Request().Context(), ids, req.DisplayOrders); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Top picks set", nil)
}

func (r *SettingsRouter) usersHandler(c echo.Context) error {
	users, err := r.settings.Users(c.Request().Context())
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Users fetched", users)
}

func (r *SettingsRouter) promoteHandler(c echo.Context) error {
	return r.setAdminHandler(c, true)
}

func (r *SettingsRouter) demoteHandler(c echo.Context) error {
	return r.setAdminHandler(c, false)
}

func (r *SettingsRouter) setAdminHandler(c echo.Context, admin bool) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := r.settings.SetUserAdmin(c.Request().Context(), id, admin)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "User updated", user)
}
