package router

import (
	"net/http"

	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/auth"
	"github.com/karyawanmag/content-api/internal/service"
	"github.com/karyawanmag/content-api/pkg/response"
	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	e        *echo.Echo
	accounts *service.AccountService
	authmw   echo.MiddlewareFunc
}

func NewAuthRouter(e *echo.Echo, accounts *service.AccountService, authmw echo.MiddlewareFunc) *AuthRouter {
	return &AuthRouter{
		e:        e,
		accounts: accounts,
		authmw:   authmw,
	}
}

func (r *AuthRouter) Bind() {
	g := r.e.Group("/auth")

	g.POST("/signup", r.signupHandler)
	g.POST("/login", r.loginHandler)
	g.GET("/me", r.meHandler, r.authmw)
	g.PATCH("/me", r.updateMeHandler, r.authmw)
	g.PATCH("/password", r.changePasswordHandler, r.authmw)
}

type signupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// signupHandler godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Success 201 {object} response.Envelope
// @Router /auth/signup [post]
func (r *AuthRouter) signupHandler(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	user, token, err := r.accounts.Signup(c.Request().Context(), service.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, "Account created", echo.Map{
		"user":  user,
		"token": token,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginHandler godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Success 200 {object} response.Envelope
// @Router /auth/login [post]
func (r *AuthRouter) loginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	user, token, err := r.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Logged in", echo.Map{
		"user":  user,
		"token": token,
	})
}

func (r *AuthRouter) meHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}
	return response.OK(c, http.StatusOK, "Account fetched", user)
}

type updateMeRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (r *AuthRouter) updateMeHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}

	var req updateMeRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	updated, err := r.accounts.UpdateName(c.Request().Context(), user.ID, req.FirstName, req.LastName)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Account updated", updated)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (r *AuthRouter) changePasswordHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	if err := r.accounts.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Password changed", nil)
}
