package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/auth"
	"github.com/karyawanmag/content-api/internal/service"
	"github.com/karyawanmag/content-api/pkg/response"
	"github.com/labstack/echo/v4"
)

type CommentRouter struct {
	e        *echo.Echo
	comments *service.CommentService
	authmw   echo.MiddlewareFunc
}

func NewCommentRouter(e *echo.Echo, comments *service.CommentService, authmw echo.MiddlewareFunc) *CommentRouter {
	return &CommentRouter{
		e:        e,
		comments: comments,
		authmw:   authmw,
	}
}

func (r *CommentRouter) Bind() {
	g := r.e.Group("/comments")

	g.GET("/article/:articleID", r.listHandler)
	g.GET("/replies/:commentID", r.repliesHandler)
	g.POST("/article/:articleID", r.createHandler, r.authmw)
	g.PATCH("/:commentID", r.updateHandler, r.authmw)
	g.DELETE("/:commentID", r.deleteHandler, r.authmw)
}

func (r *CommentRouter) listHandler(c echo.Context) error {
	articleID, err := pathID(c, "articleID")
	if err != nil {
		return err
	}

	comments, err := r.comments.ListForArticle(c.Request().Context(), articleID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Comments fetched", comments)
}

func (r *CommentRouter) repliesHandler(c echo.Context) error {
	commentID, err := pathID(c, "commentID")
	if err != nil {
		return err
	}

	replies, err := r.comments.ListReplies(c.Request().Context(), commentID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Replies fetched", replies)
}

type createCommentRequest struct {
	Content         string  `json:"content"`
	ParentCommentID *string `json:"parentCommentId"`
}

func (r *CommentRouter) createHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}
	articleID, err := pathID(c, "articleID")
	if err != nil {
		return err
	}

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	var parentID *uuid.UUID
	if req.ParentCommentID != nil {
		id, err := uuid.Parse(*req.ParentCommentID)
		if err != nil {
			return apperr.NewValidation("invalid parentCommentId")
		}
		parentID = &id
	}

	comment, err := r.comments.Create(c.Request().Context(), user, articleID, req.Content, parentID)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusCreated, "Comment created", comment)
}

type updateCommentRequest struct {
	Content string `json:"content"`
}

func (r *CommentRouter) updateHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}
	commentID, err := pathID(c, "commentID")
	if err != nil {
		return err
	}

	var req updateCommentRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	comment, err := r.comments.UpdateContent(c.Request().Context(), user, commentID, req.Content)
	if err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Comment updated", comment)
}

func (r *CommentRouter) deleteHandler(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return apperr.NewUnauthorized("missing bearer token")
	}
	commentID, err := pathID(c, "commentID")
	if err != nil {
		return err
	}

	if err := r.comments.Delete(c.Request().Context(), user, commentID); err != nil {
		return err
	}
	return response.OK(c, http.StatusOK, "Comment deleted", nil)
}
