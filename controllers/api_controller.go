package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/aiblog/middleware"
	"github.com/cppla/aiblog/services"
	"github.com/cppla/aiblog/storage"
	"github.com/cppla/aiblog/utils"
)

// APIController exposes posts as JSON under /api/v1.
type APIController struct {
	posts *services.PostService
	views *services.ViewCounter
	log   *zap.Logger
}

func NewAPIController(posts *services.PostService, views *services.ViewCounter, log *zap.Logger) *APIController {
	return &APIController{posts: posts, views: views, log: log}
}

// ListPosts returns every post ordered by id.
func (a *APIController) ListPosts(ctx *gin.Context) {
	posts, err := a.posts.ListAll(ctx.Request.Context())
	if err != nil {
		a.fail(ctx, err, 50001, "failed to list posts")
		return
	}
	utils.Success(ctx, gin.H{"items": posts})
}

// GetPost returns one post with its view count.
func (a *APIController) GetPost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	post, err := a.posts.GetByID(ctx.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	if err != nil {
		a.fail(ctx, err, 50002, "failed to load post")
		return
	}
	views, err := a.views.Get(ctx.Request.Context(), id)
	if err != nil {
		a.log.Warn("view counter unavailable", zap.Uint("id", id), zap.Error(err))
	}
	utils.Success(ctx, gin.H{"post": post, "views": views})
}

// CreatePost accepts a JSON PostForm.
func (a *APIController) CreatePost(ctx *gin.Context) {
	var form services.PostForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	post, err := a.posts.SubmitNewPost(ctx.Request.Context(), form)
	if err != nil {
		a.writeError(ctx, err, 50003, "failed to create post")
		return
	}
	utils.Created(ctx, gin.H{"post": post})
}

// UpdatePost replaces the editable fields of a post.
func (a *APIController) UpdatePost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	var form services.PostForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}
	post, err := a.posts.SubmitPostEdit(ctx.Request.Context(), id, form)
	if err != nil {
		a.writeError(ctx, err, 50004, "failed to update post")
		return
	}
	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost removes a post.
func (a *APIController) DeletePost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
		return
	}
	if err := a.posts.RemovePost(ctx.Request.Context(), id); err != nil {
		a.writeError(ctx, err, 50005, "failed to delete post")
		return
	}
	if err := a.views.Forget(ctx.Request.Context(), id); err != nil {
		a.log.Warn("failed to drop view counter", zap.Uint("id", id), zap.Error(err))
	}
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

func (a *APIController) writeError(ctx *gin.Context, err error, code int, message string) {
	var verr *services.ValidationError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
	case errors.Is(err, storage.ErrDuplicateTitle) && errors.As(err, &verr):
		utils.Respond(ctx, http.StatusConflict, 40901, "title already in use", gin.H{"fields": verr.Fields})
	case errors.As(err, &verr):
		utils.Respond(ctx, http.StatusBadRequest, 40002, "validation failed", gin.H{"fields": verr.Fields})
	default:
		a.fail(ctx, err, code, message)
	}
}

func (a *APIController) fail(ctx *gin.Context, err error, code int, message string) {
	a.log.Error(message, zap.String("request_id", middleware.RequestIDFrom(ctx)), zap.Error(err))
	utils.Error(ctx, http.StatusInternalServerError, code, message)
}
