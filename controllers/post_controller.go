package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cppla/aiblog/middleware"
	"github.com/cppla/aiblog/models"
	"github.com/cppla/aiblog/services"
	"github.com/cppla/aiblog/storage"
)

// PostController serves the blog pages for reading, writing, editing and deleting posts.
type PostController struct {
	site  Site
	posts *services.PostService
	views *services.ViewCounter
	log   *zap.Logger
}

// NewPostController creates a new PostController instance.
func NewPostController(site Site, posts *services.PostService, views *services.ViewCounter, log *zap.Logger) *PostController {
	return &PostController{site: site, posts: posts, views: views, log: log}
}

// Index lists every post.
func (p *PostController) Index(ctx *gin.Context) {
	posts, err := p.posts.ListAll(ctx.Request.Context())
	if err != nil {
		p.fail(ctx, err, "failed to list posts")
		return
	}
	ctx.HTML(http.StatusOK, "index.html", p.site.page("", gin.H{"Posts": posts}))
}

// ShowPost renders a single post and counts the read.
func (p *PostController) ShowPost(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}
	views, err := p.views.Incr(ctx.Request.Context(), post.ID)
	if err != nil {
		p.log.Warn("view counter unavailable", zap.Uint("id", post.ID), zap.Error(err))
	}
	ctx.HTML(http.StatusOK, "post.html", p.site.page(post.Title, gin.H{"Post": post, "Views": views}))
}

// NewPostForm renders an empty editor.
func (p *PostController) NewPostForm(ctx *gin.Context) {
	p.renderForm(ctx, http.StatusOK, "New Post", "/new-post", services.PostForm{}, nil)
}

// CreatePost handles the editor submission for a new post.
func (p *PostController) CreatePost(ctx *gin.Context) {
	form, ok := p.bindForm(ctx)
	if !ok {
		return
	}

	_, err := p.posts.SubmitNewPost(ctx.Request.Context(), form)
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		p.renderForm(ctx, http.StatusBadRequest, "New Post", "/new-post", form, verr.Fields)
	case err != nil:
		p.fail(ctx, err, "failed to create post")
	default:
		ctx.Redirect(http.StatusFound, "/")
	}
}

// EditPostForm renders the editor prefilled with the stored post.
func (p *PostController) EditPostForm(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}
	form := services.PostForm{
		Title:    post.Title,
		Subtitle: post.Subtitle,
		Author:   post.Author,
		ImgURL:   post.ImgURL,
		Body:     post.Body,
	}
	p.renderForm(ctx, http.StatusOK, "Edit Post", editAction(post.ID), form, nil)
}

// UpdatePost handles the editor submission for an existing post.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		p.renderError(ctx, http.StatusNotFound, "post not found")
		return
	}
	form, ok := p.bindForm(ctx)
	if !ok {
		return
	}

	post, err := p.posts.SubmitPostEdit(ctx.Request.Context(), id, form)
	var verr *services.ValidationError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		p.renderError(ctx, http.StatusNotFound, "post not found")
	case errors.As(err, &verr):
		p.renderForm(ctx, http.StatusBadRequest, "Edit Post", editAction(id), form, verr.Fields)
	case err != nil:
		p.fail(ctx, err, "failed to update post")
	default:
		ctx.Redirect(http.StatusFound, "/post/"+strconv.FormatUint(uint64(post.ID), 10))
	}
}

// DeletePost removes a post and its view counter.
func (p *PostController) DeletePost(ctx *gin.Context) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		p.renderError(ctx, http.StatusNotFound, "post not found")
		return
	}
	err := p.posts.RemovePost(ctx.Request.Context(), id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		p.renderError(ctx, http.StatusNotFound, "post not found")
		return
	case err != nil:
		p.fail(ctx, err, "failed to delete post")
		return
	}
	if err := p.views.Forget(ctx.Request.Context(), id); err != nil {
		p.log.Warn("failed to drop view counter", zap.Uint("id", id), zap.Error(err))
	}
	ctx.Redirect(http.StatusFound, "/")
}

func (p *PostController) loadPost(ctx *gin.Context) (*models.BlogPost, bool) {
	id, ok := parseID(ctx.Param("id"))
	if !ok {
		p.renderError(ctx, http.StatusNotFound, "post not found")
		return nil, false
	}
	post, err := p.posts.GetByID(ctx.Request.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		p.renderError(ctx, http.StatusNotFound, "post not found")
		return nil, false
	}
	if err != nil {
		p.fail(ctx, err, "failed to load post")
		return nil, false
	}
	return post, true
}

// bindForm collects the submitted fields by name; repeated fields keep their first value.
func (p *PostController) bindForm(ctx *gin.Context) (services.PostForm, bool) {
	if err := ctx.Request.ParseForm(); err != nil {
		p.renderError(ctx, http.StatusBadRequest, "invalid form submission")
		return services.PostForm{}, false
	}
	fields := make(map[string]string, len(ctx.Request.PostForm))
	for name := range ctx.Request.PostForm {
		fields[name] = ctx.Request.PostForm.Get(name)
	}
	return services.PostFormFromMap(fields), true
}

func (p *PostController) renderForm(ctx *gin.Context, status int, heading, action string, form services.PostForm, fieldErrs map[string]string) {
	if fieldErrs == nil {
		fieldErrs = map[string]string{}
	}
	ctx.HTML(status, "make-post.html", p.site.page(heading, gin.H{
		"Heading": heading,
		"Action":  action,
		"Form":    form,
		"Errors":  fieldErrs,
	}))
}

func (p *PostController) renderError(ctx *gin.Context, status int, message string) {
	ctx.HTML(status, "error.html", p.site.page(http.StatusText(status), gin.H{
		"Status":  status,
		"Message": message,
	}))
}

// fail logs an unexpected store error and answers with a generic 500 page.
func (p *PostController) fail(ctx *gin.Context, err error, message string) {
	p.log.Error(message, zap.String("request_id", middleware.RequestIDFrom(ctx)), zap.Error(err))
	p.renderError(ctx, http.StatusInternalServerError, "something went wrong, please try again later")
}

func editAction(id uint) string {
	return "/edit-post/" + strconv.FormatUint(uint64(id), 10)
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
