package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cppla/aiblog/models"
	"github.com/cppla/aiblog/storage"
	"github.com/cppla/aiblog/utils"
)

// DateLayout is the long-form publish date stamped on new posts, e.g. "March 03, 2024".
const DateLayout = "January 02, 2006"

// PostService turns submitted forms into stored posts: validate, sanitize, date-stamp, persist.
type PostService struct {
	store    storage.PostStore
	validate *validator.Validate
	now      func() time.Time
	log      *zap.Logger
}

// Option customises a PostService.
type Option func(*PostService)

// WithClock overrides the clock used to stamp new posts.
func WithClock(now func() time.Time) Option {
	return func(s *PostService) { s.now = now }
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *PostService) { s.log = log }
}

func NewPostService(store storage.PostStore, opts ...Option) *PostService {
	s := &PostService{
		store:    store,
		validate: newFormValidator(),
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PostService) ListAll(ctx context.Context) ([]*models.BlogPost, error) {
	return s.store.ListAll(ctx)
}

// GetByID returns storage.ErrNotFound for unknown ids.
func (s *PostService) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	return s.store.GetByID(ctx, id)
}

// SubmitNewPost validates and stores a new post dated today.
// Errors: *ValidationError (also for a taken title), or a store failure.
func (s *PostService) SubmitNewPost(ctx context.Context, form PostForm) (*models.BlogPost, error) {
	fields, err := s.prepare(form)
	if err != nil {
		return nil, err
	}
	fields.Date = s.now().Format(DateLayout)

	post, err := s.store.Create(ctx, fields)
	if err != nil {
		return nil, titleTaken(err)
	}
	s.log.Info("post created", zap.Uint("id", post.ID), zap.String("title", post.Title))
	return post, nil
}

// SubmitPostEdit validates and overwrites an existing post, keeping its original date.
// Errors: storage.ErrNotFound, *ValidationError, or a store failure.
func (s *PostService) SubmitPostEdit(ctx context.Context, id uint, form PostForm) (*models.BlogPost, error) {
	fields, err := s.prepare(form)
	if err != nil {
		return nil, err
	}

	post, err := s.store.Update(ctx, id, fields)
	if err != nil {
		return nil, titleTaken(err)
	}
	s.log.Info("post updated", zap.Uint("id", post.ID))
	return post, nil
}

// RemovePost deletes a post; deleting an absent id returns storage.ErrNotFound.
func (s *PostService) RemovePost(ctx context.Context, id uint) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("post deleted", zap.Uint("id", id))
	return nil
}

func (s *PostService) prepare(form PostForm) (storage.PostFields, error) {
	form = form.normalized()
	if err := s.validate.Struct(form); err != nil {
		return storage.PostFields{}, validationErrorFrom(err)
	}

	body := utils.Sanitize(form.Body)
	if strings.TrimSpace(body) == "" {
		return storage.PostFields{}, &ValidationError{
			Fields: map[string]string{"body": "contains no allowed content"},
		}
	}

	return storage.PostFields{
		Title:    form.Title,
		Subtitle: form.Subtitle,
		Body:     body,
		Author:   form.Author,
		ImgURL:   form.ImgURL,
	}, nil
}

func titleTaken(err error) error {
	if errors.Is(err, storage.ErrDuplicateTitle) {
		return &ValidationError{
			Fields: map[string]string{"title": "title already in use"},
			cause:  err,
		}
	}
	return err
}
