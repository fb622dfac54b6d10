package storage

import (
	"context"
	"errors"

	"github.com/cppla/aiblog/models"
)

var (
	// ErrNotFound is returned when no post exists with the requested id.
	ErrNotFound = errors.New("post not found")
	// ErrDuplicateTitle is returned when another post already uses the title.
	ErrDuplicateTitle = errors.New("post title already in use")
)

// PostFields is the full set of caller-supplied columns of a post.
// Date is only read on create.
type PostFields struct {
	Title    string
	Subtitle string
	Date     string
	Body     string
	Author   string
	ImgURL   string
}

// PostStore persists blog posts and owns title uniqueness and id existence checks.
// Every mutating call is atomic: either all fields are written or none are.
type PostStore interface {
	// ListAll returns every post ordered by id. It always reads the backing store.
	ListAll(ctx context.Context) ([]*models.BlogPost, error)
	GetByID(ctx context.Context, id uint) (*models.BlogPost, error)
	Create(ctx context.Context, fields PostFields) (*models.BlogPost, error)
	// Update overwrites title, subtitle, body, author and img_url. Id and date never change.
	Update(ctx context.Context, id uint, fields PostFields) (*models.BlogPost, error)
	Delete(ctx context.Context, id uint) error
}
