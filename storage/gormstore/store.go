package gormstore

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/cppla/aiblog/models"
	"github.com/cppla/aiblog/storage"
)

// Store implements storage.PostStore on top of any gorm dialect.
type Store struct {
	db *gorm.DB
}

var _ storage.PostStore = (*Store)(nil)

// New migrates the blog_post table and returns a store bound to db.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&models.BlogPost{}); err != nil {
		return nil, errors.Wrap(err, "migrate blog_post")
	}
	return &Store{db: db}, nil
}

func (s *Store) ListAll(ctx context.Context) ([]*models.BlogPost, error) {
	var posts []*models.BlogPost
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&posts).Error; err != nil {
		return nil, errors.Wrap(err, "list posts")
	}
	return posts, nil
}

func (s *Store) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storage.ErrNotFound
		}
		return nil, errors.Wrapf(err, "get post %d", id)
	}
	return &post, nil
}

func (s *Store) Create(ctx context.Context, fields storage.PostFields) (*models.BlogPost, error) {
	post := &models.BlogPost{
		Title:    fields.Title,
		Subtitle: fields.Subtitle,
		Date:     fields.Date,
		Body:     fields.Body,
		Author:   fields.Author,
		ImgURL:   fields.ImgURL,
	}

	// The title check and the insert share one transaction; the unique index
	// catches a writer that slips in between on dialects without serializable reads.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureTitleFree(tx, fields.Title, 0); err != nil {
			return err
		}
		return tx.Create(post).Error
	})
	if err != nil {
		return nil, translate(err, "create post")
	}
	return post, nil
}

func (s *Store) Update(ctx context.Context, id uint, fields storage.PostFields) (*models.BlogPost, error) {
	var post models.BlogPost
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&post, id).Error; err != nil {
			return err
		}
		if err := ensureTitleFree(tx, fields.Title, id); err != nil {
			return err
		}
		post.Title = fields.Title
		post.Subtitle = fields.Subtitle
		post.Body = fields.Body
		post.Author = fields.Author
		post.ImgURL = fields.ImgURL
		return tx.Save(&post).Error
	})
	if err != nil {
		return nil, translate(err, "update post")
	}
	return &post, nil
}

func (s *Store) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.BlogPost{}, id)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "delete post %d", id)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ensureTitleFree fails with ErrDuplicateTitle when a row other than exceptID holds title.
func ensureTitleFree(tx *gorm.DB, title string, exceptID uint) error {
	var n int64
	q := tx.Model(&models.BlogPost{}).Where("title = ?", title)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return storage.ErrDuplicateTitle
	}
	return nil
}

func translate(err error, op string) error {
	switch {
	case stderrors.Is(err, storage.ErrDuplicateTitle), isUniqueViolation(err):
		return storage.ErrDuplicateTitle
	case stderrors.Is(err, gorm.ErrRecordNotFound):
		return storage.ErrNotFound
	default:
		return errors.Wrap(err, op)
	}
}

// isUniqueViolation recognises unique index errors from every supported dialect,
// including drivers that do not implement gorm's error translation.
func isUniqueViolation(err error) bool {
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
