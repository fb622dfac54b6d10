package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/cppla/aiblog/models"
	"github.com/cppla/aiblog/storage"
)

// Store is an in-process storage.PostStore. Ids are never reused.
type Store struct {
	mu     sync.RWMutex
	posts  map[uint]*models.BlogPost
	titles map[string]uint
	nextID uint
}

var _ storage.PostStore = (*Store)(nil)

func New() *Store {
	return &Store{
		posts:  make(map[uint]*models.BlogPost),
		titles: make(map[string]uint),
		nextID: 1,
	}
}

func (s *Store) ListAll(_ context.Context) ([]*models.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.BlogPost, 0, len(s.posts))
	for _, p := range s.posts {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetByID(_ context.Context, id uint) (*models.BlogPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) Create(_ context.Context, f storage.PostFields) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.titles[f.Title]; taken {
		return nil, storage.ErrDuplicateTitle
	}
	p := &models.BlogPost{
		ID:       s.nextID,
		Title:    f.Title,
		Subtitle: f.Subtitle,
		Date:     f.Date,
		Body:     f.Body,
		Author:   f.Author,
		ImgURL:   f.ImgURL,
	}
	s.nextID++
	s.posts[p.ID] = p
	s.titles[p.Title] = p.ID

	cp := *p
	return &cp, nil
}

func (s *Store) Update(_ context.Context, id uint, f storage.PostFields) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if owner, taken := s.titles[f.Title]; taken && owner != id {
		return nil, storage.ErrDuplicateTitle
	}
	delete(s.titles, p.Title)
	p.Title = f.Title
	p.Subtitle = f.Subtitle
	p.Body = f.Body
	p.Author = f.Author
	p.ImgURL = f.ImgURL
	s.titles[p.Title] = id

	cp := *p
	return &cp, nil
}

func (s *Store) Delete(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.titles, p.Title)
	delete(s.posts, id)
	return nil
}
