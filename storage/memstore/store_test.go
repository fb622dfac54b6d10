package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/aiblog/storage"
	"github.com/cppla/aiblog/storage/storagetest"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.PostStore { return New() })
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	p, err := s.Create(ctx, storage.PostFields{Title: "t", Body: "<p>b</p>"})
	require.NoError(t, err)
	p.Title = "mutated"

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}
