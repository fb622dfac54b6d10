// Package storagetest holds the behavioural checks every storage.PostStore must pass.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/aiblog/storage"
)

// Factory returns an empty store for a single test.
type Factory func(t *testing.T) storage.PostStore

func fields(title string) storage.PostFields {
	return storage.PostFields{
		Title:    title,
		Subtitle: "Sub " + title,
		Date:     "March 03, 2024",
		Body:     "<p>body of " + title + "</p>",
		Author:   "Ada",
		ImgURL:   "https://example.com/" + title + ".png",
	}
}

// Run executes the suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("CreateThenGet", func(t *testing.T) { testCreateThenGet(t, newStore(t)) })
	t.Run("DuplicateTitleOnCreate", func(t *testing.T) { testDuplicateTitleOnCreate(t, newStore(t)) })
	t.Run("GetMissing", func(t *testing.T) { testGetMissing(t, newStore(t)) })
	t.Run("UpdateKeepsDateAndID", func(t *testing.T) { testUpdateKeepsDateAndID(t, newStore(t)) })
	t.Run("UpdateMissing", func(t *testing.T) { testUpdateMissing(t, newStore(t)) })
	t.Run("UpdateDuplicateTitle", func(t *testing.T) { testUpdateDuplicateTitle(t, newStore(t)) })
	t.Run("DeleteThenGet", func(t *testing.T) { testDeleteThenGet(t, newStore(t)) })
	t.Run("ListAllOrderedAndFresh", func(t *testing.T) { testListAll(t, newStore(t)) })
	t.Run("IDsNotReused", func(t *testing.T) { testIDsNotReused(t, newStore(t)) })
	t.Run("ConcurrentSameTitle", func(t *testing.T) { testConcurrentSameTitle(t, newStore(t)) })
}

func testCreateThenGet(t *testing.T, s storage.PostStore) {
	ctx := context.Background()
	in := fields("hello")

	created, err := s.Create(ctx, in)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, in.Title, got.Title)
	assert.Equal(t, in.Subtitle, got.Subtitle)
	assert.Equal(t, in.Date, got.Date)
	assert.Equal(t, in.Body, got.Body)
	assert.Equal(t, in.Author, got.Author)
	assert.Equal(t, in.ImgURL, got.ImgURL)
}

func testDuplicateTitleOnCreate(t *testing.T, s storage.PostStore) {
	ctx := context.Background()

	_, err := s.Create(ctx, fields("A"))
	require.NoError(t, err)

	dup := fields("A")
	dup.Subtitle = "other"
	_, err = s.Create(ctx, dup)
	require.ErrorIs(t, err, storage.ErrDuplicateTitle)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Sub A", all[0].Subtitle)
}

func testGetMissing(t *testing.T, s storage.PostStore) {
	_, err := s.GetByID(context.Background(), 4242)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testUpdateKeepsDateAndID(t *testing.T, s storage.PostStore) {
	ctx := context.Background()
	created, err := s.Create(ctx, fields("first"))
	require.NoError(t, err)

	next := storage.PostFields{
		Title:    "renamed",
		Subtitle: "new sub",
		Date:     "January 01, 1999",
		Body:     "<p>new</p>",
		Author:   "Grace",
		ImgURL:   "https://example.com/new.png",
	}
	updated, err := s.Update(ctx, created.ID, next)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.Date, updated.Date)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Date, got.Date)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, "new sub", got.Subtitle)
	assert.Equal(t, "<p>new</p>", got.Body)
	assert.Equal(t, "Grace", got.Author)
	assert.Equal(t, "https://example.com/new.png", got.ImgURL)

	// keeping its own title is not a collision
	_, err = s.Update(ctx, created.ID, next)
	require.NoError(t, err)

	// the old title is free again
	_, err = s.Create(ctx, fields("first"))
	require.NoError(t, err)
}

func testUpdateMissing(t *testing.T, s storage.PostStore) {
	_, err := s.Update(context.Background(), 99, fields("ghost"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testUpdateDuplicateTitle(t *testing.T, s storage.PostStore) {
	ctx := context.Background()
	a, err := s.Create(ctx, fields("a"))
	require.NoError(t, err)
	b, err := s.Create(ctx, fields("b"))
	require.NoError(t, err)

	clash := fields("a")
	clash.Subtitle = "should not be written"
	_, err = s.Update(ctx, b.ID, clash)
	require.ErrorIs(t, err, storage.ErrDuplicateTitle)

	got, err := s.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Title)
	assert.Equal(t, "Sub b", got.Subtitle)

	got, err = s.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sub a", got.Subtitle)
}

func testDeleteThenGet(t *testing.T, s storage.PostStore) {
	ctx := context.Background()
	p, err := s.Create(ctx, fields("doomed"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, p.ID))

	_, err = s.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = s.Delete(ctx, p.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testListAll(t *testing.T, s storage.PostStore) {
	ctx := context.Background()
	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	var ids []uint
	for i := 0; i < 3; i++ {
		p, err := s.Create(ctx, fields(fmt.Sprintf("post-%d", i)))
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}

	all, err = s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i, p := range all {
		assert.Equal(t, ids[i], p.ID)
	}

	require.NoError(t, s.Delete(ctx, ids[1]))
	all, err = s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, ids[0], all[0].ID)
	assert.Equal(t, ids[2], all[1].ID)
}

func testIDsNotReused(t *testing.T, s storage.PostStore) {
	ctx := context.Background()
	_, err := s.Create(ctx, fields("keep"))
	require.NoError(t, err)
	last, err := s.Create(ctx, fields("drop"))
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, last.ID))

	next, err := s.Create(ctx, fields("after"))
	require.NoError(t, err)
	assert.Greater(t, next.ID, last.ID)
}

func testConcurrentSameTitle(t *testing.T, s storage.PostStore) {
	ctx := context.Background()
	const workers = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		dups      int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Create(ctx, fields("race"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case assert.ErrorIs(t, err, storage.ErrDuplicateTitle):
				dups++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, workers-1, dups)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
