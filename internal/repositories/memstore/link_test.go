package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fsdevblog/tinylink/internal/db"
	"github.com/fsdevblog/tinylink/internal/models"
	"github.com/fsdevblog/tinylink/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLink(code string, createdAt time.Time) *models.Link {
	return &models.Link{
		Code:      code,
		URL:       "https://example.com/" + code,
		CreatedAt: createdAt,
	}
}

func TestLinkRepo_CreateGet(t *testing.T) {
	repo := NewLinkRepo(db.NewMemStorage())
	ctx := t.Context()
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newLink("abc123", createdAt)))

	got, err := repo.GetByCode(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/abc123", got.URL)
	assert.Zero(t, got.Clicks)
	assert.Nil(t, got.LastClicked)
	assert.True(t, createdAt.Equal(got.CreatedAt))

	err = repo.Create(ctx, newLink("abc123", createdAt))
	require.ErrorIs(t, err, repositories.ErrDuplicateKey)

	_, err = repo.GetByCode(ctx, "zzz999")
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestLinkRepo_List(t *testing.T) {
	repo := NewLinkRepo(db.NewMemStorage())
	ctx := t.Context()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newLink("first1", base)))
	require.NoError(t, repo.Create(ctx, newLink("third3", base.Add(2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newLink("second", base.Add(time.Hour))))
	require.NoError(t, repo.Create(ctx, newLink("aaaaaa", base.Add(time.Hour))))

	links, err := repo.List(ctx)
	require.NoError(t, err)

	codes := make([]string, 0, len(links))
	for _, l := range links {
		codes = append(codes, l.Code)
	}
	assert.Equal(t, []string{"third3", "aaaaaa", "second", "first1"}, codes)
}

func TestLinkRepo_IncrementClicks(t *testing.T) {
	repo := NewLinkRepo(db.NewMemStorage())
	ctx := t.Context()
	require.NoError(t, repo.Create(ctx, newLink("abc123", time.Now())))

	const visits = 100
	clickedAt := time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for range visits {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementClicks(context.Background(), "abc123", clickedAt)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := repo.GetByCode(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, uint64(visits), got.Clicks)
	require.NotNil(t, got.LastClicked)
	assert.True(t, clickedAt.Equal(*got.LastClicked))

	_, err = repo.IncrementClicks(ctx, "nope00", clickedAt)
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestLinkRepo_Delete(t *testing.T) {
	repo := NewLinkRepo(db.NewMemStorage())
	ctx := t.Context()
	require.NoError(t, repo.Create(ctx, newLink("abc123", time.Now())))

	deleted, err := repo.Delete(ctx, "abc123")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "abc123")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.GetByCode(ctx, "abc123")
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestLinkRepo_CanceledContext(t *testing.T) {
	repo := NewLinkRepo(db.NewMemStorage())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx)
	require.ErrorIs(t, err, repositories.ErrUnknown)
	require.ErrorIs(t, err, context.Canceled)
}
