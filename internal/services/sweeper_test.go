package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialhub/internal/domain"
)

type fakeStoryRepo struct {
	stories []*domain.Story
}

func (f *fakeStoryRepo) CreateStory(ctx context.Context, story *domain.Story) error {
	f.stories = append(f.stories, story)
	return nil
}

func (f *fakeStoryRepo) ActiveStories(ctx context.Context) ([]*domain.Story, error) {
	var out []*domain.Story
	for _, s := range f.stories {
		if s.ExpiresAt.After(time.Now()) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStoryRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	var kept []*domain.Story
	var deleted int64
	for _, s := range f.stories {
		if s.ExpiresAt.Before(before) {
			deleted++
			continue
		}
		kept = append(kept, s)
	}
	f.stories = kept
	return deleted, nil
}

func TestSweeper_Sweep(t *testing.T) {
	auctions := newFakeAuctionRepo()
	stories := &fakeStoryRepo{}
	sweeper := NewSweeper(auctions, stories, nopLogger{})
	ctx := context.Background()

	now := time.Now()
	auctions.auctions["ended"] = &domain.Auction{ID: "ended", IsActive: true, EndsAt: now.Add(-time.Minute)}
	auctions.auctions["live"] = &domain.Auction{ID: "live", IsActive: true, EndsAt: now.Add(time.Hour)}
	require.NoError(t, stories.CreateStory(ctx, &domain.Story{ID: "old", ExpiresAt: now.Add(-time.Minute)}))
	require.NoError(t, stories.CreateStory(ctx, &domain.Story{ID: "fresh", ExpiresAt: now.Add(time.Hour)}))

	sweeper.sweep(ctx)

	assert.False(t, auctions.auctions["ended"].IsActive)
	assert.True(t, auctions.auctions["live"].IsActive)

	require.Len(t, stories.stories, 1)
	assert.Equal(t, "fresh", stories.stories[0].ID)
}
