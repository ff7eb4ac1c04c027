package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/gnzdotmx/ytpappend/internal/services/youtube"
	"github.com/gnzdotmx/ytpappend/internal/services/youtube/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func makeIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("id%03d", i)
	}
	return ids
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		size      int
		wantSizes []int
	}{
		{name: "empty", n: 0, size: 50, wantSizes: nil},
		{name: "single partial", n: 7, size: 50, wantSizes: []int{7}},
		{name: "exact", n: 100, size: 50, wantSizes: []int{50, 50}},
		{name: "remainder", n: 121, size: 50, wantSizes: []int{50, 50, 21}},
		{name: "small batches", n: 5, size: 2, wantSizes: []int{2, 2, 1}},
		{name: "oversized clamped", n: 120, size: 500, wantSizes: []int{50, 50, 20}},
		{name: "zero clamped", n: 60, size: 0, wantSizes: []int{50, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := makeIDs(tt.n)
			chunks := Chunk(ids, tt.size)

			var sizes []int
			var joined []string
			for _, c := range chunks {
				assert.LessOrEqual(t, len(c), MaxBatchSize)
				sizes = append(sizes, len(c))
				joined = append(joined, c...)
			}
			assert.Equal(t, tt.wantSizes, sizes)
			if tt.n > 0 {
				assert.Equal(t, ids, joined)
			}
		})
	}
}

func TestFetcher_FetchAll(t *testing.T) {
	ids := makeIDs(120)
	lister := mocks.NewMockVideoLister(t)

	var requested []string
	lister.On("ListVideos", mock.Anything, mock.AnythingOfType("[]string")).
		Return(func(_ context.Context, batch []string) ([]youtube.VideoDetails, error) {
			requested = append(requested, batch...)
			var out []youtube.VideoDetails
			for _, id := range batch {
				if id == "id005" {
					continue // deleted video
				}
				out = append(out, youtube.VideoDetails{ID: id, Title: "title " + id})
			}
			return out, nil
		}).Times(3)

	found, err := NewFetcher(lister, nil, MaxBatchSize).FetchAll(context.Background(), ids)
	require.NoError(t, err)

	assert.Equal(t, ids, requested)
	assert.Len(t, found, 119)
	assert.NotContains(t, found, "id005")
	assert.Equal(t, "title id119", found["id119"].Title)
}

func TestFetcher_FetchAll_ErrorDiscardsResults(t *testing.T) {
	lister := mocks.NewMockVideoLister(t)
	lister.On("ListVideos", mock.Anything, mock.Anything).
		Return([]youtube.VideoDetails{{ID: "id000"}}, nil).Once()
	lister.On("ListVideos", mock.Anything, mock.Anything).
		Return(nil, errors.New("quota exceeded")).Once()

	found, err := NewFetcher(lister, nil, 50).FetchAll(context.Background(), makeIDs(75))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch 2/2")
	assert.Nil(t, found)
}

func TestFetcher_FetchAll_RateLimited(t *testing.T) {
	lister := mocks.NewMockVideoLister(t)
	lister.On("ListVideos", mock.Anything, mock.Anything).Return(nil, nil).Times(3)

	// 20 rps with burst 1: the second and third batch each wait ~50ms
	start := time.Now()
	_, err := NewFetcher(lister, NewLimiter(20), 1).FetchAll(context.Background(), makeIDs(3))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 80*time.Millisecond)
}

func TestFetcher_FetchAll_Cancelled(t *testing.T) {
	// no expectations: a cancelled context must stop before any request
	lister := mocks.NewMockVideoLister(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	found, err := NewFetcher(lister, NewLimiter(1), 50).FetchAll(ctx, makeIDs(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, found)
}

func TestNewLimiter(t *testing.T) {
	assert.Equal(t, rate.Inf, NewLimiter(0).Limit())
	assert.Equal(t, rate.Limit(2.5), NewLimiter(2.5).Limit())
	assert.Equal(t, 1, NewLimiter(2.5).Burst())
}
