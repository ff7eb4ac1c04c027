// Package fetch looks up video metadata in provider-sized batches under a
// request rate limit.
package fetch

import (
	"context"
	"fmt"

	"github.com/gnzdotmx/ytpappend/internal/services/youtube"
	"github.com/gnzdotmx/ytpappend/internal/utils"
	"golang.org/x/time/rate"
)

const (
	// MaxBatchSize is the provider's limit of IDs per metadata request
	MaxBatchSize = youtube.MaxIDsPerRequest
	// DefaultRequestsPerSecond keeps one request per second, like the
	// fixed one second pause between batches it replaces.
	DefaultRequestsPerSecond = 1.0
)

// Chunk splits ids into consecutive batches of at most size IDs. Sizes
// outside 1..MaxBatchSize are treated as MaxBatchSize.
func Chunk(ids []string, size int) [][]string {
	if size <= 0 || size > MaxBatchSize {
		size = MaxBatchSize
	}

	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// NewLimiter returns a token bucket allowing rps requests per second with
// a burst of one. rps <= 0 disables limiting.
func NewLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// Fetcher issues batched metadata requests one after another
type Fetcher struct {
	lister    youtube.VideoLister
	limiter   *rate.Limiter
	batchSize int
}

// NewFetcher creates a Fetcher. A nil limiter disables rate limiting.
func NewFetcher(lister youtube.VideoLister, limiter *rate.Limiter, batchSize int) *Fetcher {
	if limiter == nil {
		limiter = NewLimiter(0)
	}
	return &Fetcher{
		lister:    lister,
		limiter:   limiter,
		batchSize: batchSize,
	}
}

// FetchAll requests metadata for ids batch by batch and returns everything
// the provider knows about, keyed by video ID. The first failing request
// aborts the whole lookup and nothing fetched so far is returned.
func (f *Fetcher) FetchAll(ctx context.Context, ids []string) (map[string]youtube.VideoDetails, error) {
	chunks := Chunk(ids, f.batchSize)
	found := make(map[string]youtube.VideoDetails, len(ids))

	for i, chunk := range chunks {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		utils.LogVerbose("Requesting batch %d/%d (%d IDs)", i+1, len(chunks), len(chunk))
		videos, err := f.lister.ListVideos(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("batch %d/%d: %w", i+1, len(chunks), err)
		}

		for _, v := range videos {
			found[v.ID] = v
		}
	}

	return found, nil
}
