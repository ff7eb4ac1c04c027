package youtube

import (
	"context"
)

// MaxIDsPerRequest is the largest number of video IDs videos.list accepts
const MaxIDsPerRequest = 50

// VideoLister defines the metadata lookup used by the importer
type VideoLister interface {
	// ListVideos returns metadata for the given IDs (at most MaxIDsPerRequest).
	// IDs unknown to the provider, e.g. deleted or private videos, are
	// missing from the result.
	ListVideos(ctx context.Context, ids []string) ([]VideoDetails, error)
}

// VideoDetails holds the fields of a videos.list item the importer needs
type VideoDetails struct {
	ID           string
	Title        string
	ChannelTitle string
	ChannelID    string
	PublishedAt  string // RFC3339
	Duration     string // ISO-8601, e.g. PT2M31S
}

// Ensure Service implements VideoLister
var _ VideoLister = (*Service)(nil)
