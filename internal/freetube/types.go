// Package freetube models FreeTube's playlist store records and appends
// them to an existing playlists.db file.
package freetube

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// VideoType is the only item type written to a playlist
const VideoType = "video"

// PlaylistFile is one parsed export file
type PlaylistFile struct {
	Name     string // file name without extension
	Path     string
	VideoIDs []string
}

// VideoRecord is one playlist entry. Field order matches FreeTube's own
// serialization.
type VideoRecord struct {
	VideoID        string `json:"videoId"`
	Title          string `json:"title"`
	Author         string `json:"author"`
	AuthorID       string `json:"authorId"`
	LengthSeconds  int64  `json:"lengthSeconds"`
	Published      int64  `json:"published"`
	TimeAdded      int64  `json:"timeAdded"`
	PlaylistItemID string `json:"playlistItemId"`
	Type           string `json:"type"`
}

// PlaylistRecord is one document of the playlist store
type PlaylistRecord struct {
	PlaylistName  string        `json:"playlistName"`
	Protected     bool          `json:"protected"`
	Description   string        `json:"description"`
	Videos        []VideoRecord `json:"videos"`
	ID            string        `json:"_id"`
	CreatedAt     int64         `json:"createdAt"`
	LastUpdatedAt int64         `json:"lastUpdatedAt"`
}

// EpochMillis converts t to Unix milliseconds
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// ParsePublished converts an RFC3339 publish time to Unix milliseconds.
// Empty or malformed values yield 0.
func ParsePublished(value string) int64 {
	if value == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return 0
	}
	return EpochMillis(t)
}

// Slug derives a playlist _id from its name
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// Description is the text stored for playlists imported from a file
func Description(name string) string {
	return fmt.Sprintf("Imported from %s.csv", name)
}

// NewPlaylist assembles a playlist record. Every video's TimeAdded and the
// playlist's creation and update times are set to now.
func NewPlaylist(name string, videos []VideoRecord, now time.Time) PlaylistRecord {
	stamp := EpochMillis(now)

	stamped := make([]VideoRecord, len(videos))
	for i, v := range videos {
		v.TimeAdded = stamp
		v.Type = VideoType
		stamped[i] = v
	}

	return PlaylistRecord{
		PlaylistName:  name,
		Protected:     false,
		Description:   Description(name),
		Videos:        stamped,
		ID:            Slug(name),
		CreatedAt:     stamp,
		LastUpdatedAt: stamp,
	}
}

// Marshal serializes a record as compact JSON without HTML escaping and
// without a trailing newline.
func Marshal(record PlaylistRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(record); err != nil {
		return nil, fmt.Errorf("failed to serialize playlist %s: %w", record.PlaylistName, err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
