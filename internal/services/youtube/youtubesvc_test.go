package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	youtubeapi "google.golang.org/api/youtube/v3"
)

const videosResponse = `{
  "kind": "youtube#videoListResponse",
  "items": [
    {
      "id": "dQw4w9WgXcQ",
      "snippet": {
        "title": "Never Gonna Give You Up",
        "channelTitle": "Rick Astley",
        "channelId": "UCuAXFkgsw1L7xaCfnd5JJOw",
        "publishedAt": "2009-10-25T06:57:33Z"
      },
      "contentDetails": {"duration": "PT3M33S"}
    },
    {"id": "noDetails"}
  ]
}`

func requestedIDs(r *http.Request) []string {
	var ids []string
	for _, v := range r.URL.Query()["id"] {
		ids = append(ids, strings.Split(v, ",")...)
	}
	return ids
}

func TestService_ListVideos(t *testing.T) {
	var gotIDs []string
	var gotKey, gotPart string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/youtube/v3/videos") {
			http.NotFound(w, r)
			return
		}
		gotIDs = requestedIDs(r)
		gotKey = r.URL.Query().Get("key")
		gotPart = strings.Join(r.URL.Query()["part"], ",")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, videosResponse)
	}))
	defer srv.Close()

	svc, err := NewWithAPIKey(context.Background(), "test-key", option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)

	videos, err := svc.ListVideos(context.Background(), []string{"dQw4w9WgXcQ", "gone", "noDetails"})
	require.NoError(t, err)

	assert.Equal(t, []string{"dQw4w9WgXcQ", "gone", "noDetails"}, gotIDs)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "snippet,contentDetails", gotPart)

	require.Len(t, videos, 2)
	assert.Equal(t, VideoDetails{
		ID:           "dQw4w9WgXcQ",
		Title:        "Never Gonna Give You Up",
		ChannelTitle: "Rick Astley",
		ChannelID:    "UCuAXFkgsw1L7xaCfnd5JJOw",
		PublishedAt:  "2009-10-25T06:57:33Z",
		Duration:     "PT3M33S",
	}, videos[0])
	assert.Equal(t, VideoDetails{ID: "noDetails"}, videos[1])
}

func TestService_ListVideos_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"quotaExceeded"}}`)
	}))
	defer srv.Close()

	svc, err := NewWithAPIKey(context.Background(), "test-key", option.WithEndpoint(srv.URL+"/"))
	require.NoError(t, err)

	_, err = svc.ListVideos(context.Background(), []string{"abc"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quotaExceeded")
}

func TestService_ListVideos_Limits(t *testing.T) {
	svc := &Service{api: &youtubeapi.Service{}}

	videos, err := svc.ListVideos(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, videos)

	ids := make([]string, MaxIDsPerRequest+1)
	_, err = svc.ListVideos(context.Background(), ids)
	assert.Error(t, err)
}

func TestNewWithAPIKey_RequiresKey(t *testing.T) {
	_, err := NewWithAPIKey(context.Background(), "")
	assert.Error(t, err)
}

func TestToDetails_NilParts(t *testing.T) {
	assert.Equal(t, VideoDetails{ID: "x"}, toDetails(&youtubeapi.Video{Id: "x"}))
}
