package youtube

import (
	"context"
	"fmt"
	"os"

	"github.com/gnzdotmx/ytpappend/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// tokenName is the key of the cached OAuth token in TokenStorage
const tokenName = "youtube"

var videoParts = []string{"snippet", "contentDetails"}

// Service implements VideoLister on top of the YouTube Data API v3
type Service struct {
	api *youtube.Service
}

// NewWithAPIKey creates a Service authenticated by an API key. Extra options
// are passed to the API client after the key.
func NewWithAPIKey(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	api, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Service{api: api}, nil
}

// NewWithOAuth creates a Service from an OAuth client secrets file of an
// installed application. A cached token is reused; otherwise the consent
// page is opened in the browser and the code is received on a loopback
// callback server.
func NewWithOAuth(ctx context.Context, credentialsPath string, storage *utils.TokenStorage) (*Service, error) {
	credentials, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	config, err := google.ConfigFromJSON(credentials, youtube.YoutubeReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create OAuth config: %w", err)
	}

	token, err := storage.LoadToken(tokenName)
	if err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}

	// An expired token with a refresh token is refreshed by the token source.
	if token == nil || (!token.Valid() && token.RefreshToken == "") {
		token, err = authorize(ctx, config)
		if err != nil {
			return nil, err
		}

		if err := storage.SaveToken(tokenName, token); err != nil {
			utils.LogWarning("Failed to save token: %v", err)
		}
	} else {
		utils.LogVerbose("Using existing authorization token")
	}

	api, err := youtube.NewService(ctx, option.WithTokenSource(config.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Service{api: api}, nil
}

func authorize(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	callbackServer := utils.NewOAuthCallbackServer()
	if err := callbackServer.Start(0); err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}
	defer func() {
		if err := callbackServer.Stop(); err != nil {
			utils.LogWarning("Failed to stop callback server: %v", err)
		}
	}()

	config.RedirectURL = "http://" + callbackServer.Addr()

	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	utils.LogInfo("Opening browser for YouTube authorization: %s", authURL)
	if err := callbackServer.OpenURL(authURL); err != nil {
		utils.LogWarning("Failed to open browser, visit the URL above manually: %v", err)
	}

	code, err := callbackServer.WaitForCode(ctx)
	if err != nil {
		return nil, err
	}

	token, err := config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// ListVideos retrieves snippet and content details for one batch of IDs
func (s *Service) ListVideos(ctx context.Context, ids []string) ([]VideoDetails, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > MaxIDsPerRequest {
		return nil, fmt.Errorf("too many video IDs in one request: %d (max %d)", len(ids), MaxIDsPerRequest)
	}

	resp, err := s.api.Videos.List(videoParts).Id(ids...).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}

	videos := make([]VideoDetails, 0, len(resp.Items))
	for _, item := range resp.Items {
		videos = append(videos, toDetails(item))
	}

	utils.LogDebug("videos.list returned %d of %d requested IDs", len(videos), len(ids))
	return videos, nil
}

func toDetails(item *youtube.Video) VideoDetails {
	details := VideoDetails{ID: item.Id}
	if item.Snippet != nil {
		details.Title = item.Snippet.Title
		details.ChannelTitle = item.Snippet.ChannelTitle
		details.ChannelID = item.Snippet.ChannelId
		details.PublishedAt = item.Snippet.PublishedAt
	}
	if item.ContentDetails != nil {
		details.Duration = item.ContentDetails.Duration
	}
	return details
}
