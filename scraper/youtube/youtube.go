package youtube

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"youtube-stats/models"
	"youtube-stats/utils"
)

// MaxPageSize is the largest page the most-popular chart serves.
const MaxPageSize = 50

var videoParts = []string{
	"snippet",
	"contentDetails",
	"statistics",
	"player",
	"topicDetails",
	"liveStreamingDetails",
}

// Options configure a Client.
type Options struct {
	APIKey string
	// Endpoint overrides the API base URL, e.g. for a proxy.
	Endpoint    string
	RegionCode  string
	RateLimitMs int
}

// Client fetches the most-popular chart and channel statistics from the YouTube
// Data API v3. It does not retry; failures are returned to the caller.
type Client struct {
	service *yt.Service
	region  string
	limiter *rate.Limiter
	logger  *utils.Logger
}

// New creates a ready-to-use Client.
func New(ctx context.Context, opts Options, logger *utils.Logger) (*Client, error) {
	if opts.APIKey == "" {
		return nil, errors.New("youtube: api key required")
	}

	clientOpts := []option.ClientOption{option.WithAPIKey(opts.APIKey)}
	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(opts.Endpoint))
	}
	service, err := yt.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "youtube: create service")
	}

	limit := rate.Inf
	if opts.RateLimitMs > 0 {
		limit = rate.Every(time.Duration(opts.RateLimitMs) * time.Millisecond)
	}

	return &Client{
		service: service,
		region:  opts.RegionCode,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}, nil
}

// FetchPopularVideos returns one page of the most-popular chart in chart order.
// A response without items yields an empty slice.
func (c *Client) FetchPopularVideos(ctx context.Context, maxResults int64) ([]models.RawVideoRecord, error) {
	if maxResults < 1 || maxResults > MaxPageSize {
		return nil, errors.Errorf("youtube: maxResults must be between 1 and %d, got %d", MaxPageSize, maxResults)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := c.service.Videos.List(videoParts).
		Chart("mostPopular").
		MaxResults(maxResults).
		Context(ctx)
	if c.region != "" {
		call = call.RegionCode(c.region)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, upstreamError("videos.list", err)
	}

	records := make([]models.RawVideoRecord, 0, len(resp.Items))
	for _, item := range resp.Items {
		records = append(records, toRecord(item))
	}
	c.logger.Debug("[youtube] videos.list returned %d items", len(records))
	return records, nil
}

// FetchChannelStats returns the statistics of one channel.
func (c *Client) FetchChannelStats(ctx context.Context, channelID string) (models.ChannelStats, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return models.ChannelStats{}, err
	}

	resp, err := c.service.Channels.List([]string{"statistics"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return models.ChannelStats{}, upstreamError("channels.list", err)
	}

	if len(resp.Items) == 0 {
		return models.ChannelStats{}, &models.ChannelNotFoundError{ChannelID: channelID}
	}

	stats := resp.Items[0].Statistics
	if stats == nil {
		return models.ChannelStats{}, nil
	}
	return models.ChannelStats{
		ViewCount:       stats.ViewCount,
		SubscriberCount: stats.SubscriberCount,
		VideoCount:      stats.VideoCount,
	}, nil
}

func toRecord(item *yt.Video) models.RawVideoRecord {
	rec := models.RawVideoRecord{ID: item.Id}

	if s := item.Snippet; s != nil {
		rec.Snippet = &models.VideoSnippet{
			Title:                s.Title,
			Description:          s.Description,
			ChannelID:            s.ChannelId,
			ChannelTitle:         s.ChannelTitle,
			PublishedAt:          s.PublishedAt,
			Tags:                 s.Tags,
			CategoryID:           s.CategoryId,
			DefaultAudioLanguage: s.DefaultAudioLanguage,
		}
		if s.Thumbnails != nil && s.Thumbnails.Standard != nil {
			rec.Snippet.ThumbnailURL = s.Thumbnails.Standard.Url
		}
	}

	if item.ContentDetails != nil {
		rec.Duration = item.ContentDetails.Duration
	}

	if st := item.Statistics; st != nil {
		rec.Statistics = models.VideoCounts{
			ViewCount:    st.ViewCount,
			LikeCount:    st.LikeCount,
			CommentCount: st.CommentCount,
		}
	}

	return rec
}

// upstreamError wraps an API failure, keeping the HTTP status and body when the
// server answered.
func upstreamError(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return &models.UpstreamAPIError{Op: op, Status: gerr.Code, Body: gerr.Body, Err: err}
	}
	return &models.UpstreamAPIError{Op: op, Err: err}
}
