package models

import "time"

// Unknown is substituted for optional fields the API left out.
const Unknown = "Unknown"

// NoTags marks a video whose listing entry carried no tags at all.
const NoTags = Unknown

// RawVideoRecord holds one entry of the most-popular listing as returned by the API,
// before any transformation.
type RawVideoRecord struct {
	ID         string
	Snippet    *VideoSnippet
	Duration   string
	Statistics VideoCounts
}

// VideoSnippet mirrors the snippet block of a listing entry. A nil Tags slice means
// the API omitted tags; empty strings mean the optional field was absent.
type VideoSnippet struct {
	Title                string
	Description          string
	ChannelID            string
	ChannelTitle         string
	PublishedAt          string
	Tags                 []string
	CategoryID           string
	ThumbnailURL         string
	DefaultAudioLanguage string
}

// VideoCounts are the per-video statistics. Missing counts decode as zero.
type VideoCounts struct {
	ViewCount    uint64
	LikeCount    uint64
	CommentCount uint64
}

// ChannelStats is the aggregate of the channel owning a video.
type ChannelStats struct {
	ViewCount       uint64
	SubscriberCount uint64
	VideoCount      uint64
}

// VideoStatRow is one output row: a video, its channel's statistics and the
// derived fields.
type VideoStatRow struct {
	VideoID           string
	VideoTitle        string
	ChannelID         string
	ChannelTitle      string
	PublishedAt       time.Time
	MostFrequentWord  string
	Category          string
	ViewCount         int64
	LikeCount         int64
	ViewCountRatio    float64
	LikeCountRatio    float64
	CommentCount      int64
	DurationSec       int64
	DurationCategory  string
	ChannelViewCount  int64
	ChannelSubCount   int64
	ChannelVideoCount int64
	WatchURL          string
	PictureURL        string
	Language          string
}

// Values returns the row's cells in Schema order.
func (r VideoStatRow) Values() []any {
	return []any{
		r.VideoID,
		r.VideoTitle,
		r.ChannelID,
		r.ChannelTitle,
		r.PublishedAt,
		r.MostFrequentWord,
		r.Category,
		r.ViewCount,
		r.LikeCount,
		r.ViewCountRatio,
		r.LikeCountRatio,
		r.CommentCount,
		r.DurationSec,
		r.DurationCategory,
		r.ChannelViewCount,
		r.ChannelSubCount,
		r.ChannelVideoCount,
		r.WatchURL,
		r.PictureURL,
		r.Language,
	}
}

// InsightReport holds the summary computed over a loaded dataset.
type InsightReport struct {
	TotalVideos        int
	TotalViews         int64
	AverageDurationSec float64
	MostViewed         *VideoStatRow
	TopEngagement      []*VideoStatRow
	DurationBuckets    map[string]int
	VideosByCategory   map[string]int
}
