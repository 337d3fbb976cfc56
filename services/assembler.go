package services

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"youtube-stats/models"
	"youtube-stats/utils"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// VideoSource supplies the raw listing and channel statistics.
type VideoSource interface {
	FetchPopularVideos(ctx context.Context, maxResults int64) ([]models.RawVideoRecord, error)
	FetchChannelStats(ctx context.Context, channelID string) (models.ChannelStats, error)
}

// AssemblerOptions tune a single assembly run.
type AssemblerOptions struct {
	MaxResults int64
	// CacheChannels reuses channel statistics for videos of the same channel within
	// one run. When false every video triggers its own channel lookup.
	CacheChannels bool
}

// Assembler turns one page of the most-popular listing into a Dataset.
type Assembler struct {
	source     VideoSource
	categories *CategoryMapper
	opts       AssemblerOptions
	logger     *utils.Logger
}

// NewAssembler creates an Assembler. A nil categories mapper uses the built-in table.
func NewAssembler(source VideoSource, categories *CategoryMapper, opts AssemblerOptions, logger *utils.Logger) *Assembler {
	if categories == nil {
		categories = DefaultCategories()
	}
	return &Assembler{
		source:     source,
		categories: categories,
		opts:       opts,
		logger:     logger,
	}
}

// Assemble fetches the listing and each video's channel statistics and builds the
// dataset in listing order. The first failing record aborts the whole run.
func (a *Assembler) Assemble(ctx context.Context) (*models.Dataset, error) {
	records, err := a.source.FetchPopularVideos(ctx, a.opts.MaxResults)
	if err != nil {
		return nil, errors.Wrap(err, "fetch popular videos")
	}
	a.logger.Info("[assembler] Fetched %d videos", len(records))

	var cache map[string]models.ChannelStats
	if a.opts.CacheChannels {
		cache = make(map[string]models.ChannelStats)
	}
	lookups := 0

	ds := models.NewDataset()
	for i := range records {
		rec := &records[i]
		if err := checkRequired(rec); err != nil {
			return nil, err
		}

		channelID := rec.Snippet.ChannelID
		stats, ok := cache[channelID]
		if !ok {
			stats, err = a.source.FetchChannelStats(ctx, channelID)
			if err != nil {
				return nil, errors.Wrapf(err, "video %s: fetch channel %s", rec.ID, channelID)
			}
			lookups++
			if cache != nil {
				cache[channelID] = stats
			}
		}

		row, err := a.buildRow(rec, stats)
		if err != nil {
			return nil, errors.Wrapf(err, "video %s", rec.ID)
		}
		ds.Append(row)
	}

	a.logger.Info("[assembler] Built %d rows (%d channel lookups)", ds.Len(), lookups)
	return ds, nil
}

func checkRequired(rec *models.RawVideoRecord) error {
	switch {
	case rec.ID == "":
		return &models.MalformedRecordError{Field: "id"}
	case rec.Snippet == nil:
		return &models.MalformedRecordError{VideoID: rec.ID, Field: "snippet"}
	case rec.Snippet.ChannelID == "":
		return &models.MalformedRecordError{VideoID: rec.ID, Field: "snippet.channelId"}
	}
	return nil
}

func (a *Assembler) buildRow(rec *models.RawVideoRecord, channel models.ChannelStats) (models.VideoStatRow, error) {
	snip := rec.Snippet

	published, err := time.Parse(time.RFC3339, snip.PublishedAt)
	if err != nil {
		return models.VideoStatRow{}, &models.MalformedRecordError{VideoID: rec.ID, Field: "snippet.publishedAt", Err: err}
	}

	seconds, err := ParseDuration(rec.Duration)
	if err != nil {
		return models.VideoStatRow{}, err
	}

	word, err := MostFrequentWord(snip.Tags)
	if err != nil {
		return models.VideoStatRow{}, err
	}

	counts, err := toInt64s(rec.ID, []countField{
		{"statistics.viewCount", rec.Statistics.ViewCount},
		{"statistics.likeCount", rec.Statistics.LikeCount},
		{"statistics.commentCount", rec.Statistics.CommentCount},
		{"channel.viewCount", channel.ViewCount},
		{"channel.subscriberCount", channel.SubscriberCount},
		{"channel.videoCount", channel.VideoCount},
	})
	if err != nil {
		return models.VideoStatRow{}, err
	}

	return models.VideoStatRow{
		VideoID:           rec.ID,
		VideoTitle:        snip.Title,
		ChannelID:         snip.ChannelID,
		ChannelTitle:      snip.ChannelTitle,
		PublishedAt:       published.UTC(),
		MostFrequentWord:  word,
		Category:          a.categories.NameFor(snip.CategoryID),
		ViewCount:         counts[0],
		LikeCount:         counts[1],
		ViewCountRatio:    Ratio(rec.Statistics.ViewCount, channel.ViewCount),
		LikeCountRatio:    Ratio(rec.Statistics.LikeCount, channel.SubscriberCount),
		CommentCount:      counts[2],
		DurationSec:       seconds,
		DurationCategory:  ClassifyDuration(seconds),
		ChannelViewCount:  counts[3],
		ChannelSubCount:   counts[4],
		ChannelVideoCount: counts[5],
		WatchURL:          watchURLPrefix + rec.ID,
		PictureURL:        orUnknown(snip.ThumbnailURL),
		Language:          orUnknown(snip.DefaultAudioLanguage),
	}, nil
}

type countField struct {
	name  string
	value uint64
}

// toInt64s converts API counts to the signed warehouse type. A count above
// math.MaxInt64 is a malformed record.
func toInt64s(videoID string, fields []countField) ([]int64, error) {
	out := make([]int64, len(fields))
	for i, f := range fields {
		if f.value > math.MaxInt64 {
			return nil, &models.MalformedRecordError{
				VideoID: videoID,
				Field:   f.name,
				Err:     errors.Errorf("count %d overflows int64", f.value),
			}
		}
		out[i] = int64(f.value)
	}
	return out, nil
}

func orUnknown(s string) string {
	if s == "" {
		return models.Unknown
	}
	return s
}
