package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"youtube-stats/models"
	"youtube-stats/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate summarises a dataset. Rows whose cells do not match the schema are skipped.
func (s *InsightService) Generate(ds *models.Dataset) *models.InsightReport {
	report := &models.InsightReport{
		DurationBuckets:  make(map[string]int),
		VideosByCategory: make(map[string]int),
	}

	rows := rowsOf(ds)
	if len(rows) == 0 {
		return report
	}
	if skipped := ds.Len() - len(rows); skipped > 0 {
		s.logger.Warn("[insights] Skipped %d rows that do not match the schema", skipped)
	}

	report.TotalVideos = len(rows)

	var totalDuration int64
	for _, r := range rows {
		report.TotalViews += r.ViewCount
		totalDuration += r.DurationSec
		report.DurationBuckets[r.DurationCategory]++
		report.VideosByCategory[r.Category]++
		if report.MostViewed == nil || r.ViewCount > report.MostViewed.ViewCount {
			report.MostViewed = r
		}
	}
	report.AverageDurationSec = round2(float64(totalDuration) / float64(len(rows)))

	// Top 5 by like/subscriber ratio
	engaged := make([]*models.VideoStatRow, len(rows))
	copy(engaged, rows)
	sort.SliceStable(engaged, func(i, j int) bool {
		return engaged[i].LikeCountRatio > engaged[j].LikeCountRatio
	})
	if len(engaged) > 5 {
		engaged = engaged[:5]
	}
	report.TopEngagement = engaged

	return report
}

// rowsOf rebuilds typed rows from the dataset's cells.
func rowsOf(ds *models.Dataset) []*models.VideoStatRow {
	if ds.Len() == 0 {
		return nil
	}
	idx := make(map[string]int, len(ds.Columns))
	for i, c := range ds.Columns {
		idx[c] = i
	}
	str := func(row []any, col string) string {
		if i, ok := idx[col]; ok && i < len(row) {
			v, _ := row[i].(string)
			return v
		}
		return ""
	}
	num := func(row []any, col string) (int64, bool) {
		if i, ok := idx[col]; ok && i < len(row) {
			v, ok := row[i].(int64)
			return v, ok
		}
		return 0, false
	}
	ratio := func(row []any, col string) float64 {
		if i, ok := idx[col]; ok && i < len(row) {
			v, _ := row[i].(float64)
			return v
		}
		return 0
	}

	rows := make([]*models.VideoStatRow, 0, ds.Len())
	for _, row := range ds.Rows {
		views, okViews := num(row, "view_count")
		duration, okDuration := num(row, "duration_sec")
		if !okViews || !okDuration {
			continue
		}
		r := &models.VideoStatRow{
			VideoID:          str(row, models.ColVideoID),
			VideoTitle:       str(row, "video_title"),
			ChannelTitle:     str(row, "channel_title"),
			Category:         str(row, "category"),
			DurationCategory: str(row, models.ColDurationCategory),
			ViewCount:        views,
			DurationSec:      duration,
			LikeCountRatio:   ratio(row, "like_count_ratio"),
		}
		r.LikeCount, _ = num(row, "like_count")
		rows = append(rows, r)
	}
	return rows
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 MOST POPULAR VIDEOS INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Videos loaded    : \033[1m%d\033[0m\n", r.TotalVideos)
	fmt.Printf("  Total views      : \033[1m%d\033[0m\n", r.TotalViews)
	fmt.Printf("  Average duration : \033[1m%s\033[0m\n", time.Duration(r.AverageDurationSec*float64(time.Second)).Round(time.Second))
	fmt.Println()

	if r.MostViewed != nil {
		fmt.Printf("\033[1;33m  Most Viewed Video\033[0m\n")
		fmt.Printf("  %s\n", thin)
		fmt.Printf("  %s\n", truncate(r.MostViewed.VideoTitle, 50))
		fmt.Printf("  Channel : %s\n", r.MostViewed.ChannelTitle)
		fmt.Printf("  Views   : \033[1;32m%d\033[0m\n", r.MostViewed.ViewCount)
		fmt.Println()
	}

	fmt.Printf("\033[1;33m  Top 5 by Likes per Subscriber\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopEngagement) == 0 {
		fmt.Printf("  No videos\n")
	} else {
		for i, v := range r.TopEngagement {
			fmt.Printf("  \033[1m%d.\033[0m %-40s \033[1;32m%.6f\033[0m\n",
				i+1, truncate(v.VideoTitle, 38), v.LikeCountRatio)
		}
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Duration Buckets\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, bucket := range []string{DurationShort, DurationMedium, DurationLong} {
		n := r.DurationBuckets[bucket]
		fmt.Printf("  %-10s %s (%d)\n", bucket, strings.Repeat("█", n), n)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Videos by Category\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.VideosByCategory) == 0 {
		fmt.Printf("  No category data\n")
	} else {
		type catCount struct {
			name  string
			count int
		}
		var cats []catCount
		for name, cnt := range r.VideosByCategory {
			cats = append(cats, catCount{name, cnt})
		}
		sort.Slice(cats, func(i, j int) bool {
			if cats[i].count != cats[j].count {
				return cats[i].count > cats[j].count
			}
			return cats[i].name < cats[j].name
		})
		for _, c := range cats {
			fmt.Printf("  %-30s %s (%d)\n", truncate(c.name, 28), strings.Repeat("█", c.count), c.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int64(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
