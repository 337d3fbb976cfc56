package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"youtube-stats/models"
	"youtube-stats/utils"
)

const popularResponse = `{
  "items": [
    {
      "id": "vid1",
      "snippet": {
        "title": "Funny cats",
        "description": "cats being cats",
        "channelId": "chanA",
        "channelTitle": "Cats Inc",
        "publishedAt": "2023-08-08T06:00:00Z",
        "tags": ["Funny", "cats"],
        "categoryId": "15",
        "defaultAudioLanguage": "en",
        "thumbnails": {"standard": {"url": "https://i.ytimg.com/vi/vid1/sddefault.jpg"}}
      },
      "contentDetails": {"duration": "PT4M13S"},
      "statistics": {"viewCount": "1000", "likeCount": "100", "commentCount": "10"}
    },
    {
      "id": "vid2",
      "snippet": {
        "title": "No extras",
        "channelId": "chanB",
        "channelTitle": "Plain",
        "publishedAt": "2023-08-07T18:30:00Z",
        "categoryId": "10"
      },
      "contentDetails": {"duration": "PT2H"},
      "statistics": {"viewCount": "50"}
    }
  ]
}`

type apiServer struct {
	*httptest.Server
	queries []string
}

func newAPIServer(t *testing.T, handler http.HandlerFunc) *apiServer {
	t.Helper()
	s := &apiServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.queries = append(s.queries, r.URL.Path+"?"+r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func newTestClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	c, err := New(context.Background(), Options{APIKey: "test-key", Endpoint: endpoint + "/", RegionCode: "US"}, utils.NewLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(context.Background(), Options{}, utils.NewLogger()); err == nil {
		t.Error("New() with empty key should fail")
	}
}

func TestFetchPopularVideos(t *testing.T) {
	srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/videos") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(popularResponse))
	})
	c := newTestClient(t, srv.URL)

	records, err := c.FetchPopularVideos(context.Background(), 2)
	if err != nil {
		t.Fatalf("FetchPopularVideos: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records: got %d, want 2", len(records))
	}

	q := srv.queries[0]
	for _, want := range []string{"chart=mostPopular", "maxResults=2", "key=test-key", "regionCode=US"} {
		if !strings.Contains(q, want) {
			t.Errorf("query %q missing %q", q, want)
		}
	}

	first := records[0]
	if first.ID != "vid1" || first.Snippet == nil {
		t.Fatalf("first record: %+v", first)
	}
	if first.Snippet.ChannelID != "chanA" || first.Duration != "PT4M13S" {
		t.Errorf("first record fields: %+v", first)
	}
	if first.Snippet.ThumbnailURL != "https://i.ytimg.com/vi/vid1/sddefault.jpg" {
		t.Errorf("thumbnail: got %q", first.Snippet.ThumbnailURL)
	}
	if first.Statistics.ViewCount != 1000 || first.Statistics.LikeCount != 100 || first.Statistics.CommentCount != 10 {
		t.Errorf("statistics: got %+v", first.Statistics)
	}
	if len(first.Snippet.Tags) != 2 {
		t.Errorf("tags: got %v", first.Snippet.Tags)
	}

	second := records[1]
	if second.Snippet.Tags != nil {
		t.Errorf("absent tags should stay nil, got %v", second.Snippet.Tags)
	}
	if second.Snippet.ThumbnailURL != "" || second.Snippet.DefaultAudioLanguage != "" {
		t.Errorf("absent optional fields should be empty: %+v", second.Snippet)
	}
	if second.Statistics.LikeCount != 0 || second.Statistics.ViewCount != 50 {
		t.Errorf("statistics defaults: got %+v", second.Statistics)
	}
}

func TestFetchPopularVideosNoItems(t *testing.T) {
	srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"kind": "youtube#videoListResponse"}`))
	})
	c := newTestClient(t, srv.URL)

	records, err := c.FetchPopularVideos(context.Background(), 5)
	if err != nil {
		t.Fatalf("FetchPopularVideos: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records: got %d, want 0", len(records))
	}
}

func TestFetchPopularVideosRejectsPageSize(t *testing.T) {
	c := newTestClient(t, "http://127.0.0.1:1")
	for _, n := range []int64{0, 51} {
		if _, err := c.FetchPopularVideos(context.Background(), n); err == nil {
			t.Errorf("FetchPopularVideos(%d): expected error", n)
		}
	}
}

func TestFetchPopularVideosQuotaExceeded(t *testing.T) {
	body := `{"error":{"code":403,"message":"quota exceeded","errors":[{"reason":"quotaExceeded","message":"quota exceeded"}]}}`
	srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(body))
	})
	c := newTestClient(t, srv.URL)

	_, err := c.FetchPopularVideos(context.Background(), 10)
	var uae *models.UpstreamAPIError
	if !errors.As(err, &uae) {
		t.Fatalf("got %v, want UpstreamAPIError", err)
	}
	if uae.Status != http.StatusForbidden {
		t.Errorf("Status: got %d, want 403", uae.Status)
	}
	if !strings.Contains(uae.Body, "quotaExceeded") {
		t.Errorf("Body: got %q", uae.Body)
	}
	if uae.Op != "videos.list" {
		t.Errorf("Op: got %q", uae.Op)
	}
}

func TestFetchChannelStats(t *testing.T) {
	srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("id") {
		case "chanA":
			w.Write([]byte(`{"items":[{"id":"chanA","statistics":{"viewCount":"3000","subscriberCount":"300","videoCount":"12"}}]}`))
		case "chanB":
			w.Write([]byte(`{"items":[{"id":"chanB","statistics":{"viewCount":"500","hiddenSubscriberCount":true}}]}`))
		default:
			w.Write([]byte(`{"pageInfo":{"totalResults":0}}`))
		}
	})
	c := newTestClient(t, srv.URL)

	stats, err := c.FetchChannelStats(context.Background(), "chanA")
	if err != nil {
		t.Fatalf("FetchChannelStats: %v", err)
	}
	if stats != (models.ChannelStats{ViewCount: 3000, SubscriberCount: 300, VideoCount: 12}) {
		t.Errorf("chanA stats: got %+v", stats)
	}
	if !strings.Contains(srv.queries[0], "part=statistics") {
		t.Errorf("query %q missing part=statistics", srv.queries[0])
	}

	stats, err = c.FetchChannelStats(context.Background(), "chanB")
	if err != nil {
		t.Fatalf("FetchChannelStats: %v", err)
	}
	if stats.SubscriberCount != 0 || stats.ViewCount != 500 {
		t.Errorf("chanB stats: got %+v", stats)
	}

	_, err = c.FetchChannelStats(context.Background(), "ghost")
	var cnf *models.ChannelNotFoundError
	if !errors.As(err, &cnf) || cnf.ChannelID != "ghost" {
		t.Errorf("got %v, want ChannelNotFoundError for ghost", err)
	}
}

func TestFetchChannelStatsTransportError(t *testing.T) {
	srv := newAPIServer(t, func(w http.ResponseWriter, r *http.Request) {})
	endpoint := srv.URL
	srv.Close()

	c := newTestClient(t, endpoint)
	_, err := c.FetchChannelStats(context.Background(), "chanA")
	var uae *models.UpstreamAPIError
	if !errors.As(err, &uae) {
		t.Fatalf("got %v, want UpstreamAPIError", err)
	}
	if uae.Status != 0 {
		t.Errorf("Status: got %d, want 0", uae.Status)
	}
}
