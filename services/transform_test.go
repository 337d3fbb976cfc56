package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"youtube-stats/models"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		token string
		want  int64
	}{
		{"", 0},
		{"PT4M13S", 253},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT10M", 600},
		{"PT1H5S", 3605},
		{"PT0S", 0},
		{"P0D", 0},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.token)
		if err != nil {
			t.Errorf("ParseDuration(%q): unexpected error %v", tt.token, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %d; want %d", tt.token, got, tt.want)
		}
	}
}

func TestParseDurationMalformed(t *testing.T) {
	tests := []struct {
		token     string
		component string
	}{
		{"PTxM", "minutes"},
		{"PT-1S", "seconds"},
		{"PTH", "hours"},
		{"4M13S", "minutes"},
		{"PT1.5S", "seconds"},
	}

	for _, tt := range tests {
		_, err := ParseDuration(tt.token)
		var mde *models.MalformedDurationError
		if !errors.As(err, &mde) {
			t.Errorf("ParseDuration(%q): got %v, want MalformedDurationError", tt.token, err)
			continue
		}
		if mde.Component != tt.component {
			t.Errorf("ParseDuration(%q): component %q; want %q", tt.token, mde.Component, tt.component)
		}
	}
}

func TestClassifyDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, DurationShort},
		{179, DurationShort},
		{180, DurationMedium},
		{599, DurationMedium},
		{600, DurationLong},
		{7200, DurationLong},
	}

	for _, tt := range tests {
		if got := ClassifyDuration(tt.seconds); got != tt.want {
			t.Errorf("ClassifyDuration(%d) = %q; want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestMostFrequentWord(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want string
	}{
		{"case folded", []string{"Funny", "funny", "cats"}, "funny"},
		{"no tags sentinel", nil, models.NoTags},
		{"words inside tags", []string{"cat videos", "funny cat", "dog"}, "cat"},
		{"tie goes to first seen", []string{"b a", "a b"}, "b"},
		{"digits skipped", []string{"2023 music", "music 2023", "2023"}, "music"},
		{"mixed token kept", []string{"4k 4k video"}, "4k"},
		{"punctuation splits", []string{"rock&roll", "rock"}, "rock"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MostFrequentWord(tt.tags)
			if err != nil {
				t.Fatalf("MostFrequentWord(%q): unexpected error %v", tt.tags, err)
			}
			if got != tt.want {
				t.Errorf("MostFrequentWord(%q) = %q; want %q", tt.tags, got, tt.want)
			}
		})
	}
}

func TestMostFrequentWordNoWords(t *testing.T) {
	for _, tags := range [][]string{{"123", "456"}, {"!!!", "--"}, {}} {
		_, err := MostFrequentWord(tags)
		var nwe *models.NoWordsFoundError
		if !errors.As(err, &nwe) {
			t.Errorf("MostFrequentWord(%q): got %v, want NoWordsFoundError", tags, err)
		}
	}
}

func TestRatio(t *testing.T) {
	tests := []struct {
		num, den uint64
		want     float64
	}{
		{100, 0, 0},
		{1, 3, 0.333333},
		{0, 100, 0},
		{2, 3, 0.666667},
		{5, 5, 1},
	}

	for _, tt := range tests {
		if got := Ratio(tt.num, tt.den); got != tt.want {
			t.Errorf("Ratio(%d, %d) = %v; want %v", tt.num, tt.den, got, tt.want)
		}
	}
}

func TestCategoryMapper(t *testing.T) {
	m := DefaultCategories()

	if got := m.NameFor("10"); got != "Music" {
		t.Errorf("NameFor(10) = %q; want Music", got)
	}
	if got := m.NameFor("20"); got != "Gaming" {
		t.Errorf("NameFor(20) = %q; want Gaming", got)
	}
	if got := m.NameFor("999"); got != models.Unknown {
		t.Errorf("NameFor(999) = %q; want Unknown", got)
	}

	codes := []string{"24", "999", "10", "10"}
	names := m.NamesFor(codes)
	want := []string{"Entertainment", "Unknown", "Music", "Music"}
	if len(names) != len(want) {
		t.Fatalf("NamesFor: got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("NamesFor[%d] = %q; want %q", i, names[i], want[i])
		}
	}

	all := m.Codes()
	if len(all) != 32 || all[0] != "1" || all[2] != "10" || all[len(all)-1] != "44" {
		t.Errorf("Codes: got %v", all)
	}
}

func TestCategoryMapperIsACopy(t *testing.T) {
	src := map[string]string{"1": "One"}
	m := NewCategoryMapper(src)
	src["1"] = "Changed"
	if got := m.NameFor("1"); got != "One" {
		t.Errorf("NameFor(1) = %q; want One", got)
	}
}

func TestLoadCategoryMapper(t *testing.T) {
	m, err := LoadCategoryMapper("")
	if err != nil || m != DefaultCategories() {
		t.Fatalf("LoadCategoryMapper(\"\") = %v, %v; want default table", m, err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "categories.json")
	if err := os.WriteFile(path, []byte(`{"10":"Songs","99":"Custom"}`), 0644); err != nil {
		t.Fatal(err)
	}
	m, err = LoadCategoryMapper(path)
	if err != nil {
		t.Fatalf("LoadCategoryMapper: %v", err)
	}
	if m.NameFor("99") != "Custom" || m.NameFor("20") != models.Unknown {
		t.Errorf("loaded mapper: 99=%q 20=%q", m.NameFor("99"), m.NameFor("20"))
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[1,2]`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCategoryMapper(bad); err == nil {
		t.Error("expected error for non-object JSON")
	}
	if _, err := LoadCategoryMapper(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
