package services

import (
	"encoding/json"
	"os"
	"sort"
	"strconv"

	"github.com/pkg/errors"

	"youtube-stats/models"
)

// defaultCategoryNames is the platform's video category taxonomy.
var defaultCategoryNames = map[string]string{
	"1":  "Film & Animation",
	"2":  "Autos & Vehicles",
	"10": "Music",
	"15": "Pets & Animals",
	"17": "Sports",
	"18": "Short Movies",
	"19": "Travel & Events",
	"20": "Gaming",
	"21": "Videoblogging",
	"22": "People & Blogs",
	"23": "Comedy",
	"24": "Entertainment",
	"25": "News & Politics",
	"26": "Howto & Style",
	"27": "Education",
	"28": "Science & Technology",
	"29": "Nonprofits & Activism",
	"30": "Movies",
	"31": "Anime/Animation",
	"32": "Action/Adventure",
	"33": "Classics",
	"34": "Comedy",
	"35": "Documentary",
	"36": "Drama",
	"37": "Family",
	"38": "Foreign",
	"39": "Horror",
	"40": "Sci-Fi/Fantasy",
	"41": "Thriller",
	"42": "Shorts",
	"43": "Shows",
	"44": "Trailers",
}

var defaultCategories = NewCategoryMapper(defaultCategoryNames)

// CategoryMapper resolves category codes to display names. It is immutable once
// built and safe to share.
type CategoryMapper struct {
	names map[string]string
}

// NewCategoryMapper builds a mapper from a copy of names.
func NewCategoryMapper(names map[string]string) *CategoryMapper {
	copied := make(map[string]string, len(names))
	for code, name := range names {
		copied[code] = name
	}
	return &CategoryMapper{names: copied}
}

// DefaultCategories returns the mapper for the built-in taxonomy.
func DefaultCategories() *CategoryMapper {
	return defaultCategories
}

// LoadCategoryMapper reads a JSON object of code -> name from path. An empty path
// returns the built-in taxonomy.
func LoadCategoryMapper(path string) (*CategoryMapper, error) {
	if path == "" {
		return DefaultCategories(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "categories: read %s", path)
	}
	var names map[string]string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, errors.Wrapf(err, "categories: decode %s", path)
	}
	if len(names) == 0 {
		return nil, errors.Errorf("categories: %s defines no categories", path)
	}
	return NewCategoryMapper(names), nil
}

// NameFor returns the display name for code, or "Unknown" for codes not in the table.
func (m *CategoryMapper) NameFor(code string) string {
	if name, ok := m.names[code]; ok {
		return name
	}
	return models.Unknown
}

// NamesFor maps codes to names, keeping order and length.
func (m *CategoryMapper) NamesFor(codes []string) []string {
	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = m.NameFor(code)
	}
	return names
}

// Codes lists the known codes in numeric order.
func (m *CategoryMapper) Codes() []string {
	codes := make([]string, 0, len(m.names))
	for code := range m.names {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		a, errA := strconv.Atoi(codes[i])
		b, errB := strconv.Atoi(codes[j])
		if errA != nil || errB != nil {
			return codes[i] < codes[j]
		}
		return a < b
	})
	return codes
}
