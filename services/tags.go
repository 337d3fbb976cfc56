package services

import (
	"regexp"
	"strings"

	"youtube-stats/models"
)

// wordRegexp matches runs of letters, digits and underscores.
var wordRegexp = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// MostFrequentWord returns the word used most often across a video's tags, compared
// case-insensitively. Tokens made only of digits are not words. A nil slice means the
// video has no tags and yields models.NoTags. Ties go to the word seen first.
func MostFrequentWord(tags []string) (string, error) {
	if tags == nil {
		return models.NoTags, nil
	}

	text := strings.ToLower(strings.Join(tags, " "))

	counts := make(map[string]int)
	var order []string
	for _, word := range wordRegexp.FindAllString(text, -1) {
		if isDigits(word) {
			continue
		}
		if counts[word] == 0 {
			order = append(order, word)
		}
		counts[word]++
	}

	if len(order) == 0 {
		return "", &models.NoWordsFoundError{Tags: tags}
	}

	best := order[0]
	for _, word := range order[1:] {
		if counts[word] > counts[best] {
			best = word
		}
	}
	return best, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
