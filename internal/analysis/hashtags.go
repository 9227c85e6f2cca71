package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/spacesedan/brandpulse/internal/models"
)

const maxTrendingHashtags = 10

var hashtagPattern = regexp.MustCompile(`#(\w+)`)

// ExtractHashtags counts hashtag occurrences across all post texts,
// case-insensitively, and returns the top tags sorted by descending count
// (ties alphabetically). Tags seen only once are not trending and are
// dropped.
func ExtractHashtags(texts []string) []models.HashtagCount {
	counts := make(map[string]int)
	for _, text := range texts {
		for _, match := range hashtagPattern.FindAllStringSubmatch(text, -1) {
			counts[strings.ToLower(match[1])]++
		}
	}

	tags := make([]models.HashtagCount, 0, len(counts))
	for tag, count := range counts {
		if count > 1 {
			tags = append(tags, models.HashtagCount{Tag: "#" + tag, Count: count})
		}
	}

	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Count != tags[j].Count {
			return tags[i].Count > tags[j].Count
		}
		return tags[i].Tag < tags[j].Tag
	})

	if len(tags) > maxTrendingHashtags {
		tags = tags[:maxTrendingHashtags]
	}
	return tags
}
