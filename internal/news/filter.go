package news

import (
	"strings"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/types"
)

// defaultKeywords are the fixed economic and geopolitical terms every
// project is screened against.
var defaultKeywords = []string{
	"tariff",
	"exchange rate",
	"currency",
	"import ban",
	"export ban",
}

// BuildKeywords assembles the relevance keyword set for a project: the
// fixed terms plus the project's location and technology when present.
func BuildKeywords(project types.ProjectAttributes) []string {
	keywords := make([]string, 0, len(defaultKeywords)+2)
	keywords = append(keywords, defaultKeywords...)

	if project.ProjectLocation != "" {
		keywords = append(keywords, project.ProjectLocation)
	}
	if project.Technology != "" {
		keywords = append(keywords, project.Technology)
	}

	return keywords
}

// FilterRelevant keeps the items whose title contains any keyword,
// case-insensitive substring match. Input order is preserved and no
// deduplication happens.
func FilterRelevant(items []types.NewsItem, keywords []string) []types.NewsItem {
	relevant := make([]types.NewsItem, 0, len(items))

	for _, item := range items {
		title := strings.ToLower(item.Title)
		for _, keyword := range keywords {
			if keyword != "" && strings.Contains(title, strings.ToLower(keyword)) {
				relevant = append(relevant, item)
				break
			}
		}
	}

	return relevant
}
