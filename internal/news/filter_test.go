package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/types"
)

func TestFilterRelevant(t *testing.T) {
	items := []types.NewsItem{
		{Title: "New tariff imposed on steel imports", Source: "reuters.com"},
		{Title: "Local weather forecast", Source: "bbc.com"},
		{Title: "Currency markets tumble after announcement", Source: "ft.com"},
	}

	relevant := FilterRelevant(items, []string{"tariff", "currency"})

	require.Len(t, relevant, 2)
	assert.Equal(t, "New tariff imposed on steel imports", relevant[0].Title)
	assert.Equal(t, "Currency markets tumble after announcement", relevant[1].Title)
}

func TestFilterRelevantCaseInsensitive(t *testing.T) {
	items := []types.NewsItem{
		{Title: "TARIFF talks break down"},
		{Title: "Exchange Rate worries grow"},
	}

	relevant := FilterRelevant(items, []string{"tariff", "exchange rate"})

	assert.Len(t, relevant, 2)
}

func TestFilterRelevantPreservesOrderAndDuplicates(t *testing.T) {
	items := []types.NewsItem{
		{Title: "tariff update one"},
		{Title: "unrelated story about sports"},
		{Title: "tariff update two"},
		{Title: "tariff update one"},
	}

	relevant := FilterRelevant(items, []string{"tariff"})

	require.Len(t, relevant, 3)
	assert.Equal(t, "tariff update one", relevant[0].Title)
	assert.Equal(t, "tariff update two", relevant[1].Title)
	assert.Equal(t, "tariff update one", relevant[2].Title)
}

func TestFilterRelevantNoMatches(t *testing.T) {
	items := []types.NewsItem{{Title: "Local weather forecast"}}

	relevant := FilterRelevant(items, []string{"tariff"})

	assert.Empty(t, relevant)
}

func TestFilterRelevantIgnoresEmptyKeyword(t *testing.T) {
	items := []types.NewsItem{{Title: "anything at all"}}

	relevant := FilterRelevant(items, []string{""})

	assert.Empty(t, relevant)
}

func TestBuildKeywords(t *testing.T) {
	project := types.ProjectAttributes{
		ProjectLocation: "India",
		Technology:      "solar",
	}

	keywords := BuildKeywords(project)

	assert.Contains(t, keywords, "tariff")
	assert.Contains(t, keywords, "exchange rate")
	assert.Contains(t, keywords, "currency")
	assert.Contains(t, keywords, "import ban")
	assert.Contains(t, keywords, "export ban")
	assert.Contains(t, keywords, "India")
	assert.Contains(t, keywords, "solar")
}

func TestBuildKeywordsWithoutOptionalFields(t *testing.T) {
	keywords := BuildKeywords(types.ProjectAttributes{})

	assert.Len(t, keywords, 5)
}
