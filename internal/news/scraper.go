package news

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/ZanzyTHEbar/project-risk-radar/internal/config"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/monitoring"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/resilience"
	"github.com/ZanzyTHEbar/project-risk-radar/internal/types"
)

const (
	scraperUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	// Headlines shorter than this are navigation labels, not stories.
	minHeadlineLength = 10
)

// Scraper fetches candidate headlines from configured news pages. It is
// a best-effort source: a failing page is logged and skipped, never
// fatal to the batch.
type Scraper struct {
	sources []config.NewsSource
	client  *resilience.HTTPClient
	logger  *monitoring.Logger
	metrics *monitoring.Metrics
}

// NewScraper builds a scraper over the given sources with a pooled,
// circuit-broken HTTP client. metrics may be nil, in which case
// fetches are logged but not counted.
func NewScraper(sources []config.NewsSource, logger *monitoring.Logger, metrics *monitoring.Metrics) *Scraper {
	if logger == nil {
		logger = &monitoring.Logger{Logger: slog.Default()}
	}

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		FailureThreshold: 5,
		RecoveryTimeout:  30 * time.Second,
		SuccessThreshold: 3,
	})

	return &Scraper{
		sources: sources,
		client:  resilience.NewHTTPClient(10, 10*time.Second, breaker),
		logger:  logger,
		metrics: metrics,
	}
}

// FetchCandidateItems pulls all configured pages and extracts headline
// candidates. Source order is preserved, so repeated runs against the
// same pages produce the same ordering.
func (s *Scraper) FetchCandidateItems(ctx context.Context) []types.NewsItem {
	var items []types.NewsItem

	for _, source := range s.sources {
		start := time.Now()
		fetched, err := s.fetchSource(ctx, source)
		s.logger.ExternalAPILogger("news_source", source.Domain, time.Since(start), err == nil)
		if s.metrics != nil {
			s.metrics.RecordExternalAPICall("news_source", err == nil)
		}
		if err != nil {
			s.logger.Warn("news source fetch failed",
				"url", source.URL,
				"error", err,
			)
			continue
		}
		items = append(items, fetched...)
	}

	return items
}

func (s *Scraper) fetchSource(ctx context.Context, source config.NewsSource) ([]types.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", scraperUserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", source.URL, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source.URL, err)
	}

	date := time.Now().Format("2006-01-02")
	var items []types.NewsItem

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && isHeadlineTag(n.Data) {
			title := strings.TrimSpace(nodeText(n))
			if len(title) > minHeadlineLength {
				items = append(items, types.NewsItem{
					Title:  title,
					Source: source.Domain,
					Link:   absoluteLink(firstLink(n), source.Domain),
					Date:   date,
				})
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return items, nil
}

func isHeadlineTag(tag string) bool {
	return tag == "h2" || tag == "h3" || tag == "h4"
}

// nodeText concatenates all text under a node.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeText(c))
	}
	return sb.String()
}

// firstLink returns the href of the first anchor under a node, if any.
func firstLink(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "a" {
		for _, attr := range n.Attr {
			if attr.Key == "href" {
				return attr.Val
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if link := firstLink(c); link != "" {
			return link
		}
	}
	return ""
}

func absoluteLink(link, domain string) string {
	if link == "" || strings.HasPrefix(link, "http") {
		return link
	}
	return "https://" + domain + link
}

// Stats exposes the underlying client state for diagnostics.
func (s *Scraper) Stats() map[string]interface{} {
	return s.client.Stats()
}
