package news

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"llm-forex-bot/internal/logger"
	"llm-forex-bot/internal/types"
)

// Scraper pulls headlines straight off the Yahoo Finance quote page. It is
// the fallback when the search API returns no news for a symbol.
type Scraper struct {
	timeout time.Duration
	baseURL string
}

// NewScraper creates a scraper with a bounded request timeout.
func NewScraper(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scraper{
		timeout: timeout,
		baseURL: "https://finance.yahoo.com",
	}
}

// ScrapeHeadlines fetches up to limit headlines from the symbol's news page.
func (s *Scraper) ScrapeHeadlines(ctx context.Context, symbol string, limit int) ([]types.NewsItem, error) {
	if limit <= 0 {
		limit = 10
	}

	c := colly.NewCollector(
		colly.UserAgent("Mozilla/5.0 (compatible; forex-bot/1.0)"),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	items := []types.NewsItem{}
	seen := map[string]bool{}
	fetchedAt := time.Now().Unix()

	c.OnHTML("li.stream-item, li.js-stream-content", func(e *colly.HTMLElement) {
		if len(items) >= limit {
			return
		}
		item, ok := extractHeadline(e.DOM, e.Request)
		if !ok || seen[item.Title] {
			return
		}
		item.Published = fetchedAt
		seen[item.Title] = true
		items = append(items, item)
	})

	var visitErr error
	c.OnError(func(_ *colly.Response, err error) {
		visitErr = err
	})

	pageURL := fmt.Sprintf("%s/quote/%s/news", s.baseURL, symbol)
	if err := c.Visit(pageURL); err != nil {
		return nil, fmt.Errorf("scrape %s: %w", symbol, err)
	}
	c.Wait()

	if visitErr != nil && len(items) == 0 {
		return nil, fmt.Errorf("scrape %s: %w", symbol, visitErr)
	}

	logger.Debug(ctx, "Scraped headlines", "symbol", symbol, "count", len(items))
	return items, nil
}

// extractHeadline pulls title, link and publisher out of one stream item.
func extractHeadline(sel *goquery.Selection, req *colly.Request) (types.NewsItem, bool) {
	title := strings.TrimSpace(sel.Find("h3").First().Text())
	if title == "" {
		return types.NewsItem{}, false
	}

	link, _ := sel.Find("a").First().Attr("href")
	if link != "" && !strings.HasPrefix(link, "http") {
		link = req.AbsoluteURL(link)
	}

	publisher := strings.TrimSpace(sel.Find(".publishing").First().Text())
	if i := strings.Index(publisher, "•"); i >= 0 {
		publisher = strings.TrimSpace(publisher[:i])
	}
	if publisher == "" {
		publisher = "Yahoo Finance"
	}

	return types.NewsItem{Title: title, Publisher: publisher, Link: link}, true
}
