package repository

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
)

// NewsFeedRepository pulls recent articles mentioning a symbol from the
// configured RSS feed and extracts their readable text.
type NewsFeedRepository interface {
	Fetch(ctx context.Context, symbol string, maxAgeDays int) ([]entity.StockNews, error)
}

type newsFeedRepository struct {
	cfg        *config.Config
	log        *logger.Logger
	httpClient *http.Client
	parser     *gofeed.Parser
}

func NewNewsFeedRepository(cfg *config.Config, log *logger.Logger) NewsFeedRepository {
	return &newsFeedRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		parser: gofeed.NewParser(),
	}
}

func (r *newsFeedRepository) Fetch(ctx context.Context, symbol string, maxAgeDays int) ([]entity.StockNews, error) {
	feedURL := fmt.Sprintf(r.cfg.News.FeedURL, url.QueryEscape(symbol))
	feed, err := r.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	var articles []entity.StockNews
	for _, item := range feed.Items {
		if item.PublishedParsed == nil || item.PublishedParsed.Before(cutoff) {
			continue
		}

		content, err := r.extractContent(ctx, item.Link)
		if err != nil {
			// A single unreadable article should not sink the whole fetch.
			r.log.Error("Failed to extract article content", logger.ErrorField(err), logger.StringField("link", item.Link))
			content = item.Description
		}

		articles = append(articles, entity.StockNews{
			Symbol:         symbol,
			Title:          item.Title,
			Link:           item.Link,
			Content:        content,
			PublishedAt:    item.PublishedParsed.UTC(),
			HashIdentifier: articleHash(symbol, item.Link),
		})
	}
	return articles, nil
}

func (r *newsFeedRepository) extractContent(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request for article: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stock-advisor/1.0)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("article fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read article body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse article: %w", err)
	}

	docHTML, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(doc.Content())))
	if err != nil {
		return "", fmt.Errorf("failed to parse extracted content: %w", err)
	}

	content := strings.Join(strings.Fields(docHTML.Text()), " ")
	return content, nil
}

func articleHash(symbol, link string) string {
	sum := sha256.Sum256([]byte(symbol + "|" + link))
	return hex.EncodeToString(sum[:])
}
