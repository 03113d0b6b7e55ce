package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/logger"

	"google.golang.org/genai"
)

// geminiSentimentRepository asks the Gemini API to classify a news batch.
type geminiSentimentRepository struct {
	cfg         *config.Config
	log         *logger.Logger
	genAiClient *genai.Client
}

func NewGeminiSentimentRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) SentimentRepository {
	return &geminiSentimentRepository{
		cfg:         cfg,
		log:         log,
		genAiClient: genAiClient,
	}
}

// geminiSentimentResponse is the JSON shape the prompt asks the model for.
type geminiSentimentResponse struct {
	PositiveCount    int      `json:"positive_count"`
	NegativeCount    int      `json:"negative_count"`
	NeutralCount     int      `json:"neutral_count"`
	OverallSentiment string   `json:"overall_sentiment"`
	Score            float64  `json:"score"`
	KeyIssues        []string `json:"key_issues"`
}

func (r *geminiSentimentRepository) Summarize(ctx context.Context, symbol string, articles []entity.StockNews) (*entity.NewsSentimentSummary, error) {
	if len(articles) == 0 {
		return &entity.NewsSentimentSummary{
			Symbol:           symbol,
			OverallSentiment: SentimentNeutral,
		}, nil
	}

	prompt := buildSentimentPrompt(symbol, articles)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate sentiment summary: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var parsed geminiSentimentResponse
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode sentiment response: %w", err)
	}

	var start, end time.Time
	for i, article := range articles {
		if i == 0 || article.PublishedAt.Before(start) {
			start = article.PublishedAt
		}
		if article.PublishedAt.After(end) {
			end = article.PublishedAt
		}
	}

	return &entity.NewsSentimentSummary{
		Symbol:           symbol,
		TotalNews:        len(articles),
		PositiveCount:    parsed.PositiveCount,
		NegativeCount:    parsed.NegativeCount,
		NeutralCount:     parsed.NeutralCount,
		OverallSentiment: strings.ToUpper(parsed.OverallSentiment),
		Score:            parsed.Score,
		KeyIssues:        parsed.KeyIssues,
		SummaryStart:     start,
		SummaryEnd:       end,
	}, nil
}

func buildSentimentPrompt(symbol string, articles []entity.StockNews) string {
	var sb strings.Builder
	sb.WriteString("Classify the sentiment of the following news articles about the stock ")
	sb.WriteString(symbol)
	sb.WriteString(".\nRespond with JSON only, using this schema: ")
	sb.WriteString(`{"positive_count":int,"negative_count":int,"neutral_count":int,"overall_sentiment":"POSITIVE|NEGATIVE|NEUTRAL","score":float between -1 and 1,"key_issues":[string]}`)
	sb.WriteString("\n\nArticles:\n")
	for i, article := range articles {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, article.Title))
		content := article.Content
		if len(content) > 500 {
			content = content[:500]
		}
		sb.WriteString(content)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
