package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang-stock-advisor/internal/advisor/analysis"
	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/logger"

	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// MarketDataRepository fetches OHLCV history and current quotes from the
// chart API. Series are cached in-process for the configured TTL.
type MarketDataRepository interface {
	GetStockData(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error)
	GetSnapshot(ctx context.Context, symbols []string) (dto.PriceSnapshot, error)
}

type marketDataRepository struct {
	cfg            *config.Config
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
	seriesCache    *cache.Cache
}

func NewMarketDataRepository(cfg *config.Config, log *logger.Logger) (MarketDataRepository, error) {
	if cfg.MarketData.MaxRequestPerMinute <= 0 {
		return nil, fmt.Errorf("market_data.max_request_per_minute must be positive")
	}
	secondsPerRequest := time.Minute / time.Duration(cfg.MarketData.MaxRequestPerMinute)
	cacheTTL := cfg.MarketData.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &marketDataRepository{
		cfg: cfg,
		log: log,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
		seriesCache:    cache.New(cacheTTL, 2*cacheTTL),
	}, nil
}

// chartResponse mirrors the chart API payload. Quote arrays may contain
// nulls for halted sessions, hence the pointer elements.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (r *marketDataRepository) GetStockData(ctx context.Context, param dto.GetStockDataParam) (*dto.StockData, error) {
	if param.Range == "" {
		param.Range = r.cfg.MarketData.DefaultRange
	}
	if param.Interval == "" {
		param.Interval = r.cfg.MarketData.DefaultInterval
	}

	cacheKey := fmt.Sprintf("%s:%s:%s", param.Symbol, param.Range, param.Interval)
	if cached, found := r.seriesCache.Get(cacheKey); found {
		if data, ok := cached.(*dto.StockData); ok {
			return data, nil
		}
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s",
		r.cfg.MarketData.BaseURL, param.Symbol, param.Range, param.Interval)

	body, err := r.sendRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode chart response: %w", err)
	}
	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", param.Symbol, parsed.Chart.Error.Description)
	}
	if len(parsed.Chart.Result) == 0 || len(parsed.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart API returned no data for %s", param.Symbol)
	}

	result := parsed.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	data := &dto.StockData{
		Symbol:      param.Symbol,
		MarketPrice: result.Meta.RegularMarketPrice,
	}
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		point := analysis.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			point.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			point.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			point.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			point.Volume = *quote.Volume[i]
		}
		data.OHLCV = append(data.OHLCV, point)
	}

	r.seriesCache.Set(cacheKey, data, cache.DefaultExpiration)
	return data, nil
}

// GetSnapshot fetches the current price of each symbol. A symbol whose
// quote cannot be fetched is left out of the snapshot rather than failing
// the whole sweep.
func (r *marketDataRepository) GetSnapshot(ctx context.Context, symbols []string) (dto.PriceSnapshot, error) {
	snapshot := dto.PriceSnapshot{}
	for _, symbol := range symbols {
		data, err := r.GetStockData(ctx, dto.GetStockDataParam{
			Symbol:   symbol,
			Range:    "1d",
			Interval: r.cfg.MarketData.DefaultInterval,
		})
		if err != nil {
			r.log.Error("Failed to fetch quote for snapshot", logger.ErrorField(err), logger.StringField("symbol", symbol))
			continue
		}
		if data.MarketPrice != 0 {
			snapshot[symbol] = data.MarketPrice
		}
	}
	return snapshot, nil
}

func (r *marketDataRepository) sendRequest(ctx context.Context, url string) ([]byte, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; stock-advisor/1.0)")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chart API returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
