package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gfranzini/expense-rate-service/internal/apperrors"
	"github.com/gfranzini/expense-rate-service/internal/domain/entity"
	"github.com/gfranzini/expense-rate-service/internal/infrastructure/logger"
)

const defaultTimeout = 10 * time.Second

// Config carries the provider endpoint and credential. It is injected at
// construction; the client never reads ambient environment state.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// CurrencyAPIClient fetches full per-date rate tables from a
// currencyapi-style provider.
type CurrencyAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewCurrencyAPIClient creates a new provider client. A nil httpClient gets
// a default with a request timeout; callers must never block indefinitely
// on the provider.
func NewCurrencyAPIClient(cfg Config, httpClient *http.Client, log logger.Logger) *CurrencyAPIClient {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &CurrencyAPIClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
		logger:     log,
	}
}

// rateValue tolerates both body shapes the provider has been observed to
// use: a bare number, or an object like {"code":"EUR","value":0.9}.
type rateValue float64

func (v *rateValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = rateValue(n)
		return nil
	}

	var obj struct {
		Value float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("rate value is neither a number nor an object: %s", data)
	}
	*v = rateValue(obj.Value)
	return nil
}

type providerResponse struct {
	Data map[string]rateValue `json:"data"`
}

// FetchRates retrieves the full rate table for one calendar date. Every
// failure mode wraps apperrors.ErrProviderUnavailable with the date and the
// cause; "not yet available" is indistinguishable from any other
// provider-side absence and is reported the same way. No retry happens
// here; retry policy belongs to the caller.
func (c *CurrencyAPIClient) FetchRates(ctx context.Context, date time.Time) (*entity.RateTable, error) {
	day := entity.DateOnly(date)
	dateKey := day.Format(entity.DateLayout)

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("date", dateKey)
	reqURL := c.baseURL + "?" + params.Encode()

	c.logger.Debug("Fetching rates from provider", map[string]interface{}{
		"date": dateKey,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %v", apperrors.ErrProviderUnavailable, dateKey, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: request for %s failed: %v", apperrors.ErrProviderUnavailable, dateKey, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing provider response body", map[string]interface{}{
				"date":  dateKey,
				"error": closeErr.Error(),
			})
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response for %s: %v", apperrors.ErrProviderUnavailable, dateKey, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: provider returned status %d for %s", apperrors.ErrProviderUnavailable, resp.StatusCode, dateKey)
	}

	var parsed providerResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: decoding response for %s: %v", apperrors.ErrProviderUnavailable, dateKey, err)
	}

	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("%w: response for %s carries no rates", apperrors.ErrProviderUnavailable, dateKey)
	}

	rates := make(map[string]float64, len(parsed.Data))
	for code, v := range parsed.Data {
		rates[code] = float64(v)
	}

	c.logger.Info("Fetched rate table from provider", map[string]interface{}{
		"date":       dateKey,
		"currencies": len(rates),
	})

	return &entity.RateTable{
		Date:        day,
		RetrievedAt: time.Now().UTC(),
		Rates:       rates,
	}, nil
}
