package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/AlessandroLop/evaluacion-api/internal/domain"
	"github.com/AlessandroLop/evaluacion-api/internal/metrics"
)

const (
	apiKeyHeader     = "Ocp-Apim-Subscription-Key"
	documentLanguage = "es"
	maxDetailBytes   = 512
)

// Client calls the external text-analytics provider. Every failure mode is
// translated into a domain error so handlers never inspect transport
// details.
type Client struct {
	endpoint   string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a gateway against the given provider endpoint.
func NewClient(endpoint, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

type providerDocument struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

type providerRequest struct {
	Documents []providerDocument `json:"documents"`
}

type providerResponse struct {
	Documents []struct {
		ID               string                  `json:"id"`
		Sentiment        string                  `json:"sentiment"`
		ConfidenceScores domain.ConfidenceScores `json:"confidenceScores"`
	} `json:"documents"`
	Errors []struct {
		ID    string `json:"id"`
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	} `json:"errors"`
}

// Analyze sends the texts to the provider and returns one result per text,
// in input order. The call is aborted at the configured timeout.
func (c *Client) Analyze(ctx context.Context, texts []string) ([]domain.SentimentResult, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload := providerRequest{Documents: make([]providerDocument, len(texts))}
	for i, text := range texts {
		payload.Documents[i] = providerDocument{
			ID:       strconv.Itoa(i + 1),
			Language: documentLanguage,
			Text:     text,
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode provider request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create provider request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			metrics.SentimentProviderRequests.WithLabelValues("timeout").Inc()
			return nil, fmt.Errorf("%w after %s", domain.ErrProviderTimeout, c.timeout)
		}
		metrics.SentimentProviderRequests.WithLabelValues("connection").Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderConnection, err)
	}
	defer resp.Body.Close()

	if err := translateStatus(resp); err != nil {
		return nil, err
	}

	var parsed providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.SentimentProviderRequests.WithLabelValues("error").Inc()
		return nil, &domain.ProviderError{StatusCode: resp.StatusCode, Detail: "malformed response body"}
	}

	results, err := matchResults(texts, parsed)
	if err != nil {
		metrics.SentimentProviderRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.SentimentProviderRequests.WithLabelValues("success").Inc()
	return results, nil
}

func translateStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		metrics.SentimentProviderRequests.WithLabelValues("auth").Inc()
		return domain.ErrProviderAuth
	case resp.StatusCode == http.StatusTooManyRequests:
		metrics.SentimentProviderRequests.WithLabelValues("rate_limited").Inc()
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &domain.ProviderRateLimitError{RetryAfterSeconds: retryAfter}
	case resp.StatusCode == http.StatusServiceUnavailable:
		metrics.SentimentProviderRequests.WithLabelValues("unavailable").Inc()
		return domain.ErrProviderUnavailable
	default:
		metrics.SentimentProviderRequests.WithLabelValues("error").Inc()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetailBytes))
		return &domain.ProviderError{StatusCode: resp.StatusCode, Detail: string(detail)}
	}
}

// matchResults pairs provider documents back to the input texts via the
// numeric IDs assigned in the request.
func matchResults(texts []string, parsed providerResponse) ([]domain.SentimentResult, error) {
	byID := make(map[string]domain.SentimentResult, len(parsed.Documents))
	for _, doc := range parsed.Documents {
		byID[doc.ID] = domain.SentimentResult{
			Sentiment:  doc.Sentiment,
			Confidence: doc.ConfidenceScores,
		}
	}

	results := make([]domain.SentimentResult, len(texts))
	for i, text := range texts {
		result, ok := byID[strconv.Itoa(i+1)]
		if !ok {
			return nil, &domain.ProviderError{
				StatusCode: http.StatusOK,
				Detail:     fmt.Sprintf("provider returned no result for document %d", i+1),
			}
		}
		result.Text = text
		results[i] = result
	}
	return results, nil
}
