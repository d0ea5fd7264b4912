// Package scryfall fetches card data from the Scryfall API, including the
// bulk oracle-cards file the corpus importer streams from.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const (
	baseURL        = "https://api.scryfall.com"
	rateLimitDelay = 100 * time.Millisecond // 100ms between requests (10 req/sec)
	requestTimeout = 30 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second

	// oracleCardsType is the bulk file with one entry per oracle card.
	oracleCardsType = "oracle_cards"
)

// Client represents a Scryfall API client with rate limiting.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	userAgent   string
}

// NewClient creates a new Scryfall API client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		// Rate limiter: 1 request per 100ms = 10 req/sec
		rateLimiter: rate.NewLimiter(rate.Every(rateLimitDelay), 1),
		userAgent:   "mtgecorec/1.0",
	}
}

// GetCardNamed retrieves a card by exact name.
func (c *Client) GetCardNamed(ctx context.Context, name string) (*Card, error) {
	reqURL := fmt.Sprintf("%s/cards/named?exact=%s", baseURL, url.QueryEscape(name))

	var card Card
	if err := c.doRequest(ctx, reqURL, &card); err != nil {
		return nil, fmt.Errorf("failed to get card %q: %w", name, err)
	}
	return &card, nil
}

// GetBulkData retrieves bulk data download information.
func (c *Client) GetBulkData(ctx context.Context) (*BulkDataList, error) {
	reqURL := fmt.Sprintf("%s/bulk-data", baseURL)

	var bulkData BulkDataList
	if err := c.doRequest(ctx, reqURL, &bulkData); err != nil {
		return nil, fmt.Errorf("failed to get bulk data: %w", err)
	}
	return &bulkData, nil
}

// OracleCardsURI returns the download URI of the oracle-cards bulk file.
func (c *Client) OracleCardsURI(ctx context.Context) (string, error) {
	list, err := c.GetBulkData(ctx)
	if err != nil {
		return "", err
	}
	for _, entry := range list.Data {
		if entry.Type == oracleCardsType {
			return entry.DownloadURI, nil
		}
	}
	return "", fmt.Errorf("bulk data listing has no %s entry", oracleCardsType)
}

// StreamBulkFile downloads a bulk JSON file and invokes handle for each
// card. The file is a single large JSON array; it is decoded as a stream
// so the whole corpus never sits in memory at once. A handle error stops
// the stream and is returned.
func (c *Client) StreamBulkFile(ctx context.Context, downloadURI string, handle func(*Card) error) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURI, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	// Bulk files run to hundreds of megabytes; the per-request timeout
	// would cut the download short.
	client := &http.Client{Timeout: 0}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("bulk download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bulk download failed with status %d", resp.StatusCode)
	}

	return DecodeBulkStream(ctx, resp.Body, handle)
}

// DecodeBulkStream decodes a bulk-file JSON array from r, invoking handle
// per card. Split out from the HTTP path so local bulk files can reuse it.
func DecodeBulkStream(ctx context.Context, r io.Reader, handle func(*Card) error) error {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read bulk file opening token: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("bulk file is not a JSON array (got %v)", tok)
	}

	for dec.More() {
		if err := ctx.Err(); err != nil {
			return err
		}

		var card Card
		if err := dec.Decode(&card); err != nil {
			return fmt.Errorf("failed to decode bulk card: %w", err)
		}
		if err := handle(&card); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to read bulk file closing token: %w", err)
	}
	return nil
}

// doRequest performs an HTTP request with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, reqURL string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			if attempt < maxRetries {
				time.Sleep(backoff)
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			body, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				return fmt.Errorf("failed to read response body: %w", err)
			}
			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to parse JSON response: %w", err)
			}
			return nil

		case http.StatusTooManyRequests:
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("rate limited (HTTP 429)")
			if attempt < maxRetries {
				retryAfter := resp.Header.Get("Retry-After")
				if duration, err := time.ParseDuration(retryAfter + "s"); retryAfter != "" && err == nil {
					time.Sleep(duration)
				} else {
					time.Sleep(backoff)
				}
				backoff = min(backoff*2, maxBackoff)
				continue
			}
			return lastErr

		case http.StatusNotFound:
			_ = resp.Body.Close()
			return &NotFoundError{URL: reqURL}

		default:
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()

			var apiErr APIError
			if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Details != "" {
				return &apiErr
			}
			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}
