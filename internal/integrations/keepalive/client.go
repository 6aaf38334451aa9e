package keepalive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	healthPath    = "/health"
	statusHealthy = "ok"
	maxBodyLog    = 256
)

// Client периодически обращается к собственному /health сервиса,
// чтобы хостинг не усыплял его при отсутствии трафика
type Client struct {
	baseURL    string
	interval   time.Duration
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL string, interval, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		interval: interval,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Ping выполняет один запрос к /health
func (c *Client) Ping(ctx context.Context) (*HealthResponse, error) {
	url := c.baseURL + healthPath

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "excursion-booking-keepalive")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusServiceUnavailable:
		// /health отвечает JSON в обоих случаях
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyLog))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var health HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if resp.StatusCode != http.StatusOK || health.Status != statusHealthy {
		return &health, fmt.Errorf("%w: status=%q, database=%q", ErrUnhealthy, health.Status, health.Database)
	}

	return &health, nil
}

// Run пингует сервис каждые interval до отмены контекста. Ошибки только логируются
func (c *Client) Run(ctx context.Context) {
	c.log.Info("Keepalive started: url=%s%s, interval=%s", c.baseURL, healthPath, c.interval)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.log.Info("Keepalive stopped")
			return
		case <-ticker.C:
			if _, err := c.Ping(ctx); err != nil {
				if ctx.Err() != nil {
					continue
				}
				c.log.Warn("Keepalive ping failed: %v", err)
				continue
			}
			c.log.Info("Keepalive ping ok")
		}
	}
}
