package push

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// GatewayClient delivers push notifications through the platform's
// external push gateway over HTTP. Sends are rate limited so a large
// sweep cannot flood the gateway. Failures are returned to the caller,
// which always treats them as non-fatal.
type GatewayClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

func NewGatewayClient(baseURL, apiKey string, ratePerSecond float64, logger *logrus.Logger) *GatewayClient {
	return &GatewayClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(ratePerSecond), int(ratePerSecond)),
		logger:     logger,
	}
}

type sendRequest struct {
	Token string            `json:"token"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// Send posts one message to the gateway. The data payload carries the
// notification type and reference ids so the mobile client can deep-link.
func (c *GatewayClient) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("push rate limiter: %w", err)
	}

	payload, err := json.Marshal(sendRequest{Token: deviceToken, Title: title, Body: body, Data: data})
	if err != nil {
		return fmt.Errorf("failed to encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push gateway request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}
	c.logger.Debugf("Push delivered to gateway (status %d).", resp.StatusCode)
	return nil
}
