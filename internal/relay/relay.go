package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Yana3030-web/stroymaster-website/internal/config"
	"github.com/Yana3030-web/stroymaster-website/internal/model"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Sender delivers an order email through the transactional relay.
type Sender interface {
	// Send relays the order. The caller bounds the call with its own
	// context deadline.
	Send(ctx context.Context, payload *model.OrderPayload) error
}

// sendThrottle matches the relay provider's rate limit: one send per 10
// seconds per application.
var sendThrottle = rate.Every(10 * time.Second)

// Client posts orders to an EmailJS-compatible endpoint, filling a
// pre-configured template.
type Client struct {
	cfg        config.RelayConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a relay client from the given configuration.
func NewClient(cfg config.RelayConfig, logger zerolog.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		limiter: rate.NewLimiter(sendThrottle, 1),
		logger:  logger.With().Str("component", "email_relay").Logger(),
	}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// Send relays the order email. It respects the provider throttle, so a
// second order inside the 10-second window waits (within the caller's
// deadline) rather than being rejected by the provider.
func (c *Client) Send(ctx context.Context, payload *model.OrderPayload) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("relay throttle: %w", err)
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		TemplateParams: TemplateParams(payload, c.cfg.SiteName),
	})
	if err != nil {
		return fmt.Errorf("failed to encode relay request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Msg("relay request failed")
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("response", string(respBody)).
			Msg("relay rejected the order email")
		return fmt.Errorf("relay rejected request: status %d", resp.StatusCode)
	}

	c.logger.Info().
		Str("customer", payload.Name).
		Int("items", len(payload.Items)).
		Msg("order email relayed")
	return nil
}
