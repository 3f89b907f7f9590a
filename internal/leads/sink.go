package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Sink accepts a structured lead and reports success or failure.
type Sink interface {
	Name() string
	Submit(ctx context.Context, lead Lead) error
}

// LogSink records leads in the application log and always succeeds.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogSink{log: log}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Submit(ctx context.Context, lead Lead) error {
	listing := "null"
	if lead.ListingID != nil {
		listing = *lead.ListingID
	}
	s.log.InfoContext(ctx, "lead submitted",
		"id", lead.ID,
		"name", lead.Name,
		"email", lead.Email,
		"phone", lead.Phone,
		"message", lead.Message,
		"listing", listing,
	)
	return nil
}

const defaultCRMTimeout = 8 * time.Second

// CRMSink posts leads as JSON to an HTTP endpoint.
type CRMSink struct {
	endpoint   string
	token      string
	httpClient *http.Client
}

// NewCRMSink returns nil when endpoint is blank.
func NewCRMSink(endpoint, token string, timeout time.Duration) *CRMSink {
	if strings.TrimSpace(endpoint) == "" {
		return nil
	}
	if timeout <= 0 {
		timeout = defaultCRMTimeout
	}
	return &CRMSink{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *CRMSink) Name() string { return "crm" }

func (c *CRMSink) Submit(ctx context.Context, lead Lead) error {
	if c == nil {
		return errors.New("crm sink is nil")
	}
	raw, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("crm marshal lead: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("crm create request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("content-type", "application/json")
	if c.token != "" {
		req.Header.Set("authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("crm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("crm submit failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
