package submit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"kestrel-sir/config"
	"kestrel-sir/core/utils"
)

var ErrSubmitFailed = errors.New("submission failed")

// BuildPayload copies the serialized form values and stamps the submission
// metadata: mode, ISO timestamp, and the target report number when updating.
// A blank status defaults to "Open".
func BuildPayload(fields map[string]string, reportNumber string, now time.Time) map[string]string {
	payload := make(map[string]string, len(fields)+3)
	for k, v := range fields {
		payload[k] = v
	}
	if strings.TrimSpace(payload["status"]) == "" {
		payload["status"] = "Open"
	}
	mode := "create"
	if strings.TrimSpace(reportNumber) != "" {
		mode = "update"
		payload["reportNumber"] = strings.TrimSpace(reportNumber)
	}
	payload["mode"] = mode
	payload["submittedAt"] = now.UTC().Format(time.RFC3339)
	return payload
}

// Client posts submission payloads to the remote form-processing endpoint.
type Client struct {
	http   *resty.Client
	url    string
	logger *utils.Logger
}

func NewClient(cfg config.SubmitConfig, logger *utils.Logger) *Client {
	http := resty.New().
		SetTimeout(cfg.Timeout()).
		SetRetryCount(cfg.RetryCount)
	return &Client{http: http, url: strings.TrimSpace(cfg.URL), logger: logger}
}

// Send performs the single JSON POST. Any 2xx is success; the response body
// is not interpreted (an empty or unparsable body is fine). Everything else
// is ErrSubmitFailed so the caller keeps the draft and tells the user to
// retry.
func (c *Client) Send(ctx context.Context, payload map[string]string) error {
	if c == nil || c.url == "" {
		return fmt.Errorf("%w: submit url not configured", ErrSubmitFailed)
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(c.url)
	if err != nil {
		c.logger.Errorf("submit post %s: %v", c.url, err)
		return fmt.Errorf("%w: %v", ErrSubmitFailed, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		c.logger.Errorf("submit post %s: status %d", c.url, resp.StatusCode())
		return fmt.Errorf("%w: status %d", ErrSubmitFailed, resp.StatusCode())
	}
	return nil
}
