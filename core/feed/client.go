package feed

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

var ErrFeedUnavailable = errors.New("feed unavailable")

// Client fetches the published CSV feed.
type Client struct {
	http   *resty.Client
	url    string
	logger *utils.Logger
}

func NewClient(cfg config.FeedConfig, logger *utils.Logger) *Client {
	http := resty.New().
		SetTimeout(cfg.Timeout()).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(500 * time.Millisecond)
	return &Client{http: http, url: strings.TrimSpace(cfg.URL), logger: logger}
}

// Fetch downloads and parses the feed. Any transport error or non-2xx
// response surfaces as ErrFeedUnavailable; the caller decides how to degrade.
func (c *Client) Fetch(ctx context.Context) (*Document, error) {
	if c == nil || c.url == "" {
		return nil, fmt.Errorf("%w: feed url not configured", ErrFeedUnavailable)
	}
	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		c.logger.Errorf("feed fetch %s: %v", c.url, err)
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		c.logger.Errorf("feed fetch %s: status %d", c.url, resp.StatusCode())
		return nil, fmt.Errorf("%w: status %d", ErrFeedUnavailable, resp.StatusCode())
	}
	return ParseDocument(string(resp.Body())), nil
}
