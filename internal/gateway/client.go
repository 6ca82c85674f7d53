package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shareit-go/shareit/internal/auth"
	"github.com/shareit-go/shareit/internal/pkg/middleware"
)

// forwardedHeaders are copied from the inbound request to the server.
var forwardedHeaders = []string{
	auth.UserIDHeader,
	middleware.RequestIDHeader,
	"Content-Type",
	"Accept",
}

// UpstreamRequest describes one call to the server tier.
type UpstreamRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// UpstreamResponse is relayed to the gateway caller unchanged.
type UpstreamResponse struct {
	Status      int
	ContentType string
	Body        []byte
}

// Client forwards validated requests to the server tier.
type Client struct {
	base *url.URL
	http *http.Client
}

func NewClient(serverURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(serverURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid server url %q: scheme and host are required", serverURL)
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        100,
				MaxConnsPerHost:     100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

func (c *Client) Forward(ctx context.Context, req UpstreamRequest) (*UpstreamResponse, error) {
	target := *c.base
	target.Path = c.base.Path + req.Path
	target.RawQuery = req.Query.Encode()

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request failed: %w", err)
	}
	for _, h := range forwardedHeaders {
		if v := req.Header.Get(h); v != "" {
			httpReq.Header.Set(h, v)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response failed: %w", err)
	}

	return &UpstreamResponse{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// Ping checks that the server tier answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.Forward(ctx, UpstreamRequest{Method: http.MethodGet, Path: "/healthz"})
	if err != nil {
		return err
	}
	if resp.Status != http.StatusOK {
		return fmt.Errorf("server health check returned %d", resp.Status)
	}
	return nil
}
