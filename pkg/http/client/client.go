package client

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response carries a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Interface fetches absolute URLs.
type Interface interface {
	Get(ctx context.Context, rawURL string) (*Response, error)
}

type Client struct {
	httpClient *http.Client
	GetFunc    func(ctx context.Context, rawURL string) (*Response, error)
}

var _ Interface = (*Client)(nil)

type Options struct {
	// ConnectTimeout bounds dialing the upstream host.
	ConnectTimeout time.Duration
	// ReadTimeout bounds waiting for and reading the response once connected.
	ReadTimeout time.Duration
}

func New(opts Options) *Client {
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 3 * time.Second
	}

	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = 4 * time.Second
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   opts.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   opts.ConnectTimeout,
		ResponseHeaderTimeout: opts.ReadTimeout,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       90 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   opts.ConnectTimeout + opts.ReadTimeout,
		},
	}
}

func (c *Client) Get(ctx context.Context, rawURL string) (*Response, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			return
		}
	}(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
