package sphttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Headers sent the same way the SharePoint "v1" client configuration sends them
const (
	acceptHeader      = "application/json;odata.metadata=minimal"
	contentTypeHeader = "application/json;odata.metadata=minimal;charset=utf-8"
	odataVersion      = "4.0"
)

// Response is the subset of the REST reply the web part branches on
type Response struct {
	Status     int
	StatusText string
	Body       []byte
}

// Client issues authenticated GET/POST calls against the SharePoint REST API
type Client interface {
	Get(ctx context.Context, url string) (*Response, error)
	Post(ctx context.Context, url string, body any) (*Response, error)
}

type Options struct {
	AccessToken string        // Sent as a bearer token when not blank
	Timeout     time.Duration // 0 disables the timeout
	Transport   http.RoundTripper
}

// SPHttpClient is the net/http backed Client
type SPHttpClient struct {
	httpClient  *http.Client
	accessToken string
}

func NewClient(opts Options) *SPHttpClient {
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &SPHttpClient{
		httpClient: &http.Client{
			Transport: &LoggingTransport{Transport: transport},
			Timeout:   opts.Timeout,
		},
		accessToken: opts.AccessToken,
	}
}

func (c *SPHttpClient) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("cant request %s, newrequest threw -> %w", url, err)
	}
	return c.do(req)
}

func (c *SPHttpClient) Post(ctx context.Context, url string, body any) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("couldn't encode body for %s -> %w", url, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("cant request %s, newrequest threw -> %w", url, err)
	}
	req.Header.Set("Content-Type", contentTypeHeader)
	return c.do(req)
}

func (c *SPHttpClient) do(req *http.Request) (*Response, error) {
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("OData-Version", odataVersion)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	response, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response from %s failed -> %w", req.URL, err)
	}
	return &Response{
		Status:     response.StatusCode,
		StatusText: StatusText(response),
		Body:       body,
	}, nil
}

// StatusText returns the reason phrase of the status line, eg "Not Found"
func StatusText(response *http.Response) string {
	text := strings.TrimPrefix(response.Status, strconv.Itoa(response.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		return http.StatusText(response.StatusCode)
	}
	return text
}
