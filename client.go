package myft

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/financial-times/myft.go/internal/codec"
	"github.com/financial-times/myft.go/pkg/constants"
	"github.com/financial-times/myft.go/pkg/logger"
)

// Client talks to the myFT API. It is safe for concurrent use.
type Client struct {
	apiRoot    string
	headers    http.Header
	production bool

	httpClient *http.Client
	codec      codec.Codec
	logger     logger.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the HTTP client, e.g. to plug in a test transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New returns a Client for cfg. Only cfg.APIRoot is required.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIRoot == "" {
		return nil, ErrNoAPIRoot
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}

	c := &Client{
		apiRoot:    strings.TrimSuffix(cfg.APIRoot, "/") + "/",
		headers:    cfg.headers(),
		production: cfg.IsProduction(),
		httpClient: &http.Client{Timeout: timeout},
		codec:      codec.NewJSON(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logger.Default()
	}

	return c, nil
}

func (c *Client) SetHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Headers returns a copy of the headers sent with every request.
func (c *Client) Headers() http.Header {
	return c.headers.Clone()
}

func (c *Client) APIRoot() string {
	return c.apiRoot
}

type RequestOption func(*requestOptions)

type requestOptions struct {
	headers http.Header
	timeout time.Duration
}

// WithHeaders adds per-call headers. They override every other header of the same name.
func WithHeaders(headers map[string]string) RequestOption {
	return func(o *requestOptions) {
		for k, v := range headers {
			o.header().Set(k, v)
		}
	}
}

func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.header().Set(key, value)
	}
}

// WithTimeout bounds the whole call, including reading the response body.
func WithTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) {
		o.timeout = d
	}
}

func (o *requestOptions) header() http.Header {
	if o.headers == nil {
		o.headers = http.Header{}
	}
	return o.headers
}

// FetchJSON sends one request to the API and returns the JSON response body.
//
// For GET, data is encoded as the query string and must be nil, [Params], url.Values,
// map[string]any or map[string]string. For other methods data is marshalled as the JSON
// body. In production an absent body is sent as {} with an explicit content length.
func (c *Client) FetchJSON(ctx context.Context, method, endpoint string, data any, opts ...RequestOption) ([]byte, error) {
	if strings.Contains(endpoint, "undefined") {
		return nil, &InvalidPathError{Path: endpoint}
	}

	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	data = Sanitize(data)
	target := c.apiRoot + strings.TrimPrefix(endpoint, "/")

	var body io.Reader = http.NoBody
	if method == http.MethodGet {
		query, err := encodeQuery(data)
		if err != nil {
			return nil, err
		}
		target = appendQuery(target, query)
	} else {
		payload, err := c.requestBody(data)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s body: %w", method, endpoint, err)
		}
		if payload != nil {
			body = bytes.NewReader(payload)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header = c.headers.Clone()
	for k, v := range o.headers {
		req.Header[k] = v
	}

	return c.do(req, endpoint)
}

func (c *Client) requestBody(data any) ([]byte, error) {
	if data == nil {
		if !c.production {
			return nil, nil
		}
		data = struct{}{}
	}
	return c.codec.Marshal(data)
}

func appendQuery(target, query string) string {
	if query == "" {
		return target
	}
	if strings.Contains(target, "?") {
		return target + "&" + query
	}
	return target + "?" + query
}

func (c *Client) do(req *http.Request, endpoint string) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("myft request", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode)

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &NotFoundError{Method: req.Method, Path: endpoint}
	}

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: req.Method, URL: req.URL.String(), Err: err}
	}

	var decoded any
	if err := c.codec.Unmarshal(respBytes, &decoded); err != nil {
		return nil, &MalformedResponseError{StatusCode: resp.StatusCode, Body: respBytes, Err: err}
	}

	return respBytes, nil
}

// Fetch calls FetchJSON and decodes the response into T.
func Fetch[T any](ctx context.Context, c *Client, method, endpoint string, data any, opts ...RequestOption) (T, error) {
	var out T

	raw, err := c.FetchJSON(ctx, method, endpoint, data, opts...)
	if err != nil {
		return out, err
	}
	if err := c.codec.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %s %s response: %w", method, endpoint, err)
	}

	return out, nil
}
