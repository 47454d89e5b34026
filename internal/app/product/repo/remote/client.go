// Package remote is the backing store that talks to the catalog HTTP API
// (/produtos and /categorias).
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/murkotick/catalog-store/internal/app/product/domain"
	"github.com/murkotick/catalog-store/internal/app/product/dto"
)

// DefaultTimeout bounds every request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// ErrUnexpectedStatus is wrapped by every non-2xx response.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// StatusError describes a non-2xx response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string // "error" field of the JSON body, if any
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %s: %d", e.Method, e.URL, ErrUnexpectedStatus, e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Client implements contracts.BackingStore against the catalog HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient returns a client for the API rooted at baseURL, e.g. http://localhost:8989/api.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authoritative is true: the server may assign its own id and fields.
func (c *Client) Authoritative() bool { return true }

// FetchAll lists every product.
func (c *Client) FetchAll(ctx context.Context) ([]domain.Product, error) {
	return c.List(ctx, dto.ListParams{})
}

// List lists products filtered and paged by the server.
func (c *Client) List(ctx context.Context, params dto.ListParams) ([]domain.Product, error) {
	out := make([]domain.Product, 0)
	if err := c.do(ctx, http.MethodGet, "/produtos", encodeParams(params), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPost, "/produtos", nil, p, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, id string, patch domain.Patch) (domain.Product, error) {
	var out domain.Product
	if err := c.do(ctx, http.MethodPut, "/produtos/"+url.PathEscape(id), nil, patch, &out); err != nil {
		return domain.Product{}, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/produtos/"+url.PathEscape(id), nil, nil, nil)
}

// Categories lists the categories known to the server.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	out := make([]domain.Category, 0)
	if err := c.do(ctx, http.MethodGet, "/categorias", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug("catalog api request", "method", method, "url", target)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method:     method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, target, err)
	}
	return nil
}

func encodeParams(p dto.ListParams) url.Values {
	q := url.Values{}
	if p.Search != "" {
		q.Set(dto.ParamSearch, p.Search)
	}
	if p.Category != "" {
		q.Set(dto.ParamCategory, p.Category)
	}
	if p.MaxPrice != 0 {
		q.Set(dto.ParamMaxPrice, strconv.FormatFloat(p.MaxPrice, 'f', -1, 64))
	}
	if p.Page > 0 {
		q.Set(dto.ParamPage, strconv.Itoa(p.Page))
	}
	return q
}

func errorMessage(r io.Reader) string {
	var body dto.ErrorBody
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil {
		return ""
	}
	return body.Error
}
