// Package apiclient is the thin client for the remote commerce API: list
// products, fetch one product, submit an order. Every failure — network
// fault, non-success status, malformed response — surfaces as *Error with a
// best-effort message. Nothing is retried and no timeout is imposed beyond
// the caller's context.
package apiclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xenking/larek-storefront/internal/domain/order"
	"github.com/xenking/larek-storefront/internal/domain/product"
)

// Config holds the client configuration.
type Config struct {
	// BaseURL is the root of the commerce API, e.g. https://host/api/weblarek.
	BaseURL string
	// CDNBaseURL is prefixed to the relative image paths in product payloads.
	CDNBaseURL string
	// HTTPClient overrides the underlying HTTP client. Defaults to a plain
	// http.Client; callers wire transport middleware through it.
	HTTPClient *http.Client
}

// Client performs the three remote calls of the storefront.
type Client struct {
	baseURL string
	cdn     string
	http    *http.Client
	tracer  trace.Tracer
}

// New validates the configuration and returns a ready client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api base URL is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		cdn:     strings.TrimSuffix(cfg.CDNBaseURL, "/"),
		http:    httpClient,
		tracer:  otel.Tracer("larek-storefront/apiclient"),
	}, nil
}

// ListProducts fetches the full catalog. Image paths are rewritten against
// the configured CDN base.
func (c *Client) ListProducts(ctx context.Context) (product.Catalog, error) {
	ctx, span := c.tracer.Start(ctx, "ListProducts")
	defer span.End()

	body, err := c.do(ctx, http.MethodGet, "/product/", nil)
	if err != nil {
		return product.Catalog{}, c.fail(span, err)
	}
	catalog, err := decodeCatalog(body, c.imageURL)
	if err != nil {
		return product.Catalog{}, c.fail(span, &Error{Message: "malformed product list: " + err.Error()})
	}
	return catalog, nil
}

// GetProduct fetches a single product by ID, with the same image rewriting
// as ListProducts.
func (c *Client) GetProduct(ctx context.Context, id string) (product.Product, error) {
	ctx, span := c.tracer.Start(ctx, "GetProduct")
	defer span.End()

	body, err := c.do(ctx, http.MethodGet, "/product/"+url.PathEscape(id), nil)
	if err != nil {
		return product.Product{}, c.fail(span, err)
	}
	p, err := decodeProduct(body, c.imageURL)
	if err != nil {
		return product.Product{}, c.fail(span, &Error{Message: "malformed product: " + err.Error()})
	}
	return p, nil
}

// CreateOrder submits a validated order and returns the remote result.
func (c *Client) CreateOrder(ctx context.Context, o order.Order) (order.Result, error) {
	ctx, span := c.tracer.Start(ctx, "CreateOrder")
	defer span.End()

	body, err := c.do(ctx, http.MethodPost, "/order", encodeOrder(o))
	if err != nil {
		return order.Result{}, c.fail(span, err)
	}
	result, err := decodeResult(body)
	if err != nil {
		return order.Result{}, c.fail(span, &Error{Message: "malformed order result: " + err.Error()})
	}
	return result, nil
}

// imageURL resolves a relative image path against the CDN base.
func (c *Client) imageURL(path string) string {
	if path == "" || c.cdn == "" {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.cdn + path
}

func (c *Client) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// do performs one HTTP exchange and returns the raw response body. Non-2xx
// responses and transport faults both come back as *Error.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Message: err.Error()}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data, resp.Status),
		}
	}
	return data, nil
}
