package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx reply from the storefront API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("storefront: status %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("storefront: %s (%d): %s", e.Code, e.StatusCode, e.Message)
}

// IsCode reports whether err is an APIError with the given code.
func IsCode(err error, code string) bool {
	var apiErr *APIError

	return errors.As(err, &apiErr) && apiErr.Code == code
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Error   *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

// Client talks to the storefront HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the API rooted at baseURL, e.g.
// http://localhost:5000/api. A nil httpClient gets an instrumented default.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) Products(ctx context.Context, limit int) ([]Product, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var products []Product
	if err := do(ctx, c, http.MethodGet, "/products", query, nil, &products); err != nil {
		return nil, err
	}

	return products, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := do(ctx, c, http.MethodGet, "/products/"+strconv.FormatInt(id, 10), nil, nil, &product); err != nil {
		return nil, err
	}

	return &product, nil
}

func (c *Client) Cart(ctx context.Context, owner string) (*Cart, error) {
	var cart Cart
	if err := do(ctx, c, http.MethodGet, "/cart", ownerQuery(owner), nil, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

// AddItem applies a quantity delta for productID. Negative deltas decrement.
func (c *Client) AddItem(ctx context.Context, owner string, productID int64, quantity int) (*Cart, error) {
	body := addItemRequest{ProductID: productID, Quantity: quantity, Owner: owner}

	var cart Cart
	if err := do(ctx, c, http.MethodPost, "/cart", nil, body, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (c *Client) RemoveItem(ctx context.Context, owner string, itemID uuid.UUID) (*Cart, error) {
	var cart Cart
	if err := do(ctx, c, http.MethodDelete, "/cart/"+itemID.String(), ownerQuery(owner), nil, &cart); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (c *Client) Checkout(ctx context.Context, owner string, customer Customer) (*Receipt, error) {
	body := checkoutRequest{Name: customer.Name, Email: customer.Email, Owner: owner}

	var receipt Receipt
	if err := do(ctx, c, http.MethodPost, "/checkout", nil, body, &receipt); err != nil {
		return nil, err
	}

	return &receipt, nil
}

func ownerQuery(owner string) url.Values {
	if owner == "" {
		return nil
	}

	return url.Values{"owner": []string{owner}}
}

// do sends one request and decodes the envelope's data into out.
func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, body any, out *T) error {

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("storefront: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("storefront: failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("storefront: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope[T]
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		if decodeErr == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
			apiErr.Details = env.Error.Details
		}
		return apiErr
	}

	if decodeErr != nil {
		return fmt.Errorf("storefront: failed to decode %s %s response: %w", method, path, decodeErr)
	}

	*out = env.Data

	return nil
}
