// Package client is the programmatic face of the API for the storefront
// and admin surfaces: REST access, cart state, the admin order feed and
// QR downloads.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ray-remotestate/tableside/models"
)

// APIError carries the server's message alongside the status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to the API server. The base URL is always injected; nothing
// is hardcoded to a local address.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Menu(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := c.do(ctx, http.MethodGet, "/api/menu", nil, &items)
	return items, err
}

func (c *Client) MenuByCategory(ctx context.Context, category models.Category) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := c.do(ctx, http.MethodGet, "/api/menu/category/"+string(category), nil, &items)
	return items, err
}

func (c *Client) CreateMenuItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	var created models.MenuItem
	if err := c.do(ctx, http.MethodPost, "/api/menu", item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) UpdateMenuItem(ctx context.Context, id uuid.UUID, item *models.MenuItem) (*models.MenuItem, error) {
	var updated models.MenuItem
	if err := c.do(ctx, http.MethodPut, "/api/menu/"+id.String(), item, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/menu/"+id.String(), nil, nil)
}

// OrderItemRequest is one checkout line; name and price are the snapshot
// the server stores.
type OrderItemRequest struct {
	MenuItem      uuid.UUID `json:"menuItem"`
	Name          string    `json:"name"`
	Quantity      int       `json:"quantity"`
	Price         float64   `json:"price"`
	SpecialOption string    `json:"specialOption,omitempty"`
}

type CreateOrderRequest struct {
	RestaurantID  uuid.UUID            `json:"restaurantId"`
	Items         []OrderItemRequest   `json:"items"`
	PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	TableNumber   string               `json:"tableNumber"`
	TotalAmount   float64              `json:"totalAmount"`
}

func (c *Client) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := c.do(ctx, http.MethodGet, "/api/orders", nil, &orders)
	return orders, err
}

func (c *Client) MyOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := c.do(ctx, http.MethodGet, "/api/orders/my-orders", nil, &orders)
	return orders, err
}

func (c *Client) Order(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+id.String(), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	body := map[string]models.OrderStatus{"status": status}
	var order models.Order
	if err := c.do(ctx, http.MethodPatch, "/api/orders/"+id.String()+"/status", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CancelOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders/"+id.String()+"/cancel", nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/orders/"+id.String(), nil, nil)
}

func (c *Client) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := c.do(ctx, http.MethodGet, "/api/restaurants", nil, &restaurants)
	return restaurants, err
}

func (c *Client) Restaurant(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := c.do(ctx, http.MethodGet, "/api/restaurants/"+id.String(), nil, &restaurant); err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// Login authenticates and keeps the access token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp); err != nil {
		return err
	}
	c.token = resp.AccessToken
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Buffer
	if body != nil {
		reqBody = &bytes.Buffer{}
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	}

	var req *http.Request
	var err error
	if reqBody != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		if payload.Message == "" {
			payload.Message = resp.Status
		}
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
