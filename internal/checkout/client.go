package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/cart"
	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/models"
)

// Request/response contracts for the three endpoints the checkout flow
// consumes. Bodies are decoded into these tagged envelopes at the boundary
// rather than trusted implicitly.

type OrderItemPayload struct {
	Product      string  `json:"product"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Prescription bool    `json:"prescription"`
}

type ContactInfoPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OrderRequest struct {
	Items           []OrderItemPayload `json:"items"`
	ShippingAddress string             `json:"shippingAddress"`
	ContactInfo     ContactInfoPayload `json:"contactInfo"`
	PaymentMethod   string             `json:"paymentMethod"`
	TotalAmount     float64            `json:"totalAmount"`
	DeliveryCharge  float64            `json:"deliveryCharge"`
	DeliveryNotes   string             `json:"deliveryNotes"`
}

type OrderResponse struct {
	Success bool         `json:"success"`
	Order   models.Order `json:"order"`
	Message string       `json:"message,omitempty"`
}

type CardDetailsPayload struct {
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
	CardHolderName string `json:"cardHolderName"`
}

type PaymentIntentRequest struct {
	Amount        float64            `json:"amount"`
	Currency      string             `json:"currency"`
	PaymentMethod string             `json:"paymentMethod"`
	Order         string             `json:"order"`
	CardDetails   CardDetailsPayload `json:"cardDetails"`
}

type PaymentIntentResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type ProductResponse struct {
	Success bool           `json:"success"`
	Product models.Product `json:"product"`
	Message string         `json:"message,omitempty"`
}

// API is the slice of the server the submission flow needs.
type API interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error)
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResponse, error)
}

// ProductAPI hydrates cart lines with live product data.
type ProductAPI interface {
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
}

// Client talks JSON over HTTP to the pharmacy API with a bearer token.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTPClient: &http.Client{},
	}
}

func (c *Client) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	var resp ProductResponse
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResponse, error) {
	var resp PaymentIntentResponse
	if err := c.do(ctx, http.MethodPost, "/api/payments/create-intent", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	// Error statuses carry the same envelope; the success flag and message
	// come from the body either way.
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// Hydrate overlays live product data (price, prescription flag, expiry)
// onto cart entries before checkout. Entries whose product lookup fails are
// kept as-is.
func Hydrate(ctx context.Context, api ProductAPI, items []cart.Entry) []cart.Entry {
	for i := range items {
		resp, err := api.GetProduct(ctx, items[i].ProductID)
		if err != nil || !resp.Success {
			continue
		}
		p := resp.Product
		items[i].Name = p.Name
		items[i].Price = p.Price
		items[i].Image = p.Image
		items[i].Brand = p.Brand
		items[i].Category = p.Category
		items[i].PrescriptionRequired = p.PrescriptionRequired
		items[i].ExpiryDate = p.ExpiryDate
	}
	return items
}
