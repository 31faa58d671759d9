package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/cart"
	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/models"
)

func TestClientCreateOrder(t *testing.T) {
	orderID := primitive.NewObjectID()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/orders", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.InDelta(t, 700, req.TotalAmount, 0.001)

		json.NewEncoder(w).Encode(OrderResponse{Success: true, Order: models.Order{ID: orderID}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-123")
	resp, err := c.CreateOrder(context.Background(), OrderRequest{
		Items:       []OrderItemPayload{{Product: "p1", Quantity: 1, Price: 500}},
		TotalAmount: 700,
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, orderID, resp.Order.ID)
}

func TestClientServerErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Insufficient stock"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-123")
	resp, err := c.CreateOrder(context.Background(), OrderRequest{})

	require.NoError(t, err, "business errors travel in the envelope, not as transport errors")
	assert.False(t, resp.Success)
	assert.Equal(t, "Insufficient stock", resp.Message)
}

func TestClientCreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payments/create-intent", r.URL.Path)
		var req PaymentIntentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "card", req.PaymentMethod)
		json.NewEncoder(w).Encode(PaymentIntentResponse{Success: true})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "tok-123")
	resp, err := c.CreatePaymentIntent(context.Background(), PaymentIntentRequest{
		Amount:        1700,
		Currency:      "lkr",
		PaymentMethod: "card",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestHydrateOverlaysLiveProductData(t *testing.T) {
	liveID := primitive.NewObjectID()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/products/"+liveID.Hex() {
			json.NewEncoder(w).Encode(ProductResponse{Success: true, Product: models.Product{
				ID:                   liveID,
				Name:                 "Paracetamol 500mg",
				Price:                650, // price changed since the item was carted
				PrescriptionRequired: true,
			}})
			return
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Product not found"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	items := []cart.Entry{
		{ProductID: liveID.Hex(), Name: "Paracetamol 500mg", Price: 500, Quantity: 2},
		{ProductID: "gone", Name: "Old Item", Price: 100, Quantity: 1},
	}

	out := Hydrate(context.Background(), c, items)

	require.Len(t, out, 2)
	assert.InDelta(t, 650, out[0].Price, 0.001)
	assert.True(t, out[0].PrescriptionRequired)
	assert.Equal(t, 2, out[0].Quantity, "cart quantity preserved")
	assert.InDelta(t, 100, out[1].Price, 0.001, "failed lookups keep the stale entry")
}
