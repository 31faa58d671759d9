package main

import (
	"errors"
	"fmt"
	"math"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/models"
	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/validator"
)

type orderItemRequest struct {
	Product      string  `json:"product"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Prescription bool    `json:"prescription"`
}

type orderCreateRequest struct {
	Items           []orderItemRequest `json:"items"`
	ShippingAddress string             `json:"shippingAddress"`
	ContactInfo     models.ContactInfo `json:"contactInfo"`
	PaymentMethod   string             `json:"paymentMethod"`
	TotalAmount     float64            `json:"totalAmount"`
	DeliveryCharge  float64            `json:"deliveryCharge"`
	DeliveryNotes   string             `json:"deliveryNotes"`
}

// validateOrderRequest checks the submission contract, including the total
// invariant: totalAmount = Σ(price × quantity) + delivery charge.
func validateOrderRequest(req *orderCreateRequest) string {
	if len(req.Items) == 0 {
		return "Order must contain at least one item"
	}
	var subtotal float64
	for _, it := range req.Items {
		if it.Quantity < 1 {
			return "Item quantity must be at least 1"
		}
		if it.Price < 0 {
			return "Item price must be zero or positive"
		}
		subtotal += it.Price * float64(it.Quantity)
	}
	if !validator.Required(req.ShippingAddress) || !validator.MinLength(req.ShippingAddress, 10) {
		return "Please enter a complete address (minimum 10 characters)"
	}
	if !validator.Name(req.ContactInfo.Name) {
		return "Please enter a valid name"
	}
	if !validator.Email(req.ContactInfo.Email) {
		return "Please enter a valid email address"
	}
	if !validator.Phone(req.ContactInfo.Phone) {
		return "Please enter a valid phone number"
	}
	if req.PaymentMethod != models.PaymentMethodCOD && req.PaymentMethod != models.PaymentMethodCard {
		return "Invalid payment method"
	}
	if math.Abs(req.DeliveryCharge-models.DeliveryCharge) > 0.001 {
		return "Invalid delivery charge"
	}
	if math.Abs(req.TotalAmount-(subtotal+models.DeliveryCharge)) > 0.001 {
		return "Order total does not match items"
	}
	return ""
}

func (app *application) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orderCreateRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	if msg := validateOrderRequest(&req); msg != "" {
		app.fail(w, http.StatusBadRequest, msg)
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		pid, err := primitive.ObjectIDFromHex(it.Product)
		if err != nil {
			app.fail(w, http.StatusBadRequest, "Invalid product reference")
			return
		}
		p, err := app.DB.GetProductByOID(r.Context(), pid)
		if err != nil {
			if errors.Is(err, models.ErrNoRecord) {
				app.fail(w, http.StatusBadRequest, "Product not found")
				return
			}
			app.serverError(w, err)
			return
		}
		if p.Quantity < it.Quantity {
			app.fail(w, http.StatusBadRequest, fmt.Sprintf("Insufficient stock for %s", p.Name))
			return
		}
		items = append(items, models.OrderItem{
			Product:      pid,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Prescription: it.Prescription,
		})
	}

	order := &models.Order{
		User:            app.currentUser(r).ID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		ContactInfo:     req.ContactInfo,
		PaymentMethod:   req.PaymentMethod,
		TotalAmount:     req.TotalAmount,
		DeliveryCharge:  req.DeliveryCharge,
		DeliveryNotes:   req.DeliveryNotes,
	}

	if err := app.DB.InsertOrder(r.Context(), order); err != nil {
		app.serverError(w, err)
		return
	}

	app.orderQueue <- *order
	app.metrics.RecordOrder(r.Context(), order.PaymentMethod, order.TotalAmount)

	app.writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Order placed successfully",
		"order":   order,
	})
}

func (app *application) listOrders(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	var err error
	var orders []*models.Order
	if user.Role == models.RoleAdmin {
		orders, err = app.DB.GetAllOrders(r.Context())
	} else {
		orders, err = app.DB.GetOrdersByUser(r.Context(), user.ID)
	}
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"success": true, "count": len(orders), "orders": orders})
}

func (app *application) listSupplierOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := app.DB.GetOrdersBySupplier(r.Context(), app.currentUser(r).ID)
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.writeJSON(w, http.StatusOK, envelope{"success": true, "count": len(orders), "orders": orders})
}

func (app *application) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.fail(w, http.StatusNotFound, "Order not found")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !app.readJSON(w, r, &req) {
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		app.fail(w, http.StatusBadRequest, "Invalid order status")
		return
	}

	if err := app.DB.UpdateOrderStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.fail(w, http.StatusNotFound, "Order not found")
			return
		}
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Order status updated successfully"})
}
