package main

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/models"
	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/validator"
)

type cardDetailsRequest struct {
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
	CardHolderName string `json:"cardHolderName"`
}

type paymentIntentRequest struct {
	Amount        float64            `json:"amount"`
	Currency      string             `json:"currency"`
	PaymentMethod string             `json:"paymentMethod"`
	Order         string             `json:"order"`
	CardDetails   cardDetailsRequest `json:"cardDetails"`
}

// createPaymentIntent is the mocked card gateway: it re-validates the card
// shape server-side, records a completed payment with a generated
// transaction id, and keeps only the last four card digits.
func (app *application) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req paymentIntentRequest
	if !app.readJSON(w, r, &req) {
		return
	}

	if req.PaymentMethod != models.PaymentMethodCard {
		app.fail(w, http.StatusBadRequest, "Payment intents are only created for card payments")
		return
	}
	card := req.CardDetails
	if !validator.CardNumber(card.CardNumber) ||
		!validator.Expiry(card.ExpiryDate, time.Now()) ||
		!validator.CVV(card.CVV) ||
		!validator.Required(card.CardHolderName) {
		app.fail(w, http.StatusBadRequest, "Invalid card details")
		return
	}

	orderID, err := primitive.ObjectIDFromHex(req.Order)
	if err != nil {
		app.fail(w, http.StatusNotFound, "Order not found")
		return
	}
	order, err := app.DB.GetOrder(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.fail(w, http.StatusNotFound, "Order not found")
			return
		}
		app.serverError(w, err)
		return
	}
	if order.User != app.currentUser(r).ID {
		app.fail(w, http.StatusForbidden, "Not authorized to pay for this order")
		return
	}
	if math.Abs(req.Amount-order.TotalAmount) > 0.001 {
		app.fail(w, http.StatusBadRequest, "Payment amount does not match order total")
		return
	}

	number := validator.StripWhitespace(card.CardNumber)
	payment := &models.Payment{
		Order:         order.ID,
		User:          order.User,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Method:        models.PaymentMethodCard,
		Status:        models.PaymentCompleted,
		CardLast4:     number[len(number)-4:],
		TransactionID: uuid.NewString(),
	}

	if err := app.DB.InsertPayment(r.Context(), payment); err != nil {
		app.serverError(w, err)
		return
	}

	app.metrics.RecordPayment(r.Context(), payment.Status)

	app.writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Payment processed successfully",
		"payment": payment,
	})
}

func (app *application) listPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := app.DB.GetAllPayments(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}

	revenue, err := app.DB.GetTotalRevenue(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{
		"success":      true,
		"count":        len(payments),
		"totalRevenue": revenue,
		"payments":     payments,
	})
}

func (app *application) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.URL.Query().Get(":id"))
	if err != nil {
		app.fail(w, http.StatusNotFound, "Payment not found")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if !app.readJSON(w, r, &req) {
		return
	}
	if !models.ValidPaymentStatus(req.Status) {
		app.fail(w, http.StatusBadRequest, "Invalid payment status")
		return
	}

	if err := app.DB.UpdatePaymentStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.fail(w, http.StatusNotFound, "Payment not found")
			return
		}
		app.serverError(w, err)
		return
	}

	app.writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Payment status updated successfully"})
}
