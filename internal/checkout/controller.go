// Package checkout implements the order submission flow: field validation,
// the prescription confirmation gate, the order-create call, the optional
// payment-intent call for card payments, and the cart clear on success.
package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/cart"
	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/models"
	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/validator"
)

// Status is the submission axis of the controller's state machine.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
)

// Form holds the shipping/contact fields plus the selected payment method.
type Form struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	DeliveryNotes string
	PaymentMethod string
}

// CardDetails is transient card input; it is sent to the payment endpoint
// and never stored.
type CardDetails struct {
	CardNumber     string
	ExpiryDate     string
	CVV            string
	CardHolderName string
}

// Confirmer presents the blocking prescription confirmation step and
// reports whether the user accepted.
type Confirmer interface {
	ConfirmPrescriptions(items []cart.Entry) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(items []cart.Entry) bool

func (f ConfirmerFunc) ConfirmPrescriptions(items []cart.Entry) bool { return f(items) }

// Result reports the outcome of a Submit call. Exactly one of the outcome
// shapes applies: field errors (no network call made), a declined
// prescription gate (silent abort), a failure message, or success with the
// created order's id.
type Result struct {
	Success     bool
	OrderID     string
	Message     string
	FieldErrors map[string]string
	Declined    bool
}

const (
	fallbackOrderError   = "Failed to create order"
	fallbackPaymentError = "Payment failed"
)

// Controller drives one checkout form instance. Only one submission may be
// in flight at a time; Submit rejects re-entry while submitting.
type Controller struct {
	cart    *cart.Store
	api     API
	confirm Confirmer
	now     func() time.Time

	mu     sync.Mutex
	status Status
}

func NewController(store *cart.Store, api API, confirm Confirmer) *Controller {
	return &Controller{
		cart:    store,
		api:     api,
		confirm: confirm,
		now:     time.Now,
		status:  StatusIdle,
	}
}

func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

func (c *Controller) setStatus(s Status) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// Submit runs the full order placement sequence. Validation failures and a
// declined prescription gate abort before any network call. Card payments
// create the order first and then the payment intent; a payment failure
// leaves the created order in place.
func (c *Controller) Submit(ctx context.Context, form Form, card CardDetails) Result {
	c.mu.Lock()
	if c.status == StatusSubmitting {
		c.mu.Unlock()
		return Result{Message: "A submission is already in progress"}
	}
	c.status = StatusIdle
	c.mu.Unlock()

	if errs := c.validateForm(form); len(errs) > 0 {
		return Result{FieldErrors: errs}
	}
	if form.PaymentMethod == models.PaymentMethodCard {
		if errs := c.validateCard(card); len(errs) > 0 {
			return Result{FieldErrors: errs}
		}
	}

	items := c.cart.Items()
	if len(items) == 0 {
		return Result{Message: "Your cart is empty"}
	}

	var prescriptionItems []cart.Entry
	for _, it := range items {
		if it.PrescriptionRequired {
			prescriptionItems = append(prescriptionItems, it)
		}
	}
	if len(prescriptionItems) > 0 && !c.confirm.ConfirmPrescriptions(prescriptionItems) {
		return Result{Declined: true}
	}

	c.setStatus(StatusSubmitting)

	var subtotal float64
	orderItems := make([]OrderItemPayload, 0, len(items))
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
		orderItems = append(orderItems, OrderItemPayload{
			Product:      it.ProductID,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Prescription: it.PrescriptionRequired,
		})
	}
	total := subtotal + models.DeliveryCharge

	orderReq := OrderRequest{
		Items:           orderItems,
		ShippingAddress: strings.TrimSpace(form.Address),
		ContactInfo: ContactInfoPayload{
			Name:  strings.TrimSpace(form.Name),
			Email: strings.TrimSpace(form.Email),
			Phone: strings.TrimSpace(form.Phone),
		},
		PaymentMethod:  form.PaymentMethod,
		TotalAmount:    total,
		DeliveryCharge: models.DeliveryCharge,
		DeliveryNotes:  strings.TrimSpace(form.DeliveryNotes),
	}

	orderResp, err := c.api.CreateOrder(ctx, orderReq)
	if err != nil {
		c.setStatus(StatusFailed)
		return Result{Message: fallbackOrderError}
	}
	if !orderResp.Success {
		c.setStatus(StatusFailed)
		return Result{Message: messageOr(orderResp.Message, fallbackOrderError)}
	}
	orderID := orderResp.Order.ID.Hex()

	if form.PaymentMethod == models.PaymentMethodCard {
		payResp, err := c.api.CreatePaymentIntent(ctx, PaymentIntentRequest{
			Amount:        total,
			Currency:      "lkr",
			PaymentMethod: models.PaymentMethodCard,
			Order:         orderID,
			CardDetails: CardDetailsPayload{
				CardNumber:     validator.StripWhitespace(card.CardNumber),
				ExpiryDate:     card.ExpiryDate,
				CVV:            card.CVV,
				CardHolderName: card.CardHolderName,
			},
		})
		// The order created above is intentionally left in place on payment
		// failure; there is no compensating rollback.
		if err != nil {
			c.setStatus(StatusFailed)
			return Result{Message: fallbackPaymentError}
		}
		if !payResp.Success {
			c.setStatus(StatusFailed)
			return Result{Message: messageOr(payResp.Message, fallbackPaymentError)}
		}
	}

	// Order and payment succeeded; a failed cart clear is not a checkout failure.
	_ = c.cart.Clear()
	c.setStatus(StatusSucceeded)
	return Result{Success: true, OrderID: orderID}
}

func (c *Controller) validateForm(form Form) map[string]string {
	errs := map[string]string{}

	if !validator.Required(form.Name) {
		errs["name"] = "Name is required"
	}

	if !validator.Required(form.Email) {
		errs["email"] = "Email is required"
	} else if !validator.Email(form.Email) {
		errs["email"] = "Please enter a valid email address"
	}

	if !validator.Required(form.Phone) {
		errs["phone"] = "Phone number is required"
	} else if !validator.Phone(form.Phone) {
		errs["phone"] = "Please enter a valid phone number"
	}

	if !validator.Required(form.Address) {
		errs["address"] = "Address is required"
	} else if !validator.MinLength(form.Address, 10) {
		errs["address"] = "Please enter a complete address (minimum 10 characters)"
	}

	return errs
}

func (c *Controller) validateCard(card CardDetails) map[string]string {
	errs := map[string]string{}

	if !validator.CardNumber(card.CardNumber) {
		errs["cardNumber"] = "Please enter a valid 16-digit card number"
	}
	if !validator.Expiry(card.ExpiryDate, c.now()) {
		errs["expiryDate"] = "Please enter a valid expiry date (MM/YY)"
	}
	if !validator.CVV(card.CVV) {
		errs["cvv"] = "Please enter a valid CVV"
	}
	if !validator.Required(card.CardHolderName) {
		errs["cardHolderName"] = "Please enter card holder name"
	}

	return errs
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
