package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/cart"
	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/models"
)

type fakeAPI struct {
	orderCalls   int
	paymentCalls int
	lastOrder    OrderRequest
	lastPayment  PaymentIntentRequest

	orderResp *OrderResponse
	orderErr  error
	payResp   *PaymentIntentResponse
	payErr    error
}

func (f *fakeAPI) CreateOrder(_ context.Context, req OrderRequest) (*OrderResponse, error) {
	f.orderCalls++
	f.lastOrder = req
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	if f.orderResp != nil {
		return f.orderResp, nil
	}
	return &OrderResponse{Success: true, Order: models.Order{ID: primitive.NewObjectID()}}, nil
}

func (f *fakeAPI) CreatePaymentIntent(_ context.Context, req PaymentIntentRequest) (*PaymentIntentResponse, error) {
	f.paymentCalls++
	f.lastPayment = req
	if f.payErr != nil {
		return nil, f.payErr
	}
	if f.payResp != nil {
		return f.payResp, nil
	}
	return &PaymentIntentResponse{Success: true}, nil
}

func accept() Confirmer {
	return ConfirmerFunc(func([]cart.Entry) bool { return true })
}

func decline() Confirmer {
	return ConfirmerFunc(func([]cart.Entry) bool { return false })
}

func validForm(method string) Form {
	return Form{
		Name:          "Kasun Perera",
		Email:         "kasun@example.com",
		Phone:         "0771234567",
		Address:       "12 Galle Road, Colombo 03",
		PaymentMethod: method,
	}
}

func validCard() CardDetails {
	return CardDetails{
		CardNumber:     "4111 1111 1111 1111",
		ExpiryDate:     "12/27",
		CVV:            "123",
		CardHolderName: "K Perera",
	}
}

func testController(t *testing.T, api API, confirm Confirmer, items ...cart.Entry) (*Controller, *cart.Store) {
	t.Helper()
	store := cart.NewStore(&cart.MemoryStorage{})
	for _, it := range items {
		for i := 0; i < it.Quantity; i++ {
			e := it
			require.NoError(t, store.Add(e))
		}
	}
	c := NewController(store, api, confirm)
	c.now = func() time.Time { return time.Date(2025, time.April, 15, 0, 0, 0, 0, time.UTC) }
	return c, store
}

func TestSubmitValidationBlocksNetwork(t *testing.T) {
	api := &fakeAPI{}
	c, _ := testController(t, api, accept(), cart.Entry{ProductID: "p1", Price: 100, Quantity: 1})

	res := c.Submit(context.Background(), Form{PaymentMethod: models.PaymentMethodCOD}, CardDetails{})

	assert.False(t, res.Success)
	for _, field := range []string{"name", "email", "phone", "address"} {
		assert.Contains(t, res.FieldErrors, field)
	}
	assert.Zero(t, api.orderCalls, "no network call on validation failure")
	assert.Equal(t, StatusIdle, c.Status())
}

func TestSubmitAddressTooShort(t *testing.T) {
	api := &fakeAPI{}
	c, _ := testController(t, api, accept(), cart.Entry{ProductID: "p1", Price: 100, Quantity: 1})

	form := validForm(models.PaymentMethodCOD)
	form.Address = "short"
	res := c.Submit(context.Background(), form, CardDetails{})

	assert.Equal(t, "Please enter a complete address (minimum 10 characters)", res.FieldErrors["address"])
	assert.Zero(t, api.orderCalls)
}

func TestSubmitInvalidCardBlocksNetwork(t *testing.T) {
	api := &fakeAPI{}
	c, _ := testController(t, api, accept(), cart.Entry{ProductID: "p1", Price: 100, Quantity: 1})

	card := validCard()
	card.CardNumber = "4111"
	card.ExpiryDate = "03/25" // strictly before the fixed "now" of April 2025
	res := c.Submit(context.Background(), validForm(models.PaymentMethodCard), card)

	assert.Contains(t, res.FieldErrors, "cardNumber")
	assert.Contains(t, res.FieldErrors, "expiryDate")
	assert.Zero(t, api.orderCalls)
	assert.Zero(t, api.paymentCalls)
}

func TestCardFieldsIgnoredForCOD(t *testing.T) {
	api := &fakeAPI{}
	c, _ := testController(t, api, accept(), cart.Entry{ProductID: "p1", Price: 100, Quantity: 1})

	// garbage card details must not block a cash-on-delivery order
	res := c.Submit(context.Background(), validForm(models.PaymentMethodCOD), CardDetails{CardNumber: "junk"})

	assert.True(t, res.Success)
	assert.Equal(t, 1, api.orderCalls)
	assert.Zero(t, api.paymentCalls, "cod never creates a payment intent")
}

func TestPrescriptionDeclineAbortsSilently(t *testing.T) {
	api := &fakeAPI{}
	c, store := testController(t, api, decline(),
		cart.Entry{ProductID: "p1", Price: 100, Quantity: 1, PrescriptionRequired: true})

	res := c.Submit(context.Background(), validForm(models.PaymentMethodCOD), CardDetails{})

	assert.True(t, res.Declined)
	assert.Empty(t, res.Message)
	assert.Zero(t, api.orderCalls, "declined gate must not create an order")
	assert.Len(t, store.Items(), 1, "cart untouched")
	assert.Equal(t, StatusIdle, c.Status())
}

func TestTotalInvariant(t *testing.T) {
	api := &fakeAPI{}
	c, _ := testController(t, api, accept(),
		cart.Entry{ProductID: "p1", Price: 500, Quantity: 2},
		cart.Entry{ProductID: "p2", Price: 1200, Quantity: 1})

	res := c.Submit(context.Background(), validForm(models.PaymentMethodCOD), CardDetails{})

	require.True(t, res.Success)
	assert.InDelta(t, 3400, api.lastOrder.TotalAmount, 0.001) // 500*2 + 1200 + 200
	assert.InDelta(t, 200, api.lastOrder.DeliveryCharge, 0.001)
	require.Len(t, api.lastOrder.Items, 2)
	assert.Equal(t, 2, api.lastOrder.Items[0].Quantity)
}

func TestOrderFailureKeepsCart(t *testing.T) {
	api := &fakeAPI{orderResp: &OrderResponse{Success: false, Message: "Insufficient stock"}}
	c, store := testController(t, api, accept(), cart.Entry{ProductID: "p1", Price: 100, Quantity: 1})

	res := c.Submit(context.Background(), validForm(models.PaymentMethodCOD), CardDetails{})

	assert.False(t, res.Success)
	assert.Equal(t, "Insufficient stock", res.Message, "server message surfaced verbatim")
	assert.Len(t, store.Items(), 1, "cart kept on failure")
	assert.Equal(t, StatusFailed, c.Status())
}

func TestOrderTransportErrorUsesFallbackMessage(t *testing.T) {
	api := &fakeAPI{orderErr: context.DeadlineExceeded}
	c, _ := testController(t, api, accept(), cart.Entry{ProductID: "p1", Price: 100, Quantity: 1})

	res := c.Submit(context.Background(), validForm(models.PaymentMethodCOD), CardDetails{})

	assert.Equal(t, fallbackOrderError, res.Message)
	assert.Equal(t, StatusFailed, c.Status())
}

func TestCardPaymentFailureLeavesOrderInPlace(t *testing.T) {
	orderID := primitive.NewObjectID()
	api := &fakeAPI{
		orderResp: &OrderResponse{Success: true, Order: models.Order{ID: orderID}},
		payResp:   &PaymentIntentResponse{Success: false, Message: "Card declined"},
	}
	c, store := testController(t, api, accept(), cart.Entry{ProductID: "p1", Price: 100, Quantity: 1})

	res := c.Submit(context.Background(), validForm(models.PaymentMethodCard), validCard())

	assert.False(t, res.Success)
	assert.Equal(t, "Card declined", res.Message)
	assert.Equal(t, 1, api.orderCalls, "order stays created; no rollback")
	assert.Len(t, store.Items(), 1, "cart kept on payment failure")
	assert.Equal(t, StatusFailed, c.Status())
}

func TestCardPaymentSuccess(t *testing.T) {
	orderID := primitive.NewObjectID()
	api := &fakeAPI{orderResp: &OrderResponse{Success: true, Order: models.Order{ID: orderID}}}
	c, store := testController(t, api, accept(), cart.Entry{ProductID: "p1", Price: 1500, Quantity: 1})

	res := c.Submit(context.Background(), validForm(models.PaymentMethodCard), validCard())

	require.True(t, res.Success)
	assert.Equal(t, orderID.Hex(), res.OrderID)
	assert.Equal(t, 1, api.paymentCalls)
	assert.Equal(t, orderID.Hex(), api.lastPayment.Order)
	assert.Equal(t, "4111111111111111", api.lastPayment.CardDetails.CardNumber, "spaces stripped before submission")
	assert.InDelta(t, 1700, api.lastPayment.Amount, 0.001)
	assert.Equal(t, "lkr", api.lastPayment.Currency)
	assert.Empty(t, store.Items(), "cart cleared on success")
	assert.Equal(t, StatusSucceeded, c.Status())
}

func TestEmptyCart(t *testing.T) {
	api := &fakeAPI{}
	c, _ := testController(t, api, accept())

	res := c.Submit(context.Background(), validForm(models.PaymentMethodCOD), CardDetails{})

	assert.Equal(t, "Your cart is empty", res.Message)
	assert.Zero(t, api.orderCalls)
}

func TestResubmissionRejectedWhileSubmitting(t *testing.T) {
	api := &fakeAPI{}
	c, _ := testController(t, api, accept(), cart.Entry{ProductID: "p1", Price: 100, Quantity: 1})

	c.setStatus(StatusSubmitting)
	res := c.Submit(context.Background(), validForm(models.PaymentMethodCOD), CardDetails{})

	assert.Equal(t, "A submission is already in progress", res.Message)
	assert.Zero(t, api.orderCalls)
}
