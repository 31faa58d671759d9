package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DeliveryCharge is the flat per-order delivery fee in LKR.
const DeliveryCharge = 200.0

// User roles.
const (
	RoleCustomer = "customer"
	RoleSupplier = "supplier"
	RoleAdmin    = "admin"
)

// ProductCategories is the closed set of catalog categories.
var ProductCategories = []string{
	"Medicines",
	"Medical Devices",
	"First Aid",
	"Health Supplements",
	"Medical Equipment",
}

// ValidCategory reports whether c is one of ProductCategories.
func ValidCategory(c string) bool {
	for _, v := range ProductCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Order statuses.
const (
	OrderPending    = "Pending"
	OrderProcessing = "Processing"
	OrderShipped    = "Shipped"
	OrderDelivered  = "Delivered"
	OrderCancelled  = "Cancelled"
)

// ValidOrderStatus reports whether s is a known order status.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// ValidPaymentStatus reports whether s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment methods.
const (
	PaymentMethodCOD  = "cod"
	PaymentMethodCard = "card"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName    string             `bson:"first_name" json:"firstName"`
	LastName     string             `bson:"last_name" json:"lastName"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	UserType     string             `bson:"user_type" json:"userType"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string             `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}

type Product struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name                 string             `bson:"name" json:"name"`
	Price                float64            `bson:"price" json:"price"`
	Image                string             `bson:"image" json:"image"`
	Category             string             `bson:"category" json:"category"`
	Description          string             `bson:"description" json:"description"`
	Quantity             int                `bson:"quantity" json:"quantity"`
	Supplier             primitive.ObjectID `bson:"supplier" json:"supplier"`
	Brand                string             `bson:"brand" json:"brand"`
	ExpiryDate           time.Time          `bson:"expiry_date" json:"expiryDate"`
	PrescriptionRequired bool               `bson:"prescription_required" json:"prescriptionRequired"`
	Rating               float64            `bson:"rating" json:"rating"`
	Reviews              int                `bson:"reviews" json:"reviews"`
	IsNew                bool               `bson:"is_new" json:"isNew"`
	OutOfStock           bool               `bson:"out_of_stock" json:"outOfStock"`
	IsVisible            bool               `bson:"is_visible" json:"isVisible"`
	CreatedAt            time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updatedAt"`
}

type OrderItem struct {
	Product      primitive.ObjectID `bson:"product" json:"product"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	Price        float64            `bson:"price" json:"price"`
	Prescription bool               `bson:"prescription" json:"prescription"`
}

type ContactInfo struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User            primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"items" json:"items"`
	ShippingAddress string             `bson:"shipping_address" json:"shippingAddress"`
	ContactInfo     ContactInfo        `bson:"contact_info" json:"contactInfo"`
	PaymentMethod   string             `bson:"payment_method" json:"paymentMethod"`
	TotalAmount     float64            `bson:"total_amount" json:"totalAmount"`
	DeliveryCharge  float64            `bson:"delivery_charge" json:"deliveryCharge"`
	DeliveryNotes   string             `bson:"delivery_notes,omitempty" json:"deliveryNotes,omitempty"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

// Subtotal is the items total without the delivery charge.
func (o *Order) Subtotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Order         primitive.ObjectID `bson:"order" json:"order"`
	User          primitive.ObjectID `bson:"user" json:"user"`
	Amount        float64            `bson:"amount" json:"amount"`
	Currency      string             `bson:"currency" json:"currency"`
	Method        string             `bson:"method" json:"method"`
	Status        string             `bson:"status" json:"status"`
	CardLast4     string             `bson:"card_last4,omitempty" json:"cardLast4,omitempty"`
	TransactionID string             `bson:"transaction_id" json:"transactionId"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
}
