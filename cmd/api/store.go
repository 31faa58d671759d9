package main

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/SadiniWanniarachchi/PharmacySyatem/internal/models"
)

// dataStore is the slice of the persistence layer the handlers and the
// order worker depend on. *models.MongoDB is the production implementation;
// tests substitute fakes.
type dataStore interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetProductByOID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	GetVisibleProducts(ctx context.Context) ([]*models.Product, error)
	GetAllProducts(ctx context.Context) ([]*models.Product, error)
	GetProductsByCategory(ctx context.Context, category string) ([]*models.Product, error)
	GetProductsBySupplier(ctx context.Context, supplierID primitive.ObjectID) ([]*models.Product, error)
	InsertProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	UpdateProductQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
	ToggleProductVisibility(ctx context.Context, id primitive.ObjectID) (*models.Product, error)

	InsertOrder(ctx context.Context, o *models.Order) error
	GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	GetOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]*models.Order, error)
	GetAllOrders(ctx context.Context) ([]*models.Order, error)
	GetOrdersBySupplier(ctx context.Context, supplierID primitive.ObjectID) ([]*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) error

	InsertPayment(ctx context.Context, p *models.Payment) error
	GetAllPayments(ctx context.Context) ([]*models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status string) error
	GetTotalRevenue(ctx context.Context) (float64, error)
}

var _ dataStore = (*models.MongoDB)(nil)
