package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (m *MongoDB) GetProductByOID(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var p Product
	err := m.Products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoRecord
	}
	return &p, err
}

func (m *MongoDB) GetProduct(ctx context.Context, id string) (*Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNoRecord
	}
	return m.GetProductByOID(ctx, oid)
}

// GetVisibleProducts returns the shop catalog, newest first.
func (m *MongoDB) GetVisibleProducts(ctx context.Context) ([]*Product, error) {
	return m.findProducts(ctx, bson.M{"is_visible": true})
}

// GetAllProducts returns every product including hidden ones.
func (m *MongoDB) GetAllProducts(ctx context.Context) ([]*Product, error) {
	return m.findProducts(ctx, bson.M{})
}

func (m *MongoDB) GetProductsByCategory(ctx context.Context, category string) ([]*Product, error) {
	return m.findProducts(ctx, bson.M{"category": category})
}

func (m *MongoDB) GetProductsBySupplier(ctx context.Context, supplierID primitive.ObjectID) ([]*Product, error) {
	return m.findProducts(ctx, bson.M{"supplier": supplierID})
}

func (m *MongoDB) findProducts(ctx context.Context, filter bson.M) ([]*Product, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := m.Products.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	products := []*Product{}
	err = cur.All(ctx, &products)
	return products, err
}

func (m *MongoDB) InsertProduct(ctx context.Context, p *Product) error {
	p.ID = primitive.NewObjectID()
	p.OutOfStock = p.Quantity <= 0
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	_, err := m.Products.InsertOne(ctx, p)
	return err
}

func (m *MongoDB) UpdateProduct(ctx context.Context, p *Product) error {
	p.OutOfStock = p.Quantity <= 0
	p.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":                  p.Name,
		"price":                 p.Price,
		"image":                 p.Image,
		"category":              p.Category,
		"description":           p.Description,
		"quantity":              p.Quantity,
		"brand":                 p.Brand,
		"expiry_date":           p.ExpiryDate,
		"prescription_required": p.PrescriptionRequired,
		"out_of_stock":          p.OutOfStock,
		"updated_at":            p.UpdatedAt,
	}}
	_, err := m.Products.UpdateOne(ctx, bson.M{"_id": p.ID}, update)
	return err
}

func (m *MongoDB) UpdateProductQuantity(ctx context.Context, id primitive.ObjectID, quantity int) error {
	update := bson.M{"$set": bson.M{
		"quantity":     quantity,
		"out_of_stock": quantity <= 0,
		"updated_at":   time.Now(),
	}}
	_, err := m.Products.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// DecrementStock reduces a product's quantity after an order and keeps the
// out_of_stock flag in sync.
func (m *MongoDB) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := m.Products.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$inc": bson.M{"quantity": -qty}})
	if err != nil {
		return err
	}
	_, err = m.Products.UpdateOne(ctx,
		bson.M{"_id": id, "quantity": bson.M{"$lte": 0}},
		bson.M{"$set": bson.M{"out_of_stock": true}})
	return err
}

func (m *MongoDB) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.Products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

// ToggleProductVisibility flips is_visible and returns the updated product.
func (m *MongoDB) ToggleProductVisibility(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	p, err := m.GetProductByOID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.IsVisible = !p.IsVisible
	_, err = m.Products.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"is_visible": p.IsVisible, "updated_at": time.Now()}})
	return p, err
}
