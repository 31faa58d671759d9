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

func (m *MongoDB) InsertOrder(ctx context.Context, o *Order) error {
	o.ID = primitive.NewObjectID()
	o.Status = OrderPending
	o.CreatedAt = time.Now()
	_, err := m.Orders.InsertOne(ctx, o)
	return err
}

func (m *MongoDB) GetOrder(ctx context.Context, id primitive.ObjectID) (*Order, error) {
	var o Order
	err := m.Orders.FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoRecord
	}
	return &o, err
}

func (m *MongoDB) GetOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]*Order, error) {
	return m.findOrders(ctx, bson.M{"user": userID})
}

func (m *MongoDB) GetAllOrders(ctx context.Context) ([]*Order, error) {
	return m.findOrders(ctx, bson.M{})
}

// GetOrdersBySupplier returns orders containing at least one of the
// supplier's products.
func (m *MongoDB) GetOrdersBySupplier(ctx context.Context, supplierID primitive.ObjectID) ([]*Order, error) {
	products, err := m.GetProductsBySupplier(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	if len(ids) == 0 {
		return []*Order{}, nil
	}
	return m.findOrders(ctx, bson.M{"items.product": bson.M{"$in": ids}})
}

func (m *MongoDB) findOrders(ctx context.Context, filter bson.M) ([]*Order, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := m.Orders.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	orders := []*Order{}
	err = cur.All(ctx, &orders)
	return orders, err
}

func (m *MongoDB) UpdateOrderStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := m.Orders.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoRecord
	}
	return nil
}
