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

func (m *MongoDB) InsertPayment(ctx context.Context, p *Payment) error {
	p.ID = primitive.NewObjectID()
	p.CreatedAt = time.Now()
	_, err := m.Payments.InsertOne(ctx, p)
	return err
}

func (m *MongoDB) GetPayment(ctx context.Context, id primitive.ObjectID) (*Payment, error) {
	var p Payment
	err := m.Payments.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNoRecord
	}
	return &p, err
}

func (m *MongoDB) GetAllPayments(ctx context.Context) ([]*Payment, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cur, err := m.Payments.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	payments := []*Payment{}
	err = cur.All(ctx, &payments)
	return payments, err
}

func (m *MongoDB) UpdatePaymentStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := m.Payments.UpdateOne(ctx, bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNoRecord
	}
	return nil
}

// GetTotalRevenue sums completed payments.
func (m *MongoDB) GetTotalRevenue(ctx context.Context) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"status": PaymentCompleted}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$amount"}}},
	}
	cur, err := m.Payments.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)
	var results []bson.M
	if err = cur.All(ctx, &results); err != nil || len(results) == 0 {
		return 0, err
	}
	switch v := results[0]["total"].(type) {
	case float64:
		return v, nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, nil
	}
}
