package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNoRecord is returned when a lookup matches no document.
var ErrNoRecord = errors.New("models: no matching record found")

type MongoDB struct {
	Users    *mongo.Collection
	Products *mongo.Collection
	Orders   *mongo.Collection
	Payments *mongo.Collection

	client *mongo.Client
}

// OpenMongoDB connects to the MongoDB instance at uri and returns
// collection handles on the named database.
func OpenMongoDB(ctx context.Context, uri, dbName string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	return &MongoDB{
		Users:    db.Collection("users"),
		Products: db.Collection("products"),
		Orders:   db.Collection("orders"),
		Payments: db.Collection("payments"),
		client:   client,
	}, nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.Disconnect(ctx)
}
