package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ordersCollection = "orders"

// 注文のドキュメントDB実装。一覧は常に created_at の降順。
type OrderMongoRepository struct {
	collection *mongo.Collection
}

func NewOrderMongoRepository(db *mongo.Database) *OrderMongoRepository {
	return &OrderMongoRepository{collection: db.Collection(ordersCollection)}
}

func (r *OrderMongoRepository) Save(ctx context.Context, order model.Order) (string, error) {
	if _, err := r.collection.InsertOne(ctx, order); err != nil {
		return "", err
	}
	return order.OrderID, nil
}

func (r *OrderMongoRepository) List(ctx context.Context) ([]model.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *OrderMongoRepository) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return r.find(ctx, bson.M{"status": status})
}

func (r *OrderMongoRepository) FindByOrderID(ctx context.Context, orderID string) (model.Order, error) {
	var order model.Order

	err := r.collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Order{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (r *OrderMongoRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{
			"status":     status,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderMongoRepository) Delete(ctx context.Context, orderID string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": orderID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderMongoRepository) find(ctx context.Context, filter bson.M) ([]model.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	orders := []model.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
