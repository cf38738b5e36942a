package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/storehaus/orders-api/internal/adapters/mongo/document"
	"github.com/storehaus/orders-api/internal/adapters/outbox"
	"github.com/storehaus/orders-api/internal/core/domain"
	"github.com/storehaus/orders-api/internal/core/logger"
	"github.com/storehaus/orders-api/internal/core/port"
	"github.com/storehaus/orders-api/internal/core/serviceerrors"
)

type OrderRepository struct {
	*BaseRepository[document.OrderDocument]
	collection *mongo.Collection
	outbox     outbox.Repository
	counters   *CounterRepository
}

func NewOrderRepository(db *mongo.Database, outbox outbox.Repository, counters *CounterRepository) port.OrderPort {
	baseRepo := NewBaseRepository[document.OrderDocument](db, "orders")

	repo := &OrderRepository{
		BaseRepository: baseRepo,
		collection:     db.Collection("orders"),
		outbox:         outbox,
		counters:       counters,
	}

	if err := repo.createIndexes(context.Background()); err != nil {
		logger.Error(context.Background(), "failed to create indexes", err, map[string]any{
			"collection": "orders",
		})
	}

	return repo
}

func (r *OrderRepository) createIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "product_id", Value: 1}},
			Options: options.Index().SetUnique(false),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetUnique(false),
		},
		{
			Keys: bson.D{
				{Key: "product_id", Value: 1},
				{Key: "status", Value: 1},
			},
			Options: options.Index().SetUnique(false),
		},
	}

	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create runs in the caller's context so the insert and its outbox entry
// join the surrounding transaction when one is active.
func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID != 0 {
		return errors.New("cannot create order with existing ID")
	}

	id, err := r.counters.Next(ctx, "orders")
	if err != nil {
		return err
	}
	order.ID = domain.ID(id)

	doc := document.ToOrderDocument(order)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
		doc.UpdatedAt = doc.CreatedAt
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		order.ID = 0
		return parseError(err)
	}

	order.CreatedAt = doc.CreatedAt
	order.UpdatedAt = doc.UpdatedAt

	eventData, err := json.Marshal(domain.NewOrderCreatedEvent(order))
	if err != nil {
		return err
	}

	return r.outbox.Insert(ctx, outbox.Entry{
		EventName:  "order.created",
		EntityName: "order",
		EventData:  eventData,
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Order, error) {
	doc, err := r.FindByID(ctx, int64(id))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]*domain.Order, error) {
	return r.findOrders(ctx, bson.M{})
}

func (r *OrderRepository) GetByStatus(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	return r.findOrders(ctx, bson.M{"status": string(status)})
}

func (r *OrderRepository) GetActive(ctx context.Context) ([]*domain.Order, error) {
	return r.findOrders(ctx, bson.M{"status": bson.M{"$ne": string(domain.OrderStatusCancelled)}})
}

func (r *OrderRepository) GetActiveByProduct(ctx context.Context, productID domain.ID) ([]*domain.Order, error) {
	return r.findOrders(ctx, bson.M{
		"product_id": int64(productID),
		"status":     bson.M{"$ne": string(domain.OrderStatusCancelled)},
	})
}

func (r *OrderRepository) findOrders(ctx context.Context, filter bson.M) ([]*domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	docs, err := r.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, len(docs))
	for i, doc := range docs {
		orders[i] = doc.ToDomain()
	}

	return orders, nil
}

// UpdateStatusWithOutbox performs the status write and the outbox insert in
// the caller's context. Callers that need atomicity wrap it in the
// transaction manager; nesting a second session here would break that.
func (r *OrderRepository) UpdateStatusWithOutbox(ctx context.Context, id domain.ID, status domain.OrderStatus, event domain.Event) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": int64(id)}, bson.M{
		"$set": bson.M{
			"status":     string(status),
			"updated_at": time.Now(),
		},
	})
	if err != nil {
		return parseError(err)
	}
	if result.MatchedCount == 0 {
		return serviceerrors.NewNotFoundError("entity not found")
	}

	return r.outbox.Insert(ctx, outbox.Entry{
		EventName:  event.GetName(),
		EntityName: event.GetEntityName(),
		EventData:  eventData,
	})
}
