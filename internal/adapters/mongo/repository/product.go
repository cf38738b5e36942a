package repository

import (
	"context"
	"errors"
	"time"

	"github.com/storehaus/orders-api/internal/adapters/mongo/document"
	"github.com/storehaus/orders-api/internal/core/domain"
	"github.com/storehaus/orders-api/internal/core/port"
	"github.com/storehaus/orders-api/internal/core/serviceerrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository struct {
	*BaseRepository[document.ProductDocument]
	collection *mongo.Collection
	counters   *CounterRepository
}

func NewProductRepository(db *mongo.Database, counters *CounterRepository) port.ProductPort {
	return &ProductRepository{
		BaseRepository: NewBaseRepository[document.ProductDocument](db, "products"),
		collection:     db.Collection("products"),
		counters:       counters,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if product.ID != 0 {
		return errors.New("cannot create product with existing ID")
	}

	id, err := r.counters.Next(ctx, "products")
	if err != nil {
		return err
	}

	doc := document.ToProductDocument(product)
	doc.ID = id
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
		doc.UpdatedAt = doc.CreatedAt
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return parseError(err)
	}

	product.ID = domain.ID(id)
	product.CreatedAt = doc.CreatedAt
	product.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Product, error) {
	doc, err := r.FindByID(ctx, int64(id))
	if err != nil {
		return nil, err
	}

	return doc.ToDomain(), nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	docs, err := r.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	products := make([]*domain.Product, len(docs))
	for i, doc := range docs {
		products[i] = doc.ToDomain()
	}

	return products, nil
}

// DeductStock decrements stock only when enough remains; the filter makes
// check-and-decrement a single atomic operation.
func (r *ProductRepository) DeductStock(ctx context.Context, id domain.ID, quantity int) error {
	result := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": int64(id), "stock": bson.M{"$gte": quantity}},
		bson.M{"$inc": bson.M{"stock": -quantity}, "$set": bson.M{"updated_at": time.Now()}},
	)
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return serviceerrors.NewInsufficientStockError("Insufficient stock")
		}
		return result.Err()
	}

	return nil
}

func (r *ProductRepository) RestoreStock(ctx context.Context, id domain.ID, quantity int) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": int64(id)},
		bson.M{"$inc": bson.M{"stock": quantity}, "$set": bson.M{"updated_at": time.Now()}},
	)
	if err != nil {
		return parseError(err)
	}
	if result.MatchedCount == 0 {
		return serviceerrors.NewNotFoundError("entity not found")
	}

	return nil
}
