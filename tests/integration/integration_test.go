package integration_test

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	adaptconfig "github.com/storehaus/orders-api/internal/adapters/config"
	adaptmongo "github.com/storehaus/orders-api/internal/adapters/mongo"
	"github.com/storehaus/orders-api/internal/adapters/mongo/repository"
	"github.com/storehaus/orders-api/internal/adapters/outbox"
	adaptrabbitmq "github.com/storehaus/orders-api/internal/adapters/rabbitmq"
	adaptredis "github.com/storehaus/orders-api/internal/adapters/redis"
	"github.com/storehaus/orders-api/internal/core/domain"
	"github.com/storehaus/orders-api/internal/core/dto"
	"github.com/storehaus/orders-api/internal/core/service"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	tcrabbit "github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	mongoClient  *mongo.Client
	redisClient  *adaptredis.Client
	broker       *adaptrabbitmq.RabbitMQAdapter
	amqpEndpoint string
)

func TestMain(m *testing.M) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7", mongodb.WithReplicaSet("rs0"))
	if err != nil {
		log.Fatalf("mongodb container: %v", err)
	}
	mongoEndpoint, err := mongoContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("mongodb connection string: %v", err)
	}
	mongoClient, err = mongo.Connect(ctx, options.Client().
		ApplyURI(mongoEndpoint).
		SetDirect(true).
		SetConnectTimeout(30*time.Second).
		SetServerSelectionTimeout(30*time.Second))
	if err != nil {
		log.Fatalf("mongodb connect: %v", err)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("mongodb ping: %v", err)
	}

	// --- Redis ---
	redisContainer, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		log.Fatalf("redis container: %v", err)
	}
	redisEndpoint, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("redis connection string: %v", err)
	}
	redisClient, err = adaptredis.NewConnection(adaptconfig.RedisConfig{URL: redisEndpoint})
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}

	// --- RabbitMQ ---
	rabbitContainer, err := tcrabbit.Run(ctx, "rabbitmq:3-management-alpine")
	if err != nil {
		log.Fatalf("rabbitmq container: %v", err)
	}
	amqpEndpoint, err = rabbitContainer.AmqpURL(ctx)
	if err != nil {
		log.Fatalf("rabbitmq amqp url: %v", err)
	}
	broker, err = adaptrabbitmq.NewRabbitMQAdapter(adaptconfig.RabbitMQConfig{
		URL:        amqpEndpoint,
		MaxRetries: 2,
		RetryDelay: 100 * time.Millisecond,
		ExchangeConfigs: []adaptconfig.ExchangeConfig{
			{Name: "exchange.order", Type: "direct", Durable: true, AutoDelete: false},
		},
	})
	if err != nil {
		log.Fatalf("rabbitmq adapter: %v", err)
	}

	code := m.Run()

	_ = broker.Close()
	_ = redisClient.Close()
	_ = mongoClient.Disconnect(ctx)
	_ = mongoContainer.Terminate(ctx)
	_ = redisContainer.Terminate(ctx)
	_ = rabbitContainer.Terminate(ctx)

	os.Exit(code)
}

func setupConsumer(t *testing.T, routingKey string) <-chan amqp.Delivery {
	t.Helper()

	conn, err := amqp.Dial(amqpEndpoint)
	if err != nil {
		t.Fatalf("consumer dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	ch, err := conn.Channel()
	if err != nil {
		t.Fatalf("consumer channel: %v", err)
	}
	t.Cleanup(func() { ch.Close() })

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		t.Fatalf("queue declare: %v", err)
	}
	if err := ch.QueueBind(q.Name, routingKey, "exchange.order", false, nil); err != nil {
		t.Fatalf("queue bind: %v", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	return msgs
}

func buildServices(t *testing.T, dbName string) (
	*service.OrderService,
	*service.ProductService,
	*service.AnalyticsService,
	*outbox.Handler,
) {
	t.Helper()
	db := mongoClient.Database(dbName)

	counterRepo := repository.NewCounterRepository(db)
	outboxRepo := repository.NewOutboxRepository(db)
	orderRepo := repository.NewOrderRepository(db, outboxRepo, counterRepo)
	productRepo := repository.NewProductRepository(db, counterRepo)
	txManager := adaptmongo.NewTransactionManager(mongoClient)

	productService := service.NewProductService(productRepo)

	orderCache := adaptredis.NewCache[domain.Order](redisClient, dbName+"-order")
	idempotencyCache := adaptredis.NewCache[service.IdempotencyEntry[domain.Order]](redisClient, dbName+"-idemp")
	idempotencyService := service.NewIdempotencyService(idempotencyCache, 5*time.Minute, 500*time.Millisecond, 10*time.Second)

	orderService := service.NewOrderService(orderRepo, productService, orderCache, idempotencyService, txManager)
	analyticsService := service.NewAnalyticsService(orderRepo, productRepo)

	outboxHandler := outbox.NewHandler(outboxRepo, broker, adaptconfig.OutboxConfig{
		Interval:  100 * time.Millisecond,
		BatchSize: 50,
	})

	return orderService, productService, analyticsService, outboxHandler
}

func TestIntegration_CreateOrder_FullCycle(t *testing.T) {
	msgs := setupConsumer(t, "order.status_changed")

	orderSvc, productSvc, _, outboxHandler := buildServices(t, "int_full_cycle")
	ctx := context.Background()

	handlerCtx, cancelHandler := context.WithCancel(ctx)
	defer cancelHandler()
	go outboxHandler.Start(handlerCtx)

	product, err := productSvc.CreateProduct(ctx, &dto.CreateProductRequest{
		Name: "Integration Widget", Price: 2999, Stock: 50,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}

	order, err := orderSvc.CreateOrder(ctx, "", &dto.CreateOrderRequest{
		ProductID: product.ID, Quantity: 3,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.ID == 0 {
		t.Fatal("order ID should not be zero")
	}
	if order.Status != domain.OrderStatusPlaced {
		t.Fatalf("expected status 'placed', got %q", order.Status)
	}
	if expected := domain.Amount(2999 * 3); order.TotalAmount != expected {
		t.Fatalf("expected total %d, got %d", expected, order.TotalAmount)
	}

	productAfter, _ := productSvc.GetByID(ctx, product.ID)
	if productAfter.Stock != 47 {
		t.Fatalf("expected stock 47, got %d", productAfter.Stock)
	}

	if _, err := orderSvc.AdvanceStatus(ctx, order.ID, domain.OrderStatusShipped); err != nil {
		t.Fatalf("advance status: %v", err)
	}

	select {
	case msg := <-msgs:
		var event domain.OrderStatusChangedEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.OrderID != order.ID {
			t.Fatalf("event order_id: expected %d, got %d", order.ID, event.OrderID)
		}
		if event.Status != domain.OrderStatusShipped {
			t.Fatalf("event status: expected 'shipped', got %q", event.Status)
		}
		if event.OldStatus != domain.OrderStatusPlaced {
			t.Fatalf("event old_status: expected 'placed', got %q", event.OldStatus)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for order.status_changed event")
	}

	fetched, _ := orderSvc.GetOrderByID(ctx, order.ID)
	if fetched.Status != domain.OrderStatusShipped {
		t.Fatalf("expected fetched status 'shipped', got %q", fetched.Status)
	}
}

func TestIntegration_CreateOrder_Idempotency(t *testing.T) {
	orderSvc, productSvc, _, _ := buildServices(t, "int_idempotency")
	ctx := context.Background()

	product, _ := productSvc.CreateProduct(ctx, &dto.CreateProductRequest{
		Name: "Idemp Widget", Price: 1000, Stock: 100,
	})

	request := &dto.CreateOrderRequest{ProductID: product.ID, Quantity: 2}

	order1, err := orderSvc.CreateOrder(ctx, "idemp-key-1", request)
	if err != nil {
		t.Fatalf("first create: %v", err)
	}

	order2, err := orderSvc.CreateOrder(ctx, "idemp-key-1", request)
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if order2.ID != order1.ID {
		t.Fatalf("expected same order: %d vs %d", order1.ID, order2.ID)
	}

	// Stock deducted only once
	p, _ := productSvc.GetByID(ctx, product.ID)
	if p.Stock != 98 {
		t.Fatalf("expected stock 98 (single deduction), got %d", p.Stock)
	}
}

func TestIntegration_CreateOrder_InsufficientStock(t *testing.T) {
	orderSvc, productSvc, _, _ := buildServices(t, "int_low_stock")
	ctx := context.Background()

	product, _ := productSvc.CreateProduct(ctx, &dto.CreateProductRequest{
		Name: "Low Stock", Price: 500, Stock: 2,
	})

	_, err := orderSvc.CreateOrder(ctx, "", &dto.CreateOrderRequest{
		ProductID: product.ID, Quantity: 5,
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}

	unchanged, _ := productSvc.GetByID(ctx, product.ID)
	if unchanged.Stock != 2 {
		t.Fatalf("stock should be unchanged after rollback: expected 2, got %d", unchanged.Stock)
	}
}

func TestIntegration_CancelOrder_RestoresStock(t *testing.T) {
	msgs := setupConsumer(t, "order.cancelled")

	orderSvc, productSvc, _, outboxHandler := buildServices(t, "int_cancel")
	ctx := context.Background()

	handlerCtx, cancelHandler := context.WithCancel(ctx)
	defer cancelHandler()
	go outboxHandler.Start(handlerCtx)

	product, _ := productSvc.CreateProduct(ctx, &dto.CreateProductRequest{
		Name: "Cancel Widget", Price: 1500, Stock: 10,
	})
	order, err := orderSvc.CreateOrder(ctx, "", &dto.CreateOrderRequest{
		ProductID: product.ID, Quantity: 4,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	cancelled, err := orderSvc.CancelOrder(ctx, order.ID)
	if err != nil {
		t.Fatalf("cancel order: %v", err)
	}
	if cancelled.Status != domain.OrderStatusCancelled {
		t.Fatalf("expected status 'cancelled', got %q", cancelled.Status)
	}

	restored, _ := productSvc.GetByID(ctx, product.ID)
	if restored.Stock != 10 {
		t.Fatalf("expected stock restored to 10, got %d", restored.Stock)
	}

	select {
	case msg := <-msgs:
		var event domain.OrderCancelledEvent
		if err := json.Unmarshal(msg.Body, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if event.OrderID != order.ID {
			t.Fatalf("event order_id: expected %d, got %d", order.ID, event.OrderID)
		}
		if !event.StockRestored {
			t.Fatal("event should report stock restored")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for order.cancelled event")
	}

	// Cancellation is terminal
	if _, err := orderSvc.CancelOrder(ctx, order.ID); err == nil {
		t.Fatal("expected error cancelling twice")
	}
}

func TestIntegration_GetOrderByID_Cache(t *testing.T) {
	orderSvc, productSvc, _, _ := buildServices(t, "int_cache")
	ctx := context.Background()

	product, _ := productSvc.CreateProduct(ctx, &dto.CreateProductRequest{
		Name: "Cache Widget", Price: 1500, Stock: 20,
	})

	order, _ := orderSvc.CreateOrder(ctx, "", &dto.CreateOrderRequest{
		ProductID: product.ID, Quantity: 1,
	})

	f1, err := orderSvc.GetOrderByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}

	// Second fetch → cache hit
	f2, err := orderSvc.GetOrderByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}

	if f1.ID != f2.ID || f1.TotalAmount != f2.TotalAmount {
		t.Fatal("cached order should match original")
	}
}

func TestIntegration_Analytics_Revenue(t *testing.T) {
	orderSvc, productSvc, analyticsSvc, _ := buildServices(t, "int_analytics")
	ctx := context.Background()

	product, _ := productSvc.CreateProduct(ctx, &dto.CreateProductRequest{
		Name: "Revenue Widget", Price: 1000, Stock: 100,
	})

	kept, err := orderSvc.CreateOrder(ctx, "", &dto.CreateOrderRequest{
		ProductID: product.ID, Quantity: 2,
	})
	if err != nil {
		t.Fatalf("create kept order: %v", err)
	}
	toCancel, err := orderSvc.CreateOrder(ctx, "", &dto.CreateOrderRequest{
		ProductID: product.ID, Quantity: 3,
	})
	if err != nil {
		t.Fatalf("create cancel order: %v", err)
	}
	if _, err := orderSvc.CancelOrder(ctx, toCancel.ID); err != nil {
		t.Fatalf("cancel order: %v", err)
	}

	revenue, err := analyticsSvc.ProductRevenue(ctx, product.ID)
	if err != nil {
		t.Fatalf("product revenue: %v", err)
	}
	// Cancelled order excluded: 2 x 1000
	if revenue.TotalRevenue != domain.Amount(2000) {
		t.Fatalf("expected revenue 2000, got %d", revenue.TotalRevenue)
	}
	if revenue.OrderCount != 1 {
		t.Fatalf("expected order count 1, got %d", revenue.OrderCount)
	}
	if revenue.ProductName != "Revenue Widget" {
		t.Fatalf("unexpected product name %q", revenue.ProductName)
	}

	summary, err := analyticsSvc.OverallRevenue(ctx)
	if err != nil {
		t.Fatalf("overall revenue: %v", err)
	}
	if summary.TotalRevenue != domain.Amount(2000) {
		t.Fatalf("expected overall revenue 2000, got %d", summary.TotalRevenue)
	}
	if summary.OrderCount != 1 {
		t.Fatalf("expected overall order count 1, got %d", summary.OrderCount)
	}

	cancelledOrders, err := analyticsSvc.CancelledOrders(ctx)
	if err != nil {
		t.Fatalf("cancelled orders: %v", err)
	}
	if len(cancelledOrders) != 1 || cancelledOrders[0].ID != toCancel.ID {
		t.Fatalf("expected cancelled listing with order %d", toCancel.ID)
	}

	allOrders, err := analyticsSvc.AllOrders(ctx)
	if err != nil {
		t.Fatalf("all orders: %v", err)
	}
	if len(allOrders) != 2 {
		t.Fatalf("expected 2 orders in full listing, got %d", len(allOrders))
	}

	// Repricing: revenue follows the current price, not the stored total
	coll := mongoClient.Database("int_analytics").Collection("products")
	if _, err := coll.UpdateOne(ctx,
		bson.M{"_id": int64(product.ID)},
		bson.M{"$set": bson.M{"price": int64(5000)}},
	); err != nil {
		t.Fatalf("reprice product: %v", err)
	}

	repriced, err := analyticsSvc.ProductRevenue(ctx, product.ID)
	if err != nil {
		t.Fatalf("product revenue after reprice: %v", err)
	}
	if expected := domain.Amount(int64(kept.Quantity) * 5000); repriced.TotalRevenue != expected {
		t.Fatalf("expected repriced revenue %d, got %d", expected, repriced.TotalRevenue)
	}
}
