package app

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/xChrisxY/orders-service/configs"
	"github.com/xChrisxY/orders-service/internal/adapter/cache"
	"github.com/xChrisxY/orders-service/internal/adapter/http"
	"github.com/xChrisxY/orders-service/internal/adapter/kafka"
	"github.com/xChrisxY/orders-service/internal/adapter/queue"
	"github.com/xChrisxY/orders-service/internal/adapter/repo"
	"github.com/xChrisxY/orders-service/internal/logging"
	"github.com/xChrisxY/orders-service/internal/usecase"
)

type App struct {
	Router *gin.Engine
}

// InitWithConfig wires every dependency explicitly: no cached singletons,
// everything flows through constructors.
func InitWithConfig(cfg configs.Config) (*App, func(), error) {
	logger := logging.Init(cfg.App.Name, cfg.App.LogFile, cfg.App.LogLevel)
	logger.Info("orders-service: starting up")

	// init mongo
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, err
	}
	db := client.Database(cfg.Mongo.Database)

	// init redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, nil, err
	}

	// broker client connects lazily on the first publish
	broker := queue.NewRabbitClient(
		queue.AMQPDialer(cfg.Rabbit.URL),
		queue.Topology{
			Exchange:          cfg.Rabbit.Exchange,
			PaymentQueue:      cfg.Rabbit.PaymentQueue,
			NotificationQueue: cfg.Rabbit.NotificationQueue,
		},
		logging.New("rabbitmq"),
	)
	publisher := queue.NewEventPublisher(broker, logging.New("events"))

	// infra
	orderRepo := repo.NewMongoOrderRepo(db)
	statusCache := cache.NewRedisStatusCache(rdb, cfg.Redis.CacheTTL)

	// use cases
	createUC := usecase.NewCreateOrder(orderRepo, publisher)
	getUC := usecase.NewGetOrder(orderRepo)
	byUserUC := usecase.NewGetOrdersByUser(orderRepo)
	byRestaurantUC := usecase.NewGetOrdersByRestaurant(orderRepo)
	updateUC := usecase.NewUpdateOrderStatus(orderRepo, statusCache)
	deleteUC := usecase.NewDeleteOrder(orderRepo)

	// status feedback from downstream services
	if err := setupKafkaListener(cfg, updateUC); err != nil {
		return nil, nil, err
	}

	h := http.NewOrderHandler(createUC, getUC, byUserUC, byRestaurantUC, updateUC, deleteUC)
	router := http.NewRouter(h)

	cleanup := func() {
		_ = broker.Close()
		_ = rdb.Close()
		_ = client.Disconnect(context.Background())
	}

	return &App{Router: router}, cleanup, nil
}

func setupKafkaListener(cfg configs.Config, updateUC *usecase.UpdateOrderStatus) error {
	if len(cfg.Kafka.Brokers) == 0 {
		return nil
	}

	grp, err := kafka.NewGroup(cfg.Kafka.Brokers, cfg.Kafka.GroupID)
	if err != nil {
		return err
	}

	log := logging.New("kafka")
	h := kafka.NewOrderStatusChangedHandler(updateUC)
	consumer := kafka.NewConsumer(grp, []string{cfg.Kafka.Topic}, h.Handle, log)

	go func() {
		if err := consumer.Start(context.Background()); err != nil {
			log.Error("status consumer stopped", "error", err)
		}
	}()
	return nil
}
