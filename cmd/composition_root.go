package cmd

import (
	"context"
	"fmt"
	"log/slog"

	httpin "ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/kafka"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/adapters/out/postgres/cartrepo"
	"ordering/internal/adapters/out/postgres/eventrepo"
	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/rabbitmq"
	"ordering/internal/adapters/out/redis"
	"ordering/internal/core/application/events"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
	"ordering/internal/pkg/metrics"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	bus        ports.MessageBus
	redis      *goredis.Client
	publisher  *events.Publisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewCompositionRoot connects the outbound adapters. The message bus and Redis
// are optional: BUS_DRIVER=none disables broadcasting and an empty REDIS_ADDR
// disables checkout idempotency.
func NewCompositionRoot(
	ctx context.Context,
	config Config,
	gormDB *gorm.DB,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    m,
		logger:     logger,
	}

	bus, err := newBus(config, logger)
	if err != nil {
		return nil, err
	}
	c.bus = bus

	if config.RedisAddr != "" {
		client, redisErr := redis.NewClient(ctx, config.RedisAddr, config.RedisPassword, config.RedisDB)
		if redisErr != nil {
			c.Close()
			return nil, redisErr
		}
		c.redis = client
	}

	c.publisher = events.NewPublisher(c.bus, eventrepo.NewGormEventRepository(gormDB), logger, m)
	return c, nil
}

func newBus(config Config, logger *slog.Logger) (ports.MessageBus, error) {
	switch config.BusDriver {
	case BusKafka:
		bus, err := kafka.NewBus(config.KafkaBrokers, config.KafkaTopic)
		if err != nil {
			return nil, fmt.Errorf("kafka bus: %w", err)
		}
		return bus, nil
	case BusRabbitMQ:
		bus, err := rabbitmq.NewBus(config.RabbitMQURL, config.RabbitMQExchange, logger)
		if err != nil {
			return nil, fmt.Errorf("rabbitmq bus: %w", err)
		}
		return bus, nil
	default:
		logger.Warn("message bus disabled, events stay in the event log only")
		return nil, nil
	}
}

// Close releases the bus and Redis connections.
func (c *CompositionRoot) Close() {
	if c.bus != nil {
		if err := c.bus.Close(); err != nil {
			c.logger.Error("close message bus", "error", err)
		}
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.logger.Error("close redis", "error", err)
		}
	}
}

func (c *CompositionRoot) idempotencyStore() ports.IdempotencyStore {
	if c.redis == nil {
		return nil
	}
	return redis.NewIdempotencyStore(c.redis, "ordering:")
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	return commands.NewAddCartItemCommandHandler(c.cartUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateUpdateCartItemQuantityCommandHandler() commands.UpdateCartItemQuantityCommandHandler {
	return commands.NewUpdateCartItemQuantityCommandHandler(c.cartUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.cartUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.publisher, c.idempotencyStore(), c.metrics, c.logger)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateReportDiscrepancyCommandHandler() commands.ReportDiscrepancyCommandHandler {
	return commands.NewReportDiscrepancyCommandHandler(c.orderUoWFactory(), c.publisher, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateCloseDeliveredOrdersCommandHandler() commands.CloseDeliveredOrdersCommandHandler {
	return commands.NewCloseDeliveredOrdersCommandHandler(c.orderUoWFactory(), c.publisher, c.metrics, c.logger)
}

func (c *CompositionRoot) CreateRelayEventsCommandHandler() commands.RelayEventsCommandHandler {
	return commands.NewRelayEventsCommandHandler(eventrepo.NewGormEventRepository(c.gormDB), c.publisher)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(cartrepo.NewGormCartRepository(c.gormDB))
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(orderrepo.NewGormOrderRepository(c.gormDB))
}

func (c *CompositionRoot) CreateGetOrderEventsQueryHandler() queries.GetOrderEventsQueryHandler {
	return queries.NewGetOrderEventsQueryHandler(
		orderrepo.NewGormOrderRepository(c.gormDB),
		eventrepo.NewGormEventRepository(c.gormDB),
	)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		GetCart:           c.CreateGetCartQueryHandler(),
		AddCartItem:       c.CreateAddCartItemCommandHandler(),
		UpdateCartItem:    c.CreateUpdateCartItemQuantityCommandHandler(),
		RemoveCartItem:    c.CreateRemoveCartItemCommandHandler(),
		ClearCart:         c.CreateClearCartCommandHandler(),
		Checkout:          c.CreateCheckoutCommandHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetOrderEvents:    c.CreateGetOrderEventsQueryHandler(),
		TransitionOrder:   c.CreateTransitionOrderCommandHandler(),
		ReportDiscrepancy: c.CreateReportDiscrepancyCommandHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRelayEventsCommandHandler(),
		c.CreateCloseDeliveredOrdersCommandHandler(),
		jobs.Settings{
			RelaySchedule:     c.config.EventRelaySchedule,
			RelayBatchSize:    c.config.EventRelayBatch,
			RelayGrace:        c.config.EventRelayGrace,
			AutoCloseSchedule: c.config.AutoCloseSchedule,
			AutoCloseAfter:    c.config.AutoCloseAfter,
			AutoCloseBatch:    c.config.AutoCloseBatch,
		},
		c.logger,
	)
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
