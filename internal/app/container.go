// Package app wires configuration, storage, and the engine's handlers into
// a single dependency container shared by the CLI and the worker.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	catalogDomain "github.com/nexttoyou/nexttoyou/internal/catalog/domain"
	catalogPersistence "github.com/nexttoyou/nexttoyou/internal/catalog/infrastructure/persistence"
	dealQueries "github.com/nexttoyou/nexttoyou/internal/deals/application/queries"
	identityDomain "github.com/nexttoyou/nexttoyou/internal/identity/domain"
	identityPersistence "github.com/nexttoyou/nexttoyou/internal/identity/infrastructure/persistence"
	"github.com/nexttoyou/nexttoyou/internal/matching"
	reminderQueries "github.com/nexttoyou/nexttoyou/internal/reminders/application/queries"
	"github.com/nexttoyou/nexttoyou/internal/reminders/application/services"
	remindersDomain "github.com/nexttoyou/nexttoyou/internal/reminders/domain"
	remindersPersistence "github.com/nexttoyou/nexttoyou/internal/reminders/infrastructure/persistence"
	"github.com/nexttoyou/nexttoyou/internal/shared/infrastructure/eventbus"
	"github.com/nexttoyou/nexttoyou/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DB *pgxpool.Pool

	// Redis
	RedisClient *redis.Client

	// Repositories
	StoreRepo   catalogDomain.Repository
	TaskRepo    remindersDomain.TaskRepository
	ProfileRepo identityDomain.Repository
	StateRepo   remindersDomain.GeofenceStateRepository

	// Eventing
	EventPublisher eventbus.Publisher

	// Matching
	Matcher *matching.Matcher

	// Handlers and services
	FindDealsHandler        *dealQueries.FindDealsHandler
	CheckProximityHandler   *dealQueries.CheckProximityHandler
	DueTimeRemindersHandler *reminderQueries.DueTimeRemindersHandler
	GeofenceTracker         *services.GeofenceTracker
	TimeEvaluator           *services.TimeReminderEvaluator

	sqliteState     *remindersPersistence.SQLiteGeofenceStateRepository
	localBus        *eventbus.InProcessEventBus
	brokerConnected bool
}

// NewContainer builds the dependency graph. Without DATABASE_URL the
// catalog, tasks, and profiles come from in-memory repositories seeded with
// the demo catalog; without REDIS_URL geofence state lives in a local
// SQLite file under the data directory.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := c.initStateStore(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initPublisher()
	c.initHandlers()

	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	if c.Config.DatabaseURL == "" {
		c.Logger.Info("no database configured, using in-memory repositories")
		c.StoreRepo = catalogPersistence.NewSeededStoreRepository()
		c.TaskRepo = remindersPersistence.NewMemoryTaskRepository()
		c.ProfileRepo = identityPersistence.NewMemoryProfileRepository()
		return nil
	}

	pool, err := pgxpool.New(ctx, c.Config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("ping database: %w", err)
	}

	c.DB = pool
	c.StoreRepo = catalogPersistence.NewPostgresStoreRepository(pool)
	c.TaskRepo = remindersPersistence.NewPostgresTaskRepository(pool, c.Config.DefaultLeavingRadiusMeters)
	c.ProfileRepo = identityPersistence.NewPostgresProfileRepository(pool)
	c.Logger.Info("connected to database")
	return nil
}

func (c *Container) initStateStore(ctx context.Context) error {
	var inner remindersDomain.GeofenceStateRepository

	switch {
	case c.Config.RedisURL != "":
		opts, err := redis.ParseURL(c.Config.RedisURL)
		if err != nil {
			return fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}
		c.RedisClient = client
		inner = remindersPersistence.NewRedisGeofenceStateRepository(client)
		c.Logger.Info("geofence state in redis")

	default:
		path := filepath.Join(c.Config.DataDir, "geofence.db")
		repo, err := remindersPersistence.NewSQLiteGeofenceStateRepository(path)
		if err != nil {
			return fmt.Errorf("open geofence state store: %w", err)
		}
		c.sqliteState = repo
		inner = repo
		c.Logger.Info("geofence state in local sqlite", "path", path)
	}

	c.StateRepo = remindersPersistence.NewBreakerGeofenceStateRepository(inner)
	return nil
}

func (c *Container) initPublisher() {
	publisher, err := eventbus.NewRabbitMQPublisher(c.Config.RabbitMQURL, c.Logger)
	if err != nil {
		if c.Config.IsDevelopment() {
			c.Logger.Warn("RabbitMQ not available, using in-process event bus", "error", err)
			c.localBus = eventbus.NewInProcessEventBus(c.Logger)
			c.EventPublisher = c.localBus
			return
		}
		// Production keeps a noop fallback and logs at error level,
		// reminder evaluation is more useful degraded than down.
		c.Logger.Error("failed to connect to RabbitMQ, events will be dropped", "error", err)
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return
	}
	c.brokerConnected = true
	c.EventPublisher = publisher
}

// NewReminderConsumer returns the consumer side of the event bus for the
// notification pipeline. In local mode it is the same in-process bus the
// publisher dispatches on; with a reachable broker it opens a dedicated
// RabbitMQ consumer connection.
func (c *Container) NewReminderConsumer() (eventbus.Consumer, error) {
	if c.localBus != nil {
		return c.localBus, nil
	}
	if !c.brokerConnected {
		return nil, fmt.Errorf("event broker unavailable")
	}
	return eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
		URL:    c.Config.RabbitMQURL,
		Logger: c.Logger,
	}, eventbus.NewConsumerRegistry(c.Logger))
}

func (c *Container) initHandlers() {
	c.Matcher = matching.NewMatcher(c.Config.MatchThreshold)
	c.TimeEvaluator = services.NewTimeReminderEvaluator()

	c.FindDealsHandler = dealQueries.NewFindDealsHandler(c.StoreRepo, c.Matcher, c.Logger)
	c.CheckProximityHandler = dealQueries.NewCheckProximityHandler(
		c.TaskRepo,
		c.ProfileRepo,
		c.FindDealsHandler,
		c.Config.DefaultSearchRadiusMeters,
		c.Logger,
	)
	c.DueTimeRemindersHandler = reminderQueries.NewDueTimeRemindersHandler(
		c.TaskRepo,
		c.ProfileRepo,
		c.TimeEvaluator,
		c.Logger,
	)
	c.GeofenceTracker = services.NewGeofenceTracker(
		c.TaskRepo,
		c.ProfileRepo,
		c.StateRepo,
		c.Logger,
	)
}

// Close releases all held connections.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing redis client", "error", err)
		}
	}
	if c.sqliteState != nil {
		if err := c.sqliteState.Close(); err != nil {
			c.Logger.Warn("error closing geofence state store", "error", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
