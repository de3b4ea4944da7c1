package bootstrap

import (
	"context"
	"log"
	"time"

	"smart-blog-be/internal/config"
	"smart-blog-be/internal/controller"
	"smart-blog-be/internal/pkg/logger"
	"smart-blog-be/internal/repository/cache"
	"smart-blog-be/internal/repository/memory"
	"smart-blog-be/internal/repository/unitofwork"
	"smart-blog-be/internal/service"
	"smart-blog-be/pkg/llm/factory"
	pktNats "smart-blog-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PostController   controller.IPostController
	AuthController   controller.IAuthController
	AIController     controller.IAIController
	HealthController controller.IHealthController

	// Background services, started by main
	ConsumerService service.IConsumerService
	AuditService    service.IAuditService // nil without NATS

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	return newContainer(uowFactory, cfg, sysLogger)
}

// NewContainerWithLogger builds the container around an existing logger
// without the optional Redis and NATS infrastructure. Used by tests.
func NewContainerWithLogger(db *gorm.DB, cfg *config.Config, sysLogger *logger.ZapLogger) *Container {
	local := *cfg
	local.App.NatsURL = ""
	local.App.RedisURL = ""
	return newContainer(unitofwork.NewRepositoryFactory(db), &local, sysLogger)
}

func newContainer(uowFactory unitofwork.RepositoryFactory, cfg *config.Config, sysLogger *logger.ZapLogger) *Container {
	c := &Container{Logger: sysLogger}

	// In-process bus for post change fanout
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// Redis, optional
	var publishedCache cache.PublishedPostCache
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		cancel()
		publishedCache = cache.NewRedisPublishedPostCache(rdb, cfg.Cache.PublishedPostTTL, sysLogger)
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	// NATS, optional
	var eventPublisher service.EventPublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}

		natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
		} else {
			c.AuditService = service.NewAuditService(natsSub, sysLogger)
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// LLM, optional
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider: cfg.Ai.LLMProvider,
		Model:    cfg.Ai.LLMModel,
		BaseURL:  llmBaseURL(cfg),
		APIKey:   cfg.Ai.LLMAPIKey,
		Timeout:  cfg.Ai.Timeout,
		Retries:  2,
		Logger:   sysLogger.Zap(),
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	if llmProvider == nil {
		log.Printf("[INFO] No LLM provider configured, AI assist serves offline fallbacks")
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	publisherService := service.NewPublisherService(cfg.App.EventsTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.App.EventsTopic,
		publishedCache,
		eventPublisher,
		sysLogger,
	)

	postService := service.NewPostService(uowFactory, publisherService, publishedCache, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret, cfg.Auth.JwtExpiry)
	aiService := service.NewAIService(llmProvider, memory.NewGenerationCache(cfg.Cache.AIResultTTL), sysLogger)

	c.PostController = controller.NewPostController(postService, authService)
	c.AuthController = controller.NewAuthController(authService)
	c.AIController = controller.NewAIController(aiService)
	c.HealthController = controller.NewHealthController(cfg.App.Name)

	return c
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMProvider == "ollama" {
		return cfg.Ai.OllamaBaseURL
	}
	return cfg.Ai.LLMBaseURL
}

// Close releases bus and cache connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
