package di

import (
	"context"
	"fmt"
	"log/slog"

	"crowd-status/api"
	"crowd-status/api/statusfeed"
	"crowd-status/config"
	"crowd-status/dao/redis"
	"crowd-status/db"
	"crowd-status/logger"
	"crowd-status/metrics"
	"crowd-status/server"
	"crowd-status/server/handlers"
	"crowd-status/server/middleware"
	"crowd-status/server/ws"
	services "crowd-status/service"
	"crowd-status/util"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Container holds all application dependencies.
type Container struct {
	Config                 *config.Config
	RedisClient            db.RedisClient
	RedisStatusDao         *redis.RedisStatusDAO
	StatusFeedAPI          statusfeed.StatusFeedAPI
	Registry               *prometheus.Registry
	Metrics                *metrics.Collector
	DashboardService       *services.DashboardService
	SessionService         *services.SessionService
	StatusRefresherService *services.StatusRefresherService
	Hub                    *ws.Hub
	RateLimiter            *middleware.RateLimiter
	DashboardHandler       *handlers.DashboardHandler
	SessionHandler         *handlers.SessionHandler
	MuxRouter              *mux.Router
	Router                 *server.Router
	CrowdStatusHttpServer  *server.CrowdStatusHttpServer

	closeRedis func() error
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	slog.Info("initializing container", slog.String("env", cfg.AppEnv))

	// Initialize Redis client, in-memory when no address is configured
	var redisClient db.RedisClient
	closeRedis := func() error { return nil }
	if cfg.RedisAddr == "" {
		slog.Info("using in-memory redis client")
		redisClient = db.NewMockRedisClient()
	} else {
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		goRedisClient, err := db.NewGoRedisClient(ctx, redisInternalClient)
		if err != nil {
			redisInternalClient.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		redisClient = goRedisClient
		closeRedis = goRedisClient.Close
	}

	// Initialize Redis status DAO
	redisStatusDao := redis.NewRedisStatusDAO(redisClient)

	// Initialize the status feed, file-backed in dev
	var statusFeedAPI statusfeed.StatusFeedAPI
	if cfg.IsDev() {
		path := config.GetResourcePath(config.STATUS_FEED_RESOURCE)
		slog.Info("using mock status feed", slog.String("path", path))
		statusFeedAPI = statusfeed.NewStatusFeedApiClientMock(path)
	} else {
		slog.Info("using status feed", slog.String("url", cfg.StatusFeedURL))
		httpClient := api.NewHTTPClient(cfg.StatusFeedURL, cfg.StatusFeedTimeout)
		statusFeedAPI = statusfeed.NewStatusFeedApiClient(httpClient)
	}

	geoRef := util.LoadGeoReference(config.GetResourcePath(config.GEO_REFERENCE_RESOURCE))

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	// Initialize service layer
	hub := ws.NewHub(cfg.CORSAllowedOrigins)
	dashboardService := services.NewDashboardService()
	sessionService := services.NewSessionService(collector)
	statusRefresherService := services.NewStatusRefresherService(
		statusFeedAPI,
		redisStatusDao,
		dashboardService,
		geoRef,
		collector,
		hub,
		cfg.StatusFeedMaxRetries,
		cfg.StatusFeedRetryWait,
	)

	// Initialize handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	sessionHandler := handlers.NewSessionHandler(sessionService, dashboardService)

	// Initialize mux router
	muxRouter := mux.NewRouter()

	// Initialize router
	router := server.NewRouter(dashboardHandler, sessionHandler, hub.ServeWS, metrics.Handler(registry), muxRouter)
	limits := middleware.PerMinute(cfg.RateLimitPerMinute)
	limits.TrustedProxies = cfg.TrustedProxies
	rateLimiter := middleware.NewRateLimiter(limits)
	router.Use(
		middleware.NewRecoveryMiddleware(),
		middleware.NewLoggingMiddleware(logger.For("http"), collector),
		rateLimiter.Middleware(),
	)

	// Initialize crowd status server
	crowdStatusHttpServer := server.NewCrowdStatusHttpServer(router, muxRouter, cfg.ServerPort, cfg.CORSAllowedOrigins)

	return &Container{
		Config:                 cfg,
		RedisClient:            redisClient,
		RedisStatusDao:         redisStatusDao,
		StatusFeedAPI:          statusFeedAPI,
		Registry:               registry,
		Metrics:                collector,
		DashboardService:       dashboardService,
		SessionService:         sessionService,
		StatusRefresherService: statusRefresherService,
		Hub:                    hub,
		RateLimiter:            rateLimiter,
		DashboardHandler:       dashboardHandler,
		SessionHandler:         sessionHandler,
		MuxRouter:              muxRouter,
		Router:                 router,
		CrowdStatusHttpServer:  crowdStatusHttpServer,
		closeRedis:             closeRedis,
	}, nil
}

// Close releases background resources. The hub stops with its Run context.
func (c *Container) Close() error {
	c.RateLimiter.Stop()
	return c.closeRedis()
}

// Run starts the background work and serves HTTP until ctx is done. The
// first refresh waits for the listener, so clients can observe the loading
// state instead of waiting on retries.
func (c *Container) Run(ctx context.Context) error {
	go c.Hub.Run(ctx)

	// serve the last cached dataset while the first fetch runs
	if ok, err := c.StatusRefresherService.WarmFromSnapshot(ctx); err != nil {
		slog.Warn("failed to load cached snapshot", slog.Any("error", err))
	} else if ok {
		slog.Info("loaded cached snapshot")
	}

	go func() {
		select {
		case <-ctx.Done():
			return
		case <-c.CrowdStatusHttpServer.Ready():
		}
		slog.Info("refreshing status data")
		if err := c.StatusRefresherService.Refresh(ctx); err != nil {
			slog.Error("initial refresh failed", slog.Any("error", err))
		}
		slog.Info("starting periodic job", slog.Duration("interval", c.Config.StatusFeedRefreshInterval))
		c.StatusRefresherService.StartPeriodicJob(ctx, c.Config.StatusFeedRefreshInterval)
	}()

	c.SessionService.StartJanitor(ctx, c.Config.SessionJanitorInterval, c.Config.SessionIdleTimeout)

	return c.CrowdStatusHttpServer.Start(ctx)
}
