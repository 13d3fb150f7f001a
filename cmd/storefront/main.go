package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/Skotchmaster/storefront/internal/es"
	"github.com/Skotchmaster/storefront/internal/httpserver"
	"github.com/Skotchmaster/storefront/internal/live"
	authmw "github.com/Skotchmaster/storefront/internal/middleware/auth"
	"github.com/Skotchmaster/storefront/internal/mykafka"
	"github.com/Skotchmaster/storefront/internal/notify"
	"github.com/Skotchmaster/storefront/internal/ratelimit"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/telemetry"
	"github.com/Skotchmaster/storefront/pkg/config"
	pkgdb "github.com/Skotchmaster/storefront/pkg/db"
	"github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
	loggingmw "github.com/Skotchmaster/storefront/pkg/middleware/logging"
	"github.com/Skotchmaster/storefront/pkg/response"
	"github.com/Skotchmaster/storefront/pkg/tokens"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("storefront_exit", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.IntoContext(ctx, log)

	if cfg.OTLPEndpoint != "" {
		shutdownTracer, err := telemetry.InitTracerProvider(ctx, cfg.OTLPEndpoint, cfg.ServiceName, cfg.ServiceVersion)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer shutdown(log, "tracer", shutdownTracer)
	}

	metricsHandler, shutdownMeter, err := telemetry.InitMeterProvider(cfg.ServiceName, cfg.ServiceVersion)
	if err != nil {
		return fmt.Errorf("init meter: %w", err)
	}
	defer shutdown(log, "meter", shutdownMeter)

	shopMetrics, err := telemetry.NewShopMetrics(otel.GetMeterProvider())
	if err != nil {
		return fmt.Errorf("init shop metrics: %w", err)
	}

	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := pkgdb.Close(db); err != nil {
			log.Warn("db_close_failed", "error", err)
		}
	}()
	if err := repo.Migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	store := &repo.GormRepo{DB: db}

	hub := live.NewHub(service.TopicOrders)
	go hub.Run(ctx)
	defer hub.Stop()

	events := service.Fanout{hub}
	var sender service.OTPSender = notify.LogSender{}
	if len(cfg.KafkaBrokers) > 0 {
		producer := mykafka.NewProducer(cfg.KafkaBrokers)
		defer func() {
			if err := producer.Close(); err != nil {
				log.Warn("kafka_close_failed", "error", err)
			}
		}()
		events = append(events, producer)
		sender = &notify.KafkaSender{Publisher: producer}
		log.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	}

	var index service.ProductIndex
	if cfg.ESURL != "" {
		client, err := es.NewClient(ctx, cfg)
		if err != nil {
			log.Warn("elasticsearch_unavailable", "error", err)
		} else {
			index = &es.ProductIndex{Client: client, Index: cfg.ESIndex}
		}
	}

	var resendLimiter, verifyLimiter service.ResendLimiter
	if cfg.RedisURL != "" {
		rdb, err := ratelimit.Connect(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("redis_unavailable", "error", err)
		} else {
			defer rdb.Close()
			resendLimiter = ratelimit.New(rdb, cfg.OTPResendLimit, cfg.OTPResendWindow)
			verifyLimiter = ratelimit.New(rdb, cfg.OTPVerifyLimit, cfg.OTPResendWindow)
		}
	}

	issuer := tokens.Issuer{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL}

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = response.ErrorHandler
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.Secure())
	e.Use(loggingmw.RequestLogger(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			authmw.HeaderSessionID,
		},
	}))

	httpserver.Register(e, &httpserver.Deps{
		Auth:           &authmw.Authenticator{Secret: cfg.JWTSecret, Users: store},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Repo: store, Index: index, Events: events}},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: store, Events: events}},
		OrderHandler:   &httpserver.OrderHTTP{Svc: &service.OrderService{Repo: store, Events: events, Metrics: shopMetrics}},
		AuthHandler: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Repo:    store,
			Hasher:  hash.Secret{},
			Issuer:  issuer,
			Sender:  sender,
			Limiter: resendLimiter,
			Events:  events,
			OTPTTL:  cfg.OTPTTL,

			VerifyLimiter: verifyLimiter,
		}},
		UserHandler:      &httpserver.UserHTTP{Svc: &service.UserService{Repo: store, Events: events}},
		ReviewHandler:    &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: store, Events: events}},
		AnalyticsHandler: &httpserver.AnalyticsHTTP{Svc: &service.AnalyticsService{Repo: store}},
		LiveHandler: &live.Handler{Hub: hub, Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     live.SameOrigin,
		}},
		Ready:   func(ctx context.Context) error { return pkgdb.Ping(ctx, db) },
		Metrics: metricsHandler,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           otelhttp.NewHandler(e, cfg.ServiceName),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutting_down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("server_shutdown_failed", "error", err)
	}
	log.Info("shutdown_complete")
	return nil
}

func shutdown(log *slog.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Warn("telemetry_shutdown_failed", "provider", name, "error", err)
	}
}
