package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sukaikan/internal/admin"
	"sukaikan/internal/assistant"
	"sukaikan/internal/batch"
	"sukaikan/internal/cart"
	"sukaikan/internal/config"
	"sukaikan/internal/db"
	"sukaikan/internal/events"
	"sukaikan/internal/httpx"
	"sukaikan/internal/logger"
	"sukaikan/internal/middleware"
	"sukaikan/internal/order"
	"sukaikan/internal/payment"
	"sukaikan/internal/product"
	"sukaikan/internal/session"
	"sukaikan/internal/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var (
	initDBFunc      = db.InitDB
	startServerFunc = func(srv *http.Server) error { return srv.ListenAndServe() }
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := initDBFunc(cfg)
	defer database.Close()

	handler, cleanup, err := newServer(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("🚀 storefront listening", zap.String("addr", srv.Addr))
		errCh <- startServerFunc(srv)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newServer wires the services into the router. cleanup flushes the event
// publisher and closes Redis.
func newServer(ctx context.Context, cfg *config.Config, database *sql.DB) (http.Handler, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	files, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, cleanup, err
	}

	sessions, closeSessions := newSessionStore(ctx, cfg.RedisAddr)
	closers = append(closers, closeSessions)

	publisher, closePublisher := newPublisher(cfg.KafkaBrokers)
	closers = append(closers, closePublisher)

	authenticator, err := admin.NewAuthenticator(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret)
	if err != nil {
		return nil, cleanup, err
	}

	productSvc := product.NewService(product.NewRepository(database), files)
	cartSvc := cart.NewService(productSvc)
	batchSvc := batch.NewService(batch.NewRepository(database))
	orderSvc := order.NewService(order.Deps{
		Repo:      order.NewRepository(database),
		Carts:     cartSvc,
		Batches:   batchSvc,
		Gateway:   payment.NewMidtransGateway(cfg.MidtransServerKey, cfg.MidtransProduction),
		Attempts:  payment.NewRepository(database),
		Publisher: publisher,
		Files:     files,
	})

	secure := cfg.AppEnv == "production"
	h := &httpx.Handler{
		Products:          productSvc,
		Carts:             cartSvc,
		Batches:           batchSvc,
		Orders:            orderSvc,
		Auth:              authenticator,
		Dashboard:         admin.NewDashboardService(orderSvc, productSvc, batchSvc),
		Assistant:         assistant.New(assistant.NewGeminiClient(ctx, cfg.GeminiAPIKey)),
		Files:             files,
		Sessions:          sessions,
		MidtransClientKey: cfg.MidtransClientKey,
		SecureCookies:     secure,
	}

	router := httpx.NewRouter(h, httpx.RouterConfig{
		Sessions:      sessions,
		Limiter:       middleware.NewRateLimiter(ctx),
		SecureCookies: secure,
	})
	return router, cleanup, nil
}

// newPublisher returns a Kafka publisher when brokers are configured. Its
// write loop is not tied to the signal context: events published while
// in-flight requests finish are flushed by the returned close func.
func newPublisher(brokers []string) (events.Publisher, func()) {
	if len(brokers) == 0 {
		return events.Nop{}, func() {}
	}

	kp := events.NewKafkaPublisher(brokers, 1024)
	kp.Start(context.Background())
	return kp, func() {
		kp.Close()
		st := kp.Stats()
		logger.L().Info("event publisher closed",
			zap.Uint64("sent", st.Sent),
			zap.Uint64("failed", st.Failed),
			zap.Uint64("dropped", st.Dropped),
		)
	}
}

// newSessionStore uses Redis when it answers a ping and falls back to an
// in-process store otherwise.
func newSessionStore(ctx context.Context, addr string) (session.Store, func()) {
	if addr == "" {
		return session.NewMemoryStore(), func() {}
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.L().Warn("redis unavailable, sessions kept in memory", zap.String("addr", addr), zap.Error(err))
		_ = rdb.Close()
		return session.NewMemoryStore(), func() {}
	}

	return session.NewRedisStore(rdb, session.DefaultTTL), func() { _ = rdb.Close() }
}
