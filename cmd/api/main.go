package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/PabloPavan/varejao_api/docs"
	"github.com/PabloPavan/varejao_api/internal/config"
	"github.com/PabloPavan/varejao_api/internal/db"
	"github.com/PabloPavan/varejao_api/internal/httpapi"
	"github.com/PabloPavan/varejao_api/internal/mail"
	"github.com/PabloPavan/varejao_api/internal/notifications"
	"github.com/PabloPavan/varejao_api/internal/orders"
	"github.com/PabloPavan/varejao_api/internal/products"
	"github.com/PabloPavan/varejao_api/internal/queue"
	"github.com/PabloPavan/varejao_api/internal/ratelimit"
	"github.com/PabloPavan/varejao_api/internal/telemetry"
	"github.com/PabloPavan/varejao_api/internal/users"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serviceName := cfg.App.Name
	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.Setup(ctx, telemetry.Service{
			Name:        serviceName,
			Version:     cfg.App.Version,
			Environment: cfg.App.Env,
		})
		if err != nil {
			log.Fatalf("telemetry error: %v", err)
		}
		defer shutdownTelemetry(context.Background())
	} else {
		telemetry.UseSlog(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}
	db.InitTelemetry(serviceName)

	d, err := db.New(ctx, db.Options{URL: cfg.DB.URL, MaxConns: cfg.DB.MaxConns})
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer d.Close()

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisOpt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatalf("redis url error: %v", err)
		}
		redisClient = redis.NewClient(redisOpt)
		defer redisClient.Close()
	}

	dbBase := db.NewBase(d.Pool, cfg.DB.QueryTimeout)
	usrRepo := users.NewRepository(dbBase)
	prdRepo := products.NewRepository(dbBase)
	ordRepo := orders.NewRepository(dbBase)

	q := queue.New(newQueueDriver(cfg, redisClient), queue.Options{JobTimeout: cfg.Notify.SendTimeout})
	defer q.Close()
	notifier := &notifications.Notifier{Queue: q}

	userSvc := &users.Service{Store: usrRepo, Notifier: notifier}
	orderSvc := &orders.Service{Store: ordRepo, Notifier: notifier}
	productSvc := &products.Service{
		Store:        prdRepo,
		CacheTTL:     cfg.Cache.ProductTTL,
		ListCacheTTL: cfg.Cache.ProductsListTTL,
	}

	health := &httpapi.HealthHandler{DB: d}
	var loginLimiter ratelimit.Limiter
	if redisClient != nil {
		productSvc.Cache = products.NewRedisCache(redisClient, cfg.Cache.Prefix)
		loginLimiter = &ratelimit.RedisLimiter{
			Client: redisClient,
			Prefix: cfg.RateLimit.Prefix,
			Limit:  cfg.RateLimit.LoginLimit,
			Window: cfg.RateLimit.LoginWindow,
		}
		health.Redis = httpapi.RedisPinger{Client: redisClient}
	} else {
		loginLimiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.LoginLimit, cfg.RateLimit.LoginWindow)
	}

	sender, err := mail.NewSender(cfg.Mail)
	if err != nil {
		log.Fatalf("mail error: %v", err)
	}
	renderer, err := notifications.NewRenderer(notifications.RendererOptions{
		StoreName: cfg.Site.StoreName,
		SiteURL:   cfg.Site.URL,
	})
	if err != nil {
		log.Fatalf("templates error: %v", err)
	}
	jobs := &notifications.Jobs{
		Renderer:   renderer,
		Sender:     sender,
		Names:      userSvc,
		AdminEmail: cfg.Site.AdminEmail,
	}
	jobs.Register(q)

	app := &httpapi.App{
		ServiceName: serviceName,
		CORSOrigins: cfg.HTTP.AllowedOrigins,
		Root:        &httpapi.RootHandler{Version: cfg.App.Version},
		Health:      health,
		Users:       &httpapi.UsersHandler{Service: userSvc, Limiter: loginLimiter},
		Products:    &httpapi.ProductsHandler{Service: productSvc},
		Orders:      &httpapi.OrdersHandler{Service: orderSvc},
	}

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           httpapi.NewRouter(app),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	// workers stop once the server has drained
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return q.Run(workerCtx, cfg.Notify.Workers)
	})
	g.Go(func() error {
		log.Printf("api listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		defer stopWorkers()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Printf("api stopped")
}

func newQueueDriver(cfg *config.Config, redisClient *redis.Client) queue.Driver {
	if cfg.Notify.QueueDriver == config.QueueDriverRedis && redisClient != nil {
		return queue.NewRedisDriver(redisClient, cfg.Notify.QueueKey)
	}
	return queue.NewMemoryDriver(cfg.Notify.QueueSize)
}
