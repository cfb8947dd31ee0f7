package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "book_my_hotel/internal/adapters/http_server"
	"book_my_hotel/internal/adapters/observability"
	redisad "book_my_hotel/internal/adapters/redis"
	"book_my_hotel/internal/app"
	"book_my_hotel/internal/domain"
	"book_my_hotel/internal/shared"
	mysqlrepo "book_my_hotel/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	// deps
	repo := mysqlrepo.New(db)
	rc := redisad.NewClient(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	cache := redisad.New(rc)

	var bookings domain.BookingRepository = repo
	if cfg.BookingStore == shared.BookingStoreRedis {
		bookings = redisad.NewBookingStore(rc, cfg.BookingsKey)
	}
	log.Info().Str("store", cfg.BookingStore).Dur("submit_delay", cfg.SubmitDelay).
		Dur("request_timeout", cfg.HTTPTimeout).
		Msg("booking store selected")

	q := app.NewQueryService(repo, bookings, repo, cache, cfg.CacheTTL)
	b := app.NewBookingService(q, bookings, shared.RealClock{}, cfg.SubmitDelay)
	u := app.NewUserService(repo)

	// http
	srv := server.New(cfg.HTTPTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q, B: b, U: u})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	// in-flight submissions may still be inside their confirmation delay
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.SubmitDelay+5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	_ = rc.Close()
	_ = db.Close()
	log.Info().Msg("API stopped")
}
