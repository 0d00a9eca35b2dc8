package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "dora_paradise/internal/adapters/http_server"
	"dora_paradise/internal/adapters/observability"
	redisad "dora_paradise/internal/adapters/redis"
	"dora_paradise/internal/app"
	"dora_paradise/internal/domain"
	"dora_paradise/internal/shared"
	mysqlrepo "dora_paradise/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("AUTH_JWT_SECRET is required to verify booking callers")
	}

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
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	catalog := domain.DefaultCatalog()

	handlers := &server.Handlers{
		Bookings: app.NewBookingService(repo, cache, catalog),
		Queries:  app.NewQueryService(repo, cache, catalog, cfg.CacheTTL),
		Contact:  app.NewContactService(repo, cfg.ContactPerHour),
	}

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(handlers, server.Auth([]byte(cfg.JWTSecret)))

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
