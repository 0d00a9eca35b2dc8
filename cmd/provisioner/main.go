package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"dora_paradise/internal/adapters/identity"
	"dora_paradise/internal/adapters/observability"
	"dora_paradise/internal/app"
	"dora_paradise/internal/domain"
	"dora_paradise/internal/shared"
	mysqlrepo "dora_paradise/internal/storage/mysql"
)

// Backfills a default loyalty profile for every user the identity provider
// knows about. Run after auth-side signups to keep ProfileNotFound at the
// booking endpoint meaning what it should: a provisioning bug, not a guest.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.IdentityBase).
		Int("workers", cfg.Workers).
		Int("page_size", cfg.PageSize).
		Msg("provisioner starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)

	dir, err := identity.New(cfg.IdentityBase, cfg.IdentityKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize identity client")
	}
	svc := app.NewProvisionService(dir, repo)

	users, err := svc.ListUsers(ctx, cfg.PageSize)
	if err != nil {
		log.Fatal().Err(err).Msg("listing identity users failed")
	}
	log.Info().Int("users", len(users)).Msg("directory listed")

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	failed := 0

	for _, u := range users {
		u := u

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(user domain.IdentityUser) {
			defer wg.Done()
			defer sem.Release(1)

			if err := svc.ProvisionUser(ctx, user); err != nil {
				log.Warn().Str("user", user.ID).Err(err).Msg("provision failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
		}(u)
	}

	wg.Wait()
	log.Info().Int("failed", failed).Msg("provisioning completed")
}
