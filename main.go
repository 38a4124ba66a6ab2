package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-delivery-dashboard/config"
	"food-delivery-dashboard/datasource"
	"food-delivery-dashboard/handlers"
	"food-delivery-dashboard/management"
	"food-delivery-dashboard/middleware"
	"food-delivery-dashboard/registry"
	"food-delivery-dashboard/routes"
	"food-delivery-dashboard/screens"
	"food-delivery-dashboard/session"
	"food-delivery-dashboard/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	db, err := config.InitDB(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessionTTL := time.Duration(cfg.JWTExpirationHours) * time.Hour
	kv, err := newKV(ctx, cfg, db, sessionTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session store")
	}

	source := newDataSource(cfg, db)
	provisioner := newProvisioner(cfg)
	projects := registry.New(db, source)
	orders := screens.NewOrders(source, projects)

	h := &handlers.Handler{
		Sessions:    session.NewStore(newAuthProvider(cfg, db), provisioner, cfg.ManagementToken),
		KV:          kv,
		Tokens:      middleware.NewTokenIssuer(cfg.JWTSecret, sessionTTL),
		Projects:    projects,
		Orders:      orders,
		Delivery:    screens.NewDelivery(source, orders),
		Finance:     screens.NewFinance(source, projects),
		Stats:       screens.NewStatistics(source),
		Settings:    screens.NewSettings(projects),
		Provisioner: provisioner,
		MgmtToken:   cfg.ManagementToken,
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      routes.NewRouter(cfg, h),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Msgf("dashboard API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}

// newKV opens the session store. Entries outlive their token by at most ttl.
func newKV(ctx context.Context, cfg *config.Config, db *gorm.DB, ttl time.Duration) (store.KV, error) {
	switch cfg.StoreBackend {
	case "redis":
		rdb, err := config.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return store.NewRedis(rdb, ttl), nil
	case "memory":
		log.Warn().Msg("sessions are kept in memory and will not survive a restart")
		return store.NewMemory(), nil
	default:
		kv := store.NewGorm(db)
		go purgeSessions(ctx, kv, ttl)
		return kv, nil
	}
}

func purgeSessions(ctx context.Context, kv *store.Gorm, ttl time.Duration) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := kv.PurgeExpired(ctx, ttl)
			if err != nil {
				log.Error().Err(err).Msg("session purge failed")
				continue
			}
			if n > 0 {
				log.Info().Int64("entries", n).Msg("expired sessions purged")
			}
		}
	}
}

func newAuthProvider(cfg *config.Config, db *gorm.DB) session.AuthProvider {
	if cfg.AuthProvider == "demo" {
		log.Warn().Msg("demo auth provider accepts any credentials")
		return session.DemoProvider{}
	}
	return session.NewDatabaseProvider(db)
}

func newDataSource(cfg *config.Config, db *gorm.DB) datasource.Source {
	if cfg.DataSource == "seeded" {
		log.Info().Int64("seed", cfg.DataSeed).Msg("serving seeded sample data")
		return datasource.NewSeededSource(cfg.DataSeed)
	}
	return datasource.NewGormSource(db)
}

func newProvisioner(cfg *config.Config) management.Provisioner {
	if cfg.ManagementAPIURL == "" {
		return management.Demo{}
	}
	return management.NewClient(cfg.ManagementAPIURL)
}
