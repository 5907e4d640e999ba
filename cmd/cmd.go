package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/alibekshomurotov/Bot/internal/bot"
	"github.com/alibekshomurotov/Bot/internal/config"
	"github.com/alibekshomurotov/Bot/internal/repository"
	"github.com/alibekshomurotov/Bot/internal/services"
	"github.com/alibekshomurotov/Bot/internal/storage"
)

func Run() {
	// Load configuration
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Open the snapshot store
	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer closeStore()

	// Load the tables
	repo := repository.New(store, cfg.Dialog.TTL)
	if err := repo.Load(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to load stored data")
	}
	log.Info().
		Int("users", repo.UserCount()).
		Int("drivers", len(repo.DriverApplications())).
		Int("passengers", len(repo.PassengerApplications())).
		Msg("Data loaded")

	// Create the Telegram bot
	tb, err := bot.NewTelebot(cfg.Telegram.Token)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Telegram bot")
	}
	notifier := bot.NewNotifier(tb)

	// Initialize services
	registration := services.NewRegistration(repo)
	applications := services.NewApplications(repo)
	directory := services.NewDirectory(repo, notifier, cfg.Payment.Amount)
	payments := services.NewPayments(repo, directory, notifier, cfg.Payment.Amount, cfg.Telegram.AdminID)
	moderation := services.NewModeration(repo, notifier, cfg.Telegram.ChannelID, cfg.Telegram.AdminID)
	broadcast := services.NewBroadcast(repo, notifier)
	reports := services.NewReports(repo, cfg.Payment.Amount)

	b := bot.New(tb, cfg, repo, bot.Deps{
		Registration: registration,
		Applications: applications,
		Payments:     payments,
		Directory:    directory,
		Moderation:   moderation,
		Broadcast:    broadcast,
		Reports:      reports,
	})

	// Reap abandoned dialogues
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepDialogs(sweepCtx, repo, cfg.Dialog.TTL)

	// Liveness probe
	srv := probeServer(cfg)
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting liveness probe")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Probe server failed to start")
		}
	}()

	// Start polling in a goroutine so the signal handler stays in charge
	go func() {
		log.Info().Int64("admin_id", cfg.Telegram.AdminID).Msg("Starting bot")
		b.Start()
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	b.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Probe server forced to shutdown")
	}

	log.Info().Msg("Bot exited")
}

// openStore selects the snapshot backend from configuration
func openStore(cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.Storage.Backend {
	case "", "file":
		store := storage.NewFileStore(cfg.Storage.DataFile, cfg.Storage.PaymentsFile)
		return store, func() {}, nil
	case "postgres":
		store, err := storage.NewPostgresStore(context.Background(), cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// sweepDialogs periodically drops abandoned registration dialogues
func sweepDialogs(ctx context.Context, repo *repository.Repository, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := repo.ExpireDialogs(now); n > 0 {
				log.Debug().Int("expired", n).Msg("Dialogues expired")
			}
		}
	}
}

// probeServer builds the minimal HTTP liveness surface
func probeServer(cfg *config.Config) *http.Server {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Ride Sharing Bot is running"))
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.yaml"
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
