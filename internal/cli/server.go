package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizdash/internal/app"
	"quizdash/internal/auth"
	"quizdash/internal/config"
	"quizdash/internal/infra/memory"
	pgstore "quizdash/internal/infra/postgres"
	redisinfra "quizdash/internal/infra/redis"
	"quizdash/internal/infra/sqlite"
	transport "quizdash/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	// Question bank: Postgres when configured, seed data otherwise, with an
	// optional Redis cache in front.
	var bank app.QuestionBank = memory.NewQuestionBank(memory.SeedCategories(), memory.SeedQuestions())
	if pool != nil {
		bank = pgstore.NewQuestionBank(pool)
	}
	if redisClient != nil {
		quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)
		bank = redisinfra.NewQuestionCache(redisClient, bank, quizTTL)
	}

	// Users and attempts: Postgres, then SQLite, then memory.
	var (
		users    auth.UserStore
		attempts app.AttemptStore
	)
	switch {
	case pool != nil:
		users = pgstore.NewUserStore(pool)
		attempts = pgstore.NewAttemptStore(pool)
	case cfg.SQLite.Path != "":
		store, err := sqlite.NewStore(cfg.SQLite.Path)
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
		defer store.Close()
		users = store
		attempts = store
	default:
		users = memory.NewUserStore()
		attempts = memory.NewAttemptStore()
	}

	var sessions app.SessionRepository = memory.NewSessionStore()
	if redisClient != nil {
		sessionTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
		sessions = redisinfra.NewSessionStore(redisClient, sessionTTL)
	}

	secret := cfg.Auth.Secret
	if secret == "" {
		secret = os.Getenv("AUTH_SECRET")
	}
	if secret == "" {
		return fmt.Errorf("auth secret not configured")
	}
	tokenTTL := config.TTLDuration(cfg.Auth.TokenTTL, 24*time.Hour)

	authService := auth.NewService(users, auth.NewTokenManager(secret, tokenTTL), cfg.Auth.BcryptCost)
	quizService := app.NewQuizService(bank, attempts, sessions)
	httpServer := transport.NewServer(authService, quizService, cfg.QuestionsPerAttempt())

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      httpServer.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quizdash on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
