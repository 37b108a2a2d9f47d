package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"quiz-widget/internal/config"
	"quiz-widget/internal/domain"
	"quiz-widget/internal/infra/memory"
	pgloader "quiz-widget/internal/infra/postgres"
	redisstore "quiz-widget/internal/infra/redis"
	transport "quiz-widget/internal/transport/http"
)

// NewServeCmd builds the CLI subcommand that serves the question endpoint.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"start"},
		Short:   "Serve GET /api/questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = config.DefaultPort
	}

	var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(sampleQuestions())
	switch {
	case cfg.Postgres.URL != "":
		if err := runMigrationsWithConfig(ctx, cfg, false); err != nil {
			return err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		loader = pgloader.NewQuestionLoader(pool)
		log.Printf("serving questions from postgres")
	case cfg.Questions.File != "":
		loader = memory.NewFileQuestionLoader(cfg.Questions.File)
		log.Printf("serving questions from %s", cfg.Questions.File)
	default:
		log.Printf("no question bank configured, serving the sample set")
	}

	questionsTTL := config.TTLDuration(cfg.Questions.TTL, 10*time.Minute)
	var repo transport.QuestionRepository
	if cfg.Redis.Addr != "" {
		client, err := newRedisClient(ctx, cfg)
		if err != nil {
			return err
		}
		defer client.Close()
		repo = redisstore.NewQuestionRepository(client, loader, questionsTTL)
	} else {
		repo = memory.NewQuestionRepository(loader, questionsTTL)
	}

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(repo, transport.RouterOptions{AllowedOrigins: cfg.Server.CORSOrigins}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("serving questions on :%s", finalPort)
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

// sampleQuestions is served when neither a file nor Postgres is configured.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{Text: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectIndex: 1},
		{Text: "Which planet is known as the Red Planet?", Options: []string{"Venus", "Mars", "Jupiter"}, CorrectIndex: 1},
		{Text: "What is the capital of France?", Options: []string{"Paris", "Rome", "Madrid"}, CorrectIndex: 0},
	}
}
