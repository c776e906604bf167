package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobboard/infrastructure"
	"jobboard/interfaces"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "migrate the schema before serving")
}

func serve(ctx context.Context) error {
	pool, err := infrastructure.NewPostgresPool(ctx, log, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	db, err := infrastructure.NewGormDB(pool)
	if err != nil {
		return err
	}
	if migrateOnStart {
		if err := infrastructure.Migrate(ctx, log, db); err != nil {
			return err
		}
	}

	var events infrastructure.JobEventPublisher = infrastructure.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		rmq, err := infrastructure.NewRabbitMQ(log, cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		events = rmq
	} else {
		log.Info("RABBITMQ_URL not set, job events disabled")
	}
	defer events.Close()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), interfaces.RequestLogger(log))
	interfaces.NewHTTPHandler(router, log,
		infrastructure.NewJobStore(pool),
		infrastructure.NewCompanyStore(db),
		events,
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("address", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	log.Info("Server gracefully shut down")
	return nil
}
