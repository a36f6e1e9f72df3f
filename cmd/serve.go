package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"workx.com/workx/internal/attachments"
	config "workx.com/workx/internal/configs"
	httpapi "workx.com/workx/internal/http"
	repository "workx.com/workx/internal/repositories"
	"workx.com/workx/internal/services"
	"workx.com/workx/internal/sessions"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the WorkX marketplace HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		database := config.New(cfg.DatabaseDSN)

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()

		sessionStore := sessions.NewRedisStore(
			redisClient,
			time.Duration(cfg.SessionTTLHours)*time.Hour,
		)

		taskRepo := repository.NewTaskRepository(database)
		accountRepo := repository.NewAccountRepository(database)
		store := attachments.NewDefaultStore()

		accountService := services.NewAccountService(accountRepo, sessionStore)
		lifecycleService := services.NewLifecycleService(taskRepo, accountRepo, store)

		e := echo.New()
		handler := httpapi.NewHandler(accountService, lifecycleService, database, redisClient)
		httpapi.Register(e, handler, sessionStore, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)

		log.Println("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
