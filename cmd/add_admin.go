package cmd

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	config "workx.com/workx/internal/configs"
	model "workx.com/workx/internal/models"
	repository "workx.com/workx/internal/repositories"
)

var (
	adminUsername string
	adminEmail    string
	adminPassword string
)

var addAdminCmd = &cobra.Command{
	Use:   "add-admin",
	Short: "Create the admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}
		if adminPassword == "" {
			return errors.New("--password is required")
		}

		cfg := config.Load()
		database := config.New(cfg.DatabaseDSN)
		accounts := repository.NewAccountRepository(database)

		ctx := context.Background()

		existing, err := accounts.FindAdminByUsername(ctx, adminUsername)
		if err != nil {
			return err
		}
		if existing != nil {
			log.Println("admin already exists")
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		if err := accounts.CreateAdmin(ctx, &model.Admin{
			ID:        uuid.NewString(),
			Username:  adminUsername,
			Email:     adminEmail,
			Password:  string(hash),
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}

		log.Printf("admin %q added successfully", adminUsername)
		return nil
	},
}

func init() {
	addAdminCmd.Flags().StringVar(&adminUsername, "username", "admin", "admin username")
	addAdminCmd.Flags().StringVar(&adminEmail, "email", "admin@workx.com", "admin email")
	addAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (required)")
	rootCmd.AddCommand(addAdminCmd)
}
