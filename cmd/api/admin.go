package main

import (
	"fmt"

	"accounting/internal/database"
	"accounting/internal/logger"
	"accounting/internal/model"
	"accounting/internal/repository"
	"accounting/internal/service"

	"github.com/spf13/cobra"
)

var adminFlags struct {
	username string
	email    string
	password string
	phone    string
}

var createAdminCmd = &cobra.Command{
	Use:     "create-admin",
	Short:   "Create an admin user",
	Example: `  api create-admin --username owner --email owner@example.com --password secret123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.NewConnection(cfg.DSN())
		if err != nil {
			return err
		}

		auditService := service.NewAuditService(repository.NewAuditRepository(db))
		userService := service.NewUserService(repository.NewUserRepository(db), auditService, cfg.JWTSecret, cfg.TokenTTL)

		user, err := userService.CreateUser(cmd.Context(), service.CreateUserRequest{
			Username: adminFlags.username,
			Email:    adminFlags.email,
			Phone:    adminFlags.phone,
			Password: adminFlags.password,
			Role:     model.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("creating admin: %w", err)
		}

		log := logger.WithComponent("cmd")
		log.Info().
			Str("user_id", user.ID.String()).
			Str("username", user.Username).
			Msg("admin user created")
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminFlags.username, "username", "admin", "username")
	f.StringVar(&adminFlags.email, "email", "", "email address (required)")
	f.StringVar(&adminFlags.password, "password", "", "password, at least 6 characters (required)")
	f.StringVar(&adminFlags.phone, "phone", "", "phone number")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
}
