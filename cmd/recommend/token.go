package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"careerpath/internal/config"
	"careerpath/internal/domain"
	"careerpath/internal/service"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a local access token for calling the API (development only)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_ = godotenv.Load()
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if cfg.JWTSecret == "" {
			return errors.New("JWT_SECRET is not set")
		}

		userID, _ := cmd.Flags().GetString("user-id")
		email, _ := cmd.Flags().GetString("email")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		token, err := service.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, ttl).
			GenerateAccessToken(domain.User{ID: userID, Email: email})
		if err != nil {
			return fmt.Errorf("signing token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("user-id", "", "user id placed in the token subject")
	tokenCmd.Flags().String("email", "", "optional email claim")
	tokenCmd.Flags().Duration("ttl", time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("user-id")
}
