package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"president-insights/internal/config"
	"president-insights/internal/service"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// El token solo es util si el servidor comparte JWT_SECRET y, con Redis, el mismo store.
func newRootCmd() *cobra.Command {
	var (
		ttl    time.Duration
		revoke string
	)

	cmd := &cobra.Command{
		Use:   "issue_token <operator>",
		Short: "Emite o revoca tokens de operador para POST /politicians/:handle/refresh",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOperatorConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			var store service.TokenStore
			if cfg.RedisAddr != "" {
				client := newRedisClient(cfg)
				defer client.Close()
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				if err := client.Ping(ctx).Err(); err != nil {
					return fmt.Errorf("redis ping: %w", err)
				}
				store = service.NewRedisTokenStore(client)
			}

			jwtSvc := service.NewJWTServiceWithStore(cfg.JWTSecret, ttl, store)
			if revoke != "" {
				if err := jwtSvc.Revoke(revoke); err != nil {
					return fmt.Errorf("revoke: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "revoked")
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("operator name is required")
			}
			token, err := jwtSvc.IssueOperatorToken(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "vigencia del token")
	cmd.Flags().StringVar(&revoke, "revoke", "", "token a revocar (requiere REDIS_ADDR)")

	return cmd
}

// newRedisClient apunta a la misma base que usa el servidor (REDIS_DB incluido).
func newRedisClient(cfg *config.OperatorConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}
