package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"president-insights/internal/config"
	"president-insights/internal/service"
	"president-insights/internal/twitter"
	"president-insights/internal/watson"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		name    string
		flat    bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "analyze <handle>",
		Short: "Analiza la personalidad de un politico a partir de sus tweets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger := zap.NewExample()
			defer logger.Sync()

			handles := make(map[string]string, len(cfg.Handles)+1)
			for h, n := range cfg.Handles {
				handles[h] = n
			}
			if name != "" {
				handles[normalizeHandle(args[0])] = name
			}

			fetcher := twitter.NewHTTPClient(twitter.Options{
				BaseURL:        cfg.TwitterAPIURL,
				TokenURL:       cfg.TwitterTokenURL,
				ConsumerKey:    cfg.TwitterConsumerKey,
				ConsumerSecret: cfg.TwitterConsumerSecret,
				BearerToken:    cfg.TwitterBearerToken,
			}, logger)
			analyzer := watson.NewHTTPClient(cfg.WatsonURL, cfg.WatsonUsername, cfg.WatsonPassword, logger)
			svc := service.NewAnalysisService(fetcher, analyzer, nil, nil, handles, service.AnalysisOptions{
				TimelineCount: cfg.TimelineCount,
			}, logger)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			profile, err := svc.Analyze(ctx, args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if flat {
				return enc.Encode(profile.Flattened)
			}
			return enc.Encode(profile)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "nombre a mostrar si el handle no esta en POLITICIAN_HANDLES")
	cmd.Flags().BoolVar(&flat, "flat", false, "imprime solo el mapa aplanado de rasgos")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "tiempo maximo de la corrida")
	cmd.SetErrPrefix("analyze:")

	return cmd
}

// normalizeHandle deja el handle como lo busca AnalysisService.Resolve.
func normalizeHandle(handle string) string {
	return strings.TrimPrefix(strings.TrimSpace(handle), "@")
}
