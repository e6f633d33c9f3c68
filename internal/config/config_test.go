package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TWITTER_CONSUMER_KEY", "ck")
	t.Setenv("TWITTER_CONSUMER_SECRET", "cs")
	t.Setenv("WATSON_USERNAME", "wu")
	t.Setenv("WATSON_PASSWORD", "wp")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.TimelineCount != 200 {
		t.Fatalf("expected timeline count 200, got %d", cfg.TimelineCount)
	}
	if cfg.CacheTTL != 6*time.Hour {
		t.Fatalf("expected cache ttl 6h, got %s", cfg.CacheTTL)
	}
	if cfg.AnalyzeRateWindow != time.Minute {
		t.Fatalf("expected rate window 1m, got %s", cfg.AnalyzeRateWindow)
	}
}

func TestLoadConfigParsesHandles(t *testing.T) {
	setRequired(t)
	t.Setenv("POLITICIAN_HANDLES", "realDonaldTrump:Donald Trump;HillaryClinton:Hillary Clinton")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cfg.Handles) != 2 {
		t.Fatalf("expected 2 handles, got %v", cfg.Handles)
	}
	if cfg.Handles["HillaryClinton"] != "Hillary Clinton" {
		t.Fatalf("unexpected name: %q", cfg.Handles["HillaryClinton"])
	}
}

func TestLoadConfigRequiresCredentials(t *testing.T) {
	t.Setenv("TWITTER_CONSUMER_KEY", "")
	t.Setenv("TWITTER_CONSUMER_SECRET", "")
	t.Setenv("WATSON_USERNAME", "")
	t.Setenv("WATSON_PASSWORD", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error when credentials are missing")
	}
}

func TestLoadOperatorConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("TWITTER_CONSUMER_KEY", "")

	cfg, err := LoadOperatorConfig()
	if err != nil {
		t.Fatalf("expected no error without twitter credentials, got %v", err)
	}
	if cfg.JWTSecret != "s3cret" || cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.RedisDB != 2 {
		t.Fatalf("expected redis db 2, got %d", cfg.RedisDB)
	}
}

func TestLoadOperatorConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadOperatorConfig(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}
}
