package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort      string        `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string        `env:"DATABASE_URL"`
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"6h"`

	TwitterConsumerKey    string `env:"TWITTER_CONSUMER_KEY,required,notEmpty"`
	TwitterConsumerSecret string `env:"TWITTER_CONSUMER_SECRET,required,notEmpty"`
	TwitterBearerToken    string `env:"TWITTER_BEARER_TOKEN"`
	TwitterAPIURL         string `env:"TWITTER_API_URL" envDefault:"https://api.twitter.com/1.1"`
	TwitterTokenURL       string `env:"TWITTER_TOKEN_URL" envDefault:"https://api.twitter.com/oauth2/token"`
	TimelineCount         int    `env:"TWITTER_TIMELINE_COUNT" envDefault:"200"`

	WatsonUsername string `env:"WATSON_USERNAME,required,notEmpty"`
	WatsonPassword string `env:"WATSON_PASSWORD,required,notEmpty"`
	WatsonURL      string `env:"WATSON_URL" envDefault:"https://gateway.watsonplatform.net/personality-insights/api"`

	// Handles reemplaza el viejo archivo de handles: "handle:Nombre;otro:Otro Nombre".
	Handles map[string]string `env:"POLITICIAN_HANDLES" envSeparator:";" envKeyValSeparator:":"`

	JWTSecret         string        `env:"JWT_SECRET"`
	AnalyzeRateLimit  int           `env:"ANALYZE_RATE_LIMIT" envDefault:"5"`
	AnalyzeRateWindow time.Duration `env:"ANALYZE_RATE_WINDOW" envDefault:"1m"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// OperatorConfig es el subconjunto que necesita cmd/issue_token: sin credenciales de Twitter ni Watson.
// Comparte variables con Config para que CLI y servidor usen el mismo secreto y la misma base Redis.
type OperatorConfig struct {
	JWTSecret     string `env:"JWT_SECRET,required,notEmpty"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadOperatorConfig carga OperatorConfig desde variables de entorno.
func LoadOperatorConfig() (*OperatorConfig, error) {
	var cfg OperatorConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
