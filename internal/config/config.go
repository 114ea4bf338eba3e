package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read from the environment. A .env file in the working directory
// is loaded first when present; real environment variables take precedence.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	RedisAddr     string `envconfig:"REDIS_ADDR" required:"true"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`

	HTTPAddr      string   `envconfig:"HTTP_ADDR" default:":8080"`
	PublicBaseURL string   `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`
	CORSOrigins   []string `envconfig:"CORS_ORIGINS" default:"http://localhost:5173"`
	CookieSecure  bool     `envconfig:"COOKIE_SECURE" default:"true"`

	CloudinaryURL string `envconfig:"CLOUDINARY_URL"`
	RabbitURL     string `envconfig:"RABBIT_URL"`

	WorkerCount int `envconfig:"WORKER_COUNT" default:"1"`
	WorkerQueue int `envconfig:"WORKER_QUEUE" default:"64"`
}

var dotenvLoad = godotenv.Load

// Load reads the configuration and checks value ranges envconfig cannot express.
func Load() (*Config, error) {
	if err := dotenvLoad(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must not be empty")
	}
	if cfg.WorkerCount <= 0 {
		return nil, fmt.Errorf("invalid WORKER_COUNT: %d", cfg.WorkerCount)
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %d", cfg.BcryptCost)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: %s", cfg.SessionTTL)
	}
	return &cfg, nil
}
