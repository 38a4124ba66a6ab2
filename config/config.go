package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port        int    `mapstructure:"PORT"`
	Env         string `mapstructure:"APP_ENV"` // development | production
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`

	// Persistence
	DatabasePath string `mapstructure:"DATABASE_PATH"`
	StoreBackend string `mapstructure:"STORE_BACKEND"` // database | redis | memory
	RedisURL     string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	AuthProvider       string `mapstructure:"AUTH_PROVIDER"` // database | demo
	LoginRatePerMinute int    `mapstructure:"LOGIN_RATE_PER_MINUTE"`

	// Screen data
	DataSource string `mapstructure:"DATA_SOURCE"` // database | seeded
	DataSeed   int64  `mapstructure:"DATA_SEED"`

	// Management API used to provision external database projects
	ManagementAPIURL string `mapstructure:"MANAGEMENT_API_URL"`
	ManagementToken  string `mapstructure:"MANAGEMENT_TOKEN"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:8080")
	v.SetDefault("DATABASE_PATH", "food_delivery.db")
	v.SetDefault("STORE_BACKEND", "database")
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("JWT_SECRET", "food_delivery_super_secret_2024")
	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("AUTH_PROVIDER", "database")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 20)
	v.SetDefault("DATA_SOURCE", "database")
	v.SetDefault("DATA_SEED", 42)
	v.SetDefault("MANAGEMENT_API_URL", "")
	v.SetDefault("MANAGEMENT_TOKEN", "")

	// .env is optional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// AllowedOrigins splits CORSOrigins into a clean list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
