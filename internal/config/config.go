package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port string `mapstructure:"PORT"`
	Env  string `mapstructure:"ENV"`

	DBDSN      string `mapstructure:"DB_DSN"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     int    `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSSLMode  string `mapstructure:"DB_SSLMODE"`

	AllowedOrigins    []string `mapstructure:"ALLOWED_ORIGINS"`
	PublicOrigin      string   `mapstructure:"PUBLIC_ORIGIN"`
	TrustProxyHeaders bool     `mapstructure:"TRUST_PROXY_HEADERS"`

	RedisURL   string        `mapstructure:"REDIS_URL"`
	CatalogTTL time.Duration `mapstructure:"CATALOG_TTL"`

	RateLimitMax       int           `mapstructure:"RATE_LIMIT_MAX"`
	RateLimitWindow    time.Duration `mapstructure:"RATE_LIMIT_WINDOW"`
	RateLimitTableSize int           `mapstructure:"RATE_LIMIT_TABLE_SIZE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	AppName   string `mapstructure:"APP_NAME"`

	// Lado cliente (comandos catalog/report contra un servidor corriendo).
	APIURL    string `mapstructure:"API_URL"`
	APIOrigin string `mapstructure:"API_ORIGIN"`
}

var keys = []string{
	"PORT", "ENV",
	"DB_DSN", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"ALLOWED_ORIGINS", "PUBLIC_ORIGIN", "TRUST_PROXY_HEADERS",
	"REDIS_URL", "CATALOG_TTL",
	"RATE_LIMIT_MAX", "RATE_LIMIT_WINDOW", "RATE_LIMIT_TABLE_SIZE",
	"LOG_LEVEL", "LOG_FORMAT", "APP_NAME",
	"API_URL", "API_ORIGIN",
}

// Load lee env (y .env si existe). Solo falla si algún valor no se puede convertir.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_NAME", "clinica")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("TRUST_PROXY_HEADERS", false)
	v.SetDefault("CATALOG_TTL", "1h")
	v.SetDefault("RATE_LIMIT_MAX", 60)
	v.SetDefault("RATE_LIMIT_WINDOW", "60s")
	v.SetDefault("RATE_LIMIT_TABLE_SIZE", 10000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "vet-procedures")
	v.SetDefault("API_URL", "http://localhost:8080")

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.AllowedOrigins = splitOrigins(v.GetString("ALLOWED_ORIGINS"))
	return cfg, nil
}

func splitOrigins(raw string) []string {
	out := make([]string, 0)
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// HasDatabase indica si hay Postgres configurado (DSN explícito o DB_HOST).
func (c *Config) HasDatabase() bool {
	return strings.TrimSpace(c.DBDSN) != "" || strings.TrimSpace(c.DBHost) != ""
}

// DatabaseDSN devuelve DB_DSN si está, si no arma una URL postgres:// con las partes.
func (c *Config) DatabaseDSN() string {
	if dsn := strings.TrimSpace(c.DBDSN); dsn != "" {
		return dsn
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   "/" + c.DBName,
	}
	if c.DBUser != "" {
		if c.DBPassword != "" {
			u.User = url.UserPassword(c.DBUser, c.DBPassword)
		} else {
			u.User = url.User(c.DBUser)
		}
	}
	if c.DBSSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.DBSSLMode}}.Encode()
	}
	return u.String()
}

// Validate revisa combinaciones que no tienen sentido antes de levantar el server.
func (c *Config) Validate() error {
	if c.CatalogTTL <= 0 {
		return fmt.Errorf("CATALOG_TTL must be positive, got %s", c.CatalogTTL)
	}
	if c.RateLimitMax <= 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must be positive, got %d", c.RateLimitMax)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.RateLimitWindow)
	}
	if c.RateLimitTableSize <= 0 {
		return fmt.Errorf("RATE_LIMIT_TABLE_SIZE must be positive, got %d", c.RateLimitTableSize)
	}
	if c.PublicOrigin != "" {
		if u, err := url.Parse(c.PublicOrigin); err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("PUBLIC_ORIGIN must be scheme://host, got %q", c.PublicOrigin)
		}
	}
	return nil
}
