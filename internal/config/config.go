package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	defaultPort       = 8000
	defaultEnv        = "development"
	defaultDBHost     = "127.0.0.1"
	defaultDBPort     = 5432
	defaultDBUser     = "postgres"
	defaultDBName     = "draftshift"
	defaultDBSSLMode  = "disable"
	defaultCacheTTL   = 300
)

// Load reads the YAML config file and applies environment overrides and defaults.
// A missing file is not an error; everything can come from the environment.
func Load(path string) (*AppConfig, error) {
	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DSN = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	if v := os.Getenv("ENVIRONMENT"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("FRONTEND_ORIGIN"); v != "" {
		cfg.AllowedOrigins = append(cfg.AllowedOrigins, v)
	}
	if cfg.Qdrant.URL == "" {
		cfg.Qdrant.URL = os.Getenv("QDRANT_URL")
	}
	if cfg.Qdrant.APIKey == "" {
		cfg.Qdrant.APIKey = os.Getenv("QDRANT_KEY")
	}

	// A bare OPENAI_API_KEY is enough to enable summarization and embeddings.
	if len(cfg.AI.Providers) == 0 {
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			cfg.AI.Providers = append(cfg.AI.Providers, AIProvider{
				ID:      "openai",
				Name:    "OpenAI",
				Type:    "openai",
				APIKey:  key,
				Enabled: true,
			})
		}
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			cfg.AI.Providers = append(cfg.AI.Providers, AIProvider{
				ID:      "anthropic",
				Name:    "Anthropic",
				Type:    "anthropic",
				APIKey:  key,
				Enabled: true,
			})
		}
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))

	if cfg.DSN == "" {
		cfg.DSN = cfg.Database.BuildDSN()
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379/0"
	}
	if cfg.News.CacheTTLSeconds <= 0 {
		cfg.News.CacheTTLSeconds = defaultCacheTTL
	}
	if cfg.Qdrant.Collection == "" {
		cfg.Qdrant.Collection = "documents"
	}
	if cfg.Qdrant.EmbeddingModel == "" {
		cfg.Qdrant.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.Qdrant.VectorSize <= 0 {
		cfg.Qdrant.VectorSize = 1536
	}
}

// IsDev reports whether the application runs in development mode.
func (c *AppConfig) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// BuildDSN assembles a Postgres DSN from discrete fields.
func (d *DatabaseConfig) BuildDSN() string {
	host := d.Host
	if host == "" {
		host = defaultDBHost
	}
	port := d.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := d.User
	if user == "" {
		user = defaultDBUser
	}
	name := d.Name
	if name == "" {
		name = defaultDBName
	}
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = defaultDBSSLMode
	}

	parts := []string{
		"host=" + host,
		"port=" + strconv.Itoa(port),
		"user=" + user,
		"dbname=" + name,
		"sslmode=" + sslMode,
	}
	if d.Password != "" {
		parts = append(parts, "password="+d.Password)
	}
	return strings.Join(parts, " ")
}
