package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/skillspace/internal/ai"
	"github.com/example/skillspace/internal/guilds"
	"github.com/example/skillspace/internal/missions"
	"github.com/example/skillspace/internal/scheduler"
)

// Config holds all configuration for skillspace
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Telegram TelegramConfig
	Game     GameConfig
	LogLevel string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig selects the catalog database
type DatabaseConfig struct {
	Type string // sqlite or postgres
	Path string
	DSN  string
}

// GeminiConfig holds mentor client configuration
type GeminiConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// TelegramConfig holds bot configuration
type TelegramConfig struct {
	Token string
	Debug bool
}

// GameConfig holds gameplay knobs
type GameConfig struct {
	GuildExpPolicy guilds.ExpPolicy
	DailyResetAt   string
	StrikeTick     time.Duration
	CatalogFile    string // optional YAML replacing the bundled catalog
}

// Load reads .env files (missing files are ignored) and then the environment
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	policy, err := guilds.ParseExpPolicy(getEnv("GUILD_EXP_POLICY", string(guilds.PolicyNone)))
	if err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			Type: getEnv("DB_TYPE", "sqlite"),
			Path: getEnv("DATABASE_PATH", "data/skillspace.db"),
			DSN:  getEnv("DATABASE_DSN", ""),
		},
		Gemini: GeminiConfig{
			APIKey:  getEnv("GEMINI_API_KEY", getEnv("API_KEY", "")),
			Model:   getEnv("GEMINI_MODEL", ai.DefaultModel),
			Timeout: getEnvAsDuration("MENTOR_TIMEOUT", ai.DefaultTimeout),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TELEGRAM_BOT_TOKEN", ""),
			Debug: getEnvAsBool("TELEGRAM_DEBUG", false),
		},
		Game: GameConfig{
			GuildExpPolicy: policy,
			DailyResetAt:   getEnv("DAILY_RESET_AT", scheduler.DefaultResetAt),
			StrikeTick:     getEnvAsDuration("STRIKE_TICK", missions.DefaultTickInterval),
			CatalogFile:    getEnv("CATALOG_FILE", ""),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch c.Database.Type {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("DATABASE_PATH is required for sqlite")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return fmt.Errorf("DATABASE_DSN is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE: %q", c.Database.Type)
	}

	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("invalid mentor timeout: %s", c.Gemini.Timeout)
	}
	if c.Game.StrikeTick <= 0 {
		return fmt.Errorf("invalid strike tick: %s", c.Game.StrikeTick)
	}
	if _, err := time.Parse("15:04", c.Game.DailyResetAt); err != nil {
		return fmt.Errorf("invalid DAILY_RESET_AT %q: want HH:MM", c.Game.DailyResetAt)
	}

	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
