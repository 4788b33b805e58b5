package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// ServerConfig is the HTTP listener configuration
type ServerConfig struct {
	Port    int    `mapstructure:"port"`
	GinMode string `mapstructure:"gin_mode"`
}

// DatabaseConfig selects postgres when URL is set, otherwise a sqlite file at Path
type DatabaseConfig struct {
	URL  string `mapstructure:"url"`
	Path string `mapstructure:"path"`
}

// RedisConfig enables the redis-backed rate limiter when Addr is set
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig holds admin credentials and signing secrets
type AuthConfig struct {
	JWTSecret        string        `mapstructure:"jwt_secret"`
	APIMasterSecret  string        `mapstructure:"api_master_secret"`
	AdminUsername    string        `mapstructure:"admin_username"`
	AdminPassword    string        `mapstructure:"admin_password"`
	TokenTTL         time.Duration `mapstructure:"token_ttl"`
	BcryptCost       int           `mapstructure:"bcrypt_cost"`
	DefaultRateLimit int           `mapstructure:"default_rate_limit"`
}

// LogConfig selects the zap level and encoder
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SchedulerConfig tunes the assignment constraints
type SchedulerConfig struct {
	MaxDaysPerWeek       int `mapstructure:"max_days_per_week"`
	MinEmployeesPerShift int `mapstructure:"min_employees_per_shift"`
}

var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingSecret = errors.New("missing secret")
)

// envAliases keeps the plain variable names older deployments use
var envAliases = map[string][]string{
	"server.port":            {"PORT"},
	"server.gin_mode":        {"GIN_MODE"},
	"db.url":                 {"DATABASE_URL"},
	"db.path":                {"DATA_PATH"},
	"redis.addr":             {"REDIS_ADDR"},
	"auth.jwt_secret":        {"JWT_SECRET"},
	"auth.api_master_secret": {"API_MASTER_SECRET"},
	"auth.admin_username":    {"ADMIN_USERNAME"},
	"auth.admin_password":    {"ADMIN_PASSWORD"},
}

// LoadEnvFiles loads the first .env found in the working directory or its parents
func LoadEnvFiles() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

// Load reads configuration with precedence: environment > config file > defaults.
// An empty path searches for config.yaml in ./config and the working directory.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.gin_mode", "")
	v.SetDefault("db.url", "")
	v.SetDefault("db.path", "api_keys.db")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.api_master_secret", "")
	v.SetDefault("auth.admin_username", "admin")
	v.SetDefault("auth.admin_password", "admin123")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.bcrypt_cost", 14)
	v.SetDefault("auth.default_rate_limit", 10000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("scheduler.max_days_per_week", 5)
	v.SetDefault("scheduler.min_employees_per_shift", 2)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("ROSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, aliases := range envAliases {
		names := append([]string{"ROSTER_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, aliases...)
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings every binary depends on
func (c *Config) Validate() error {
	if c.Scheduler.MaxDaysPerWeek < 1 || c.Scheduler.MaxDaysPerWeek > 7 {
		return fmt.Errorf("%w: scheduler.max_days_per_week must be between 1 and 7", ErrInvalidConfig)
	}
	if c.Scheduler.MinEmployeesPerShift < 1 {
		return fmt.Errorf("%w: scheduler.min_employees_per_shift must be at least 1", ErrInvalidConfig)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port must be between 1 and 65535", ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format must be json or console", ErrInvalidConfig)
	}
	return nil
}

// ValidateServer additionally requires the secrets the HTTP API signs with
func (c *Config) ValidateServer() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret (JWT_SECRET)", ErrMissingSecret)
	}
	if c.Auth.APIMasterSecret == "" {
		return fmt.Errorf("%w: auth.api_master_secret (API_MASTER_SECRET)", ErrMissingSecret)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("%w: auth.bcrypt_cost must be between 4 and 31", ErrInvalidConfig)
	}
	return nil
}
