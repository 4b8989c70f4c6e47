package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// Preference store backends
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMySQL  = "mysql"
	BackendINI    = "ini"
)

// Config holds all configuration
type Config struct {
	HTTPAddr    string
	API         APIConfig
	Refresh     RefreshConfig
	Thresholds  ThresholdsConfig
	Preferences PreferencesConfig
	MySQL       MySQLConfig
	Redis       RedisConfig
	Log         LogConfig
	Migrate     bool
	DisplayTZ   string
}

// APIConfig holds the upstream status API configuration
type APIConfig struct {
	URL        string
	TimeoutSec int // 0 means no timeout
}

// RefreshConfig holds refresh scheduler configuration
type RefreshConfig struct {
	IntervalMs int
}

// ThresholdsConfig holds severity thresholds in days
type ThresholdsConfig struct {
	Red    int
	Yellow int
}

// PreferencesConfig selects where display preferences are persisted
type PreferencesConfig struct {
	Backend string
	INIPath string
}

// MySQLConfig holds MySQL configuration
type MySQLConfig struct {
	DSN string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
	File   string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		API: APIConfig{
			URL:        getEnv("API_URL", "http://localhost:8088"),
			TimeoutSec: getEnvInt("API_TIMEOUT_SEC", 0),
		},
		Refresh: RefreshConfig{
			IntervalMs: getEnvInt("REFRESH_INTERVAL_MS", 3600000),
		},
		Thresholds: ThresholdsConfig{
			Red:    getEnvInt("THRESHOLD_RED", 90),
			Yellow: getEnvInt("THRESHOLD_YELLOW", 184),
		},
		Preferences: PreferencesConfig{
			Backend: getEnv("PREFS_BACKEND", BackendMemory),
			INIPath: getEnv("PREFS_INI_PATH", "preferences.ini"),
		},
		MySQL: MySQLConfig{
			DSN: getEnv("MYSQL_DSN", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASS", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
			File:   getEnv("LOG_FILE", ""),
		},
		Migrate:   getEnv("MIGRATE", "0") == "1",
		DisplayTZ: getEnv("DISPLAY_TZ", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromINI loads configuration from INI file with environment variable override
func LoadFromINI(iniPath string) (*Config, error) {
	cfgFile, err := ini.Load(iniPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load INI file: %w", err)
	}

	// Priority: ENV > INI > default
	getValue := func(envKey, iniSection, iniKey, defaultValue string) string {
		if value := os.Getenv(envKey); value != "" {
			return value
		}
		if value := cfgFile.Section(iniSection).Key(iniKey).String(); value != "" {
			return value
		}
		return defaultValue
	}

	getValueInt := func(envKey, iniSection, iniKey string, defaultValue int) int {
		if value := os.Getenv(envKey); value != "" {
			if intValue, err := strconv.Atoi(value); err == nil {
				return intValue
			}
		}
		if cfgFile.Section(iniSection).HasKey(iniKey) {
			if value, err := cfgFile.Section(iniSection).Key(iniKey).Int(); err == nil {
				return value
			}
		}
		return defaultValue
	}

	getValueBool := func(envKey, iniSection, iniKey string, defaultValue bool) bool {
		if value := os.Getenv(envKey); value != "" {
			return value == "1" || value == "true"
		}
		if value, err := cfgFile.Section(iniSection).Key(iniKey).Bool(); err == nil {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		HTTPAddr: getValue("HTTP_ADDR", "http", "addr", ":8080"),
		API: APIConfig{
			URL:        getValue("API_URL", "api", "url", "http://localhost:8088"),
			TimeoutSec: getValueInt("API_TIMEOUT_SEC", "api", "timeout_sec", 0),
		},
		Refresh: RefreshConfig{
			IntervalMs: getValueInt("REFRESH_INTERVAL_MS", "refresh", "interval_ms", 3600000),
		},
		Thresholds: ThresholdsConfig{
			Red:    getValueInt("THRESHOLD_RED", "thresholds", "red", 90),
			Yellow: getValueInt("THRESHOLD_YELLOW", "thresholds", "yellow", 184),
		},
		Preferences: PreferencesConfig{
			Backend: getValue("PREFS_BACKEND", "preferences", "backend", BackendMemory),
			INIPath: getValue("PREFS_INI_PATH", "preferences", "ini_path", "preferences.ini"),
		},
		MySQL: MySQLConfig{
			DSN: getValue("MYSQL_DSN", "mysql", "dsn", ""),
		},
		Redis: RedisConfig{
			Addr:     getValue("REDIS_ADDR", "redis", "addr", "localhost:6379"),
			Password: getValue("REDIS_PASS", "redis", "pass", ""),
			DB:       getValueInt("REDIS_DB", "redis", "db", 0),
		},
		Log: LogConfig{
			Level:  getValue("LOG_LEVEL", "log", "level", "info"),
			Format: getValue("LOG_FORMAT", "log", "format", "text"),
			File:   getValue("LOG_FILE", "log", "file", ""),
		},
		Migrate:   getValueBool("MIGRATE", "app", "migrate", false),
		DisplayTZ: getValue("DISPLAY_TZ", "app", "display_tz", ""),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field consistency
func (c *Config) Validate() error {
	c.API.URL = strings.TrimRight(strings.TrimSpace(c.API.URL), "/")
	if c.API.URL == "" {
		return fmt.Errorf("API_URL is required")
	}
	if c.Refresh.IntervalMs <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL_MS must be positive, got %d", c.Refresh.IntervalMs)
	}
	if c.API.TimeoutSec < 0 {
		return fmt.Errorf("API_TIMEOUT_SEC must not be negative, got %d", c.API.TimeoutSec)
	}
	if c.Thresholds.Red > c.Thresholds.Yellow {
		return fmt.Errorf("THRESHOLD_RED (%d) must not exceed THRESHOLD_YELLOW (%d)",
			c.Thresholds.Red, c.Thresholds.Yellow)
	}

	switch c.Preferences.Backend {
	case BackendMemory, BackendRedis:
	case BackendMySQL:
		if c.MySQL.DSN == "" {
			return fmt.Errorf("MYSQL_DSN is required when PREFS_BACKEND=mysql")
		}
	case BackendINI:
		if c.Preferences.INIPath == "" {
			return fmt.Errorf("PREFS_INI_PATH is required when PREFS_BACKEND=ini")
		}
	default:
		return fmt.Errorf("unknown PREFS_BACKEND %q", c.Preferences.Backend)
	}
	return nil
}

// Location returns the display time zone; empty means the process local zone
func (c *Config) Location() (*time.Location, error) {
	if c.DisplayTZ == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.DisplayTZ)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TZ %q: %w", c.DisplayTZ, err)
	}
	return loc, nil
}

// Interval returns the refresh interval as a duration
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Refresh.IntervalMs) * time.Millisecond
}

// APITimeout returns the status request timeout; 0 means none
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.TimeoutSec) * time.Second
}

// LoadAuto loads from the INI file named by CONFIG_FILE, or from the environment
func LoadAuto() (*Config, error) {
	_ = godotenv.Load()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		return LoadFromINI(path)
	}
	return Load()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
