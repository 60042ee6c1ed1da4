package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig   `json:"server"`
	Redis    RedisConfig    `json:"redis"`
	Log      LogConfig      `json:"log"`
	Security SecurityConfig `json:"security"`
	Bot      BotConfig      `json:"bot"`
	Popup    PopupConfig    `json:"popup"`
	Worker   WorkerConfig   `json:"worker"`
	Timeouts *TimeoutConfig `json:"timeouts"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         int    `json:"port"`
	Environment  string `json:"environment"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	IdleTimeout  int    `json:"idle_timeout"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled      bool          `json:"enabled"`
	Host         string        `json:"host"`
	Port         int           `json:"port"`
	Password     string        `json:"password"`
	DB           int           `json:"db"`
	PoolSize     int           `json:"pool_size"`
	DialTimeout  time.Duration `json:"dial_timeout"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
	JobTTL       time.Duration `json:"job_ttl"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level         string `json:"level"`
	Format        string `json:"format"`
	Path          string `json:"path"`
	RetentionDays int    `json:"retention_days"`
}

// SecurityConfig holds security configuration
type SecurityConfig struct {
	RateLimit RateLimitConfig `json:"rate_limit"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int           `json:"requests_per_minute"`
	BurstSize         int           `json:"burst_size"`
	CleanupInterval   time.Duration `json:"cleanup_interval"`
}

// BotConfig holds the desktop automation settings
type BotConfig struct {
	AppName        string        `json:"app_name"`
	AppShortcut    string        `json:"app_shortcut"`
	ProcessName    string        `json:"process_name"`
	DocsDir        string        `json:"docs_dir"`
	OutputDir      string        `json:"output_dir"`
	ImageDir       string        `json:"image_dir"`
	DisplayScale   float64       `json:"display_scale"`
	MatchTolerance int           `json:"match_tolerance"`
	Attempts       int           `json:"attempts"`
	AttemptWait    time.Duration `json:"attempt_wait"`
	LoginAttempts  int           `json:"login_attempts"`
}

// PopupConfig holds the submission popup race settings
type PopupConfig struct {
	PollInterval   time.Duration `json:"poll_interval"`
	Confidence     float64       `json:"confidence"`
	ResolveTimeout time.Duration `json:"resolve_timeout"`
	// Fração central da tela onde os popups são procurados; 1 = tela inteira
	SearchArea     float64       `json:"search_area"`
}

// WorkerConfig holds the job queue settings
type WorkerConfig struct {
	Workers   int `json:"workers"`
	QueueSize int `json:"queue_size"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnvAsInt("PORT", 8080),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 30),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvAsInt("IDLE_TIMEOUT", 60),
		},
		Redis: RedisConfig{
			Enabled:      getEnvAsBool("REDIS_ENABLED", true),
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnvAsInt("REDIS_PORT", 6379),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			DialTimeout:  time.Duration(getEnvAsInt("REDIS_DIAL_TIMEOUT", 5)) * time.Second,
			ReadTimeout:  time.Duration(getEnvAsInt("REDIS_READ_TIMEOUT", 3)) * time.Second,
			WriteTimeout: time.Duration(getEnvAsInt("REDIS_WRITE_TIMEOUT", 3)) * time.Second,
			JobTTL:       getEnvAsDuration("JOB_TTL", 24*time.Hour),
		},
		Log: LogConfig{
			Level:         getEnv("LOG_LEVEL", "info"),
			Format:        getEnv("LOG_FORMAT", "text"),
			Path:          getEnv("LOG_PATH", "logs"),
			RetentionDays: getEnvAsInt("LOG_RETENTION_DAYS", 30),
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				RequestsPerMinute: getEnvAsInt("RATE_LIMIT_RPM", 30),
				BurstSize:         getEnvAsInt("RATE_LIMIT_BURST", 5),
				CleanupInterval:   time.Duration(getEnvAsInt("RATE_LIMIT_CLEANUP", 60)) * time.Second,
			},
		},
		Bot: BotConfig{
			AppName:        getEnv("APP_NAME", "Receitanet BX"),
			AppShortcut:    getEnv("APP_SHORTCUT", `C:\ProgramData\Microsoft\Windows\Start Menu\Programs\Programas RFB\Receitanet BX\Receitanet BX 1.9.24.lnk`),
			ProcessName:    getEnv("APP_PROCESS", "javaw.exe"),
			DocsDir:        getEnv("DOCS_DIR", filepath.Join(home, "Documents", "Arquivos ReceitanetBX")),
			OutputDir:      getEnv("OUTPUT_DIR", filepath.Join(home, "ReceitaNet-Bx")),
			ImageDir:       getEnv("IMAGE_DIR", filepath.Join("resources", "images")),
			DisplayScale:   getEnvAsFloat("DISPLAY_SCALE", 1),
			MatchTolerance: getEnvAsInt("MATCH_TOLERANCE", 20000),
			Attempts:       getEnvAsInt("BOT_ATTEMPTS", 3),
			AttemptWait:    getEnvAsDuration("BOT_ATTEMPT_WAIT", 5*time.Second),
			LoginAttempts:  getEnvAsInt("LOGIN_ATTEMPTS", 4),
		},
		Popup: PopupConfig{
			PollInterval:   getEnvAsDuration("POPUP_POLL_INTERVAL", 200*time.Millisecond),
			Confidence:     getEnvAsFloat("POPUP_CONFIDENCE", 0.8),
			ResolveTimeout: getEnvAsDuration("RESOLVE_TIMEOUT", 0),
			SearchArea:     getEnvAsFloat("POPUP_SEARCH_AREA", 0.6),
		},
		Worker: WorkerConfig{
			Workers:   getEnvAsInt("WORKERS", 1),
			QueueSize: getEnvAsInt("QUEUE_SIZE", 50),
		},
		Timeouts: DefaultTimeoutConfig(),
	}
	cfg.Timeouts.DownloadTimeout = getEnvAsDuration("DOWNLOAD_TIMEOUT", cfg.Timeouts.DownloadTimeout)
	cfg.Timeouts.SearchResultTimeout = getEnvAsDuration("SEARCH_RESULT_TIMEOUT", cfg.Timeouts.SearchResultTimeout)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would make the bot misbehave
func (c *Config) Validate() error {
	if c.Bot.Attempts < 1 {
		return fmt.Errorf("BOT_ATTEMPTS must be at least 1, got %d", c.Bot.Attempts)
	}
	if c.Bot.LoginAttempts < 1 {
		return fmt.Errorf("LOGIN_ATTEMPTS must be at least 1, got %d", c.Bot.LoginAttempts)
	}
	if c.Bot.DisplayScale <= 0 {
		return fmt.Errorf("DISPLAY_SCALE must be positive, got %v", c.Bot.DisplayScale)
	}
	if c.Popup.Confidence <= 0 || c.Popup.Confidence > 1 {
		return fmt.Errorf("POPUP_CONFIDENCE must be in (0,1], got %v", c.Popup.Confidence)
	}
	if c.Popup.PollInterval <= 0 {
		return fmt.Errorf("POPUP_POLL_INTERVAL must be positive, got %v", c.Popup.PollInterval)
	}
	if c.Popup.SearchArea <= 0 || c.Popup.SearchArea > 1 {
		return fmt.Errorf("POPUP_SEARCH_AREA must be in (0,1], got %v", c.Popup.SearchArea)
	}
	if c.Popup.ResolveTimeout < 0 {
		return fmt.Errorf("RESOLVE_TIMEOUT cannot be negative, got %v", c.Popup.ResolveTimeout)
	}
	// One screen, one mouse: jobs cannot run side by side.
	if c.Worker.Workers != 1 {
		return fmt.Errorf("WORKERS must be 1 on a single desktop, got %d", c.Worker.Workers)
	}
	if c.Worker.QueueSize < 1 {
		return fmt.Errorf("QUEUE_SIZE must be at least 1, got %d", c.Worker.QueueSize)
	}
	return nil
}

// RedisAddr returns host:port for the Redis client
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("200ms", "5s") or plain seconds
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
