package config

import (
	"os"
	"strconv"
)

type Config struct {
	App    AppConfig
	Logger LoggerConfig
	SQLite SQLiteConfig
	Export ExportConfig
}

type AppConfig struct {
	AppEnv string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type SQLiteConfig struct {
	Path          string
	BusyTimeoutMS int
	MaxOpenConns  int
}

type ExportConfig struct {
	Format          string // docx or pdf
	OutputDir       string
	ChromePath      string
	DefaultCustomer string
	TimeoutSeconds  int
}

func LoadEnv() *Config {
	return &Config{
		App: AppConfig{
			AppEnv: getEnv("APP_ENV", "production"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		SQLite: SQLiteConfig{
			Path:          getEnv("SQLITE_PATH", "inventory.db"),
			BusyTimeoutMS: getEnvInt("SQLITE_BUSY_TIMEOUT_MS", 5000),
			MaxOpenConns:  getEnvInt("SQLITE_MAX_OPEN_CONNS", 1),
		},
		Export: ExportConfig{
			Format:          getEnv("EXPORT_FORMAT", "docx"),
			OutputDir:       getEnv("EXPORT_OUTPUT_DIR", "."),
			ChromePath:      getEnv("EXPORT_CHROME_PATH", ""),
			DefaultCustomer: getEnv("EXPORT_DEFAULT_CUSTOMER", "السيد المحترم"),
			TimeoutSeconds:  getEnvInt("EXPORT_TIMEOUT_SECONDS", 30),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
