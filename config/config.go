package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// Warehouse kinds accepted in WAREHOUSE.
const (
	WarehouseBigQuery = "bigquery"
	WarehousePostgres = "postgres"
	WarehouseCSV      = "csv"
)

// maxPageSize is the largest page the most-popular chart returns.
const maxPageSize = 50

// Config holds all application configuration loaded from environment variables.
type Config struct {
	YouTubeAPIKey   string
	YouTubeEndpoint string
	RegionCode      string
	MaxResults      int
	APIRateLimitMs  int
	ChannelCache    bool
	CategoryFile    string

	Warehouse string

	BigQueryProject         string
	BigQueryDataset         string
	BigQueryTable           string
	BigQueryCredentialsFile string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	PostgresTable    string

	CSVOutputPath string

	MaxRetries int
	RetryDelay time.Duration

	LogFile  string
	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		YouTubeAPIKey:   getEnv("YOUTUBE_API_KEY", ""),
		YouTubeEndpoint: getEnv("YOUTUBE_ENDPOINT", ""),
		RegionCode:      getEnv("YOUTUBE_REGION", ""),
		MaxResults:      getEnvInt("MAX_RESULTS", 50),
		APIRateLimitMs:  getEnvInt("API_RATE_LIMIT_MS", 0),
		ChannelCache:    getEnvBool("CHANNEL_CACHE", true),
		CategoryFile:    getEnv("CATEGORY_FILE", ""),

		Warehouse: strings.ToLower(getEnv("WAREHOUSE", WarehouseBigQuery)),

		BigQueryProject:         getEnv("BQ_PROJECT", ""),
		BigQueryDataset:         getEnv("BQ_DATASET", ""),
		BigQueryTable:           getEnv("BQ_TABLE", ""),
		BigQueryCredentialsFile: getEnv("BQ_CREDENTIALS_FILE", ""),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "ytstats"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "ytstats"),
		PostgresDB:       getEnv("POSTGRES_DB", "ytstats"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PostgresTable:    getEnv("POSTGRES_TABLE", "video_stats"),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/video_stats.csv"),

		MaxRetries: getEnvInt("MAX_RETRIES", 2),
		RetryDelay: getEnvDuration("RETRY_DELAY", 2*time.Minute),

		LogFile:  getEnv("LOG_FILE", ""),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate reports the first setting that prevents a run.
func (c *Config) Validate() error {
	if c.YouTubeAPIKey == "" {
		return errors.New("YOUTUBE_API_KEY is required")
	}
	if c.MaxResults < 1 || c.MaxResults > maxPageSize {
		return errors.Errorf("MAX_RESULTS must be between 1 and %d, got %d", maxPageSize, c.MaxResults)
	}
	if c.APIRateLimitMs < 0 {
		return errors.New("API_RATE_LIMIT_MS must not be negative")
	}
	if c.MaxRetries < 0 {
		return errors.New("MAX_RETRIES must not be negative")
	}

	switch c.Warehouse {
	case WarehouseBigQuery:
		if c.BigQueryProject == "" || c.BigQueryDataset == "" {
			return errors.New("BQ_PROJECT and BQ_DATASET are required for the bigquery warehouse")
		}
	case WarehousePostgres:
		if c.PostgresTable == "" {
			return errors.New("POSTGRES_TABLE is required for the postgres warehouse")
		}
	case WarehouseCSV:
		if c.CSVOutputPath == "" {
			return errors.New("CSV_OUTPUT_PATH is required for the csv warehouse")
		}
	default:
		return errors.Errorf("unknown WAREHOUSE %q", c.Warehouse)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}
