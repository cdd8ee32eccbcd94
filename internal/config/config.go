package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Sheets   SheetsConfig
	Cache    CacheConfig
	Storage  StorageConfig
	Report   ReportConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// SheetsConfig points at the legacy Google Sheets datastore the shop
// front-end used to talk to. The sync job pulls snapshots from it.
type SheetsConfig struct {
	CredentialsJSON string
	SpreadsheetID   string
	SalesRange      string
	ExpensesRange   string
	ProductsRange   string
	SyncInterval    int // seconds between snapshot pulls
}

type CacheConfig struct {
	Enabled          bool
	RedisURL         string
	RedisHost        string
	RedisPort        string
	RedisPassword    string
	RedisDB          int
	ReportTTLSeconds int
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// ReportConfig carries the tunables the old UI kept in browser
// localStorage: currency label, low-stock threshold, timezone and the
// trailing window used by the movement classifier.
type ReportConfig struct {
	Currency          string
	LowStockThreshold int
	Timezone          string
	MovementWindow    int // days
	TopN              int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "pos")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("SHEETS_CREDENTIALS_JSON", "")
		viper.SetDefault("SHEETS_SPREADSHEET_ID", "")
		viper.SetDefault("SHEETS_SALES_RANGE", "Sales!A2:J")
		viper.SetDefault("SHEETS_EXPENSES_RANGE", "Expenses!A2:H")
		viper.SetDefault("SHEETS_PRODUCTS_RANGE", "Products!A2:L")
		viper.SetDefault("SHEETS_SYNC_INTERVAL_SECONDS", 60)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_REPORT_TTL_SECONDS", 60)
		viper.SetDefault("STORAGE_ENABLED", false)
		viper.SetDefault("STORAGE_ENDPOINT", "")
		viper.SetDefault("STORAGE_ACCESS_KEY", "")
		viper.SetDefault("STORAGE_SECRET_KEY", "")
		viper.SetDefault("STORAGE_BUCKET", "pos-exports")
		viper.SetDefault("STORAGE_USE_SSL", true)
		viper.SetDefault("REPORT_CURRENCY", "KSH")
		viper.SetDefault("REPORT_LOW_STOCK_THRESHOLD", 10)
		viper.SetDefault("REPORT_TIMEZONE", "Africa/Nairobi")
		viper.SetDefault("REPORT_MOVEMENT_WINDOW_DAYS", 30)
		viper.SetDefault("REPORT_TOP_N", 10)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Sheets: SheetsConfig{
				CredentialsJSON: viper.GetString("SHEETS_CREDENTIALS_JSON"),
				SpreadsheetID:   viper.GetString("SHEETS_SPREADSHEET_ID"),
				SalesRange:      viper.GetString("SHEETS_SALES_RANGE"),
				ExpensesRange:   viper.GetString("SHEETS_EXPENSES_RANGE"),
				ProductsRange:   viper.GetString("SHEETS_PRODUCTS_RANGE"),
				SyncInterval:    viper.GetInt("SHEETS_SYNC_INTERVAL_SECONDS"),
			},
			Cache: CacheConfig{
				Enabled:          viper.GetBool("CACHE_ENABLED"),
				RedisURL:         viper.GetString("REDIS_URL"),
				RedisHost:        viper.GetString("REDIS_HOST"),
				RedisPort:        viper.GetString("REDIS_PORT"),
				RedisPassword:    viper.GetString("REDIS_PASSWORD"),
				RedisDB:          viper.GetInt("REDIS_DB"),
				ReportTTLSeconds: viper.GetInt("CACHE_REPORT_TTL_SECONDS"),
			},
			Storage: StorageConfig{
				Enabled:   viper.GetBool("STORAGE_ENABLED"),
				Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
				AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
				SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
				Bucket:    viper.GetString("STORAGE_BUCKET"),
				UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			},
			Report: ReportConfig{
				Currency:          viper.GetString("REPORT_CURRENCY"),
				LowStockThreshold: viper.GetInt("REPORT_LOW_STOCK_THRESHOLD"),
				Timezone:          viper.GetString("REPORT_TIMEZONE"),
				MovementWindow:    viper.GetInt("REPORT_MOVEMENT_WINDOW_DAYS"),
				TopN:              viper.GetInt("REPORT_TOP_N"),
			},
		}
	})

	return instance
}
