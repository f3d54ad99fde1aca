package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverREST     = "rest"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

const (
	defaultEnv           = EnvLocal
	defaultLogLevel      = "info"
	defaultBucket        = "ar-assets"
	defaultTable         = "targets"
	defaultSessionKey    = "usuario"
	defaultConfigDir     = ".artargets"
	defaultViewerAddress = "localhost:8081"
	defaultS3Region      = "us-east-1"
)

type Config struct {
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	// Хостинг: база для REST, storage и auth
	SupabaseURL     string `mapstructure:"supabase_url"`
	SupabaseAnonKey string `mapstructure:"supabase_anon_key"`
	Bucket          string `mapstructure:"storage_bucket"`
	Table           string `mapstructure:"targets_table"`

	// Локальное состояние
	ConfigDir   string `mapstructure:"config_dir"`
	SessionPath string `mapstructure:"session_path"`
	SessionKey  string `mapstructure:"session_key"`

	// Альтернативные бэкенды
	RecordDriver string `mapstructure:"record_driver"`
	DatabaseURI  string `mapstructure:"database_uri"`
	ObjectDriver string `mapstructure:"object_driver"`
	S3Endpoint   string `mapstructure:"s3_endpoint"`
	S3Region     string `mapstructure:"s3_region"`
	S3AccessKey  string `mapstructure:"s3_access_key"`
	S3SecretKey  string `mapstructure:"s3_secret_key"`

	HTTPTimeout   time.Duration `mapstructure:"http_timeout"`
	ViewerAddress string        `mapstructure:"viewer_address"`
}

// MustLoad загружает конфигурацию клиента
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("Ошибка конфигурации: %v", err))
	}
	return cfg
}

// Load читает .env, переменные окружения и конфиг viper.
func Load() (*Config, error) {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("STORAGE_BUCKET", defaultBucket)
	viper.SetDefault("TARGETS_TABLE", defaultTable)
	viper.SetDefault("SESSION_KEY", defaultSessionKey)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("RECORD_DRIVER", DriverREST)
	viper.SetDefault("OBJECT_DRIVER", DriverREST)
	viper.SetDefault("S3_REGION", defaultS3Region)
	viper.SetDefault("HTTP_TIMEOUT", "0s")
	viper.SetDefault("VIEWER_ADDRESS", defaultViewerAddress)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("создание директории конфигурации: %w", err)
	}

	sessionPath := viper.GetString("SESSION_PATH")
	if sessionPath == "" {
		sessionPath = filepath.Join(configDir, "session.db")
	}

	cfg := &Config{
		Env:             viper.GetString("APP_ENV"),
		LogLevel:        viper.GetString("LOG_LEVEL"),
		SupabaseURL:     strings.TrimRight(viper.GetString("SUPABASE_URL"), "/"),
		SupabaseAnonKey: viper.GetString("SUPABASE_ANON_KEY"),
		Bucket:          viper.GetString("STORAGE_BUCKET"),
		Table:           viper.GetString("TARGETS_TABLE"),
		ConfigDir:       configDir,
		SessionPath:     sessionPath,
		SessionKey:      viper.GetString("SESSION_KEY"),
		RecordDriver:    viper.GetString("RECORD_DRIVER"),
		DatabaseURI:     viper.GetString("DATABASE_URI"),
		ObjectDriver:    viper.GetString("OBJECT_DRIVER"),
		S3Endpoint:      viper.GetString("S3_ENDPOINT"),
		S3Region:        viper.GetString("S3_REGION"),
		S3AccessKey:     viper.GetString("S3_ACCESS_KEY"),
		S3SecretKey:     viper.GetString("S3_SECRET_KEY"),
		HTTPTimeout:     viper.GetDuration("HTTP_TIMEOUT"),
		ViewerAddress:   viper.GetString("VIEWER_ADDRESS"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры и допустимые драйверы.
func (c *Config) Validate() error {
	if c.SupabaseURL == "" {
		return fmt.Errorf("supabase_url не может быть пустым")
	}
	if c.SupabaseAnonKey == "" {
		return fmt.Errorf("supabase_anon_key не может быть пустым")
	}
	if c.Bucket == "" {
		return fmt.Errorf("storage_bucket не может быть пустым")
	}
	if c.SessionKey == "" {
		return fmt.Errorf("session_key не может быть пустым")
	}

	switch c.RecordDriver {
	case DriverREST:
	case DriverPostgres:
		if c.DatabaseURI == "" {
			return fmt.Errorf("database_uri обязателен для record_driver=%s", DriverPostgres)
		}
		// миграции создают только таблицу по умолчанию
		if c.Table != "" && c.Table != defaultTable {
			return fmt.Errorf("targets_table=%s не поддерживается для record_driver=%s", c.Table, DriverPostgres)
		}
	default:
		return fmt.Errorf("неизвестный record_driver: %s", c.RecordDriver)
	}

	switch c.ObjectDriver {
	case DriverREST:
	case DriverS3:
		if c.S3Endpoint == "" {
			return fmt.Errorf("s3_endpoint обязателен для object_driver=%s", DriverS3)
		}
	default:
		return fmt.Errorf("неизвестный object_driver: %s", c.ObjectDriver)
	}

	return nil
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
