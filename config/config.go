package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"cloudnest/models"
)

type Config struct {
	// Server Configuration
	Port        string
	Environment string
	Debug       bool

	// Database Configuration
	MongoURI string
	DBName   string

	// JWT Configuration
	JWTSecret      string
	AccessTokenTTL time.Duration

	// Storage Configuration
	StorageProvider string
	StorageRegion   string
	StorageEndpoint string
	StorageBucket   string
	StorageAccess   string
	StorageSecret   string
	StorageCDNUrl   string
	UploadPath      string
	MaxUploadSize   int64

	// Security Configuration
	CORSAllowedOrigins []string

	// Application Configuration
	AppName    string
	AppVersion string
}

var AppConfig *Config

// LoadConfig loads configuration through viper, environment variables
// taking precedence over defaults.
func LoadConfig() *Config {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("environment", "development")
	v.SetDefault("debug", true)

	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("db_name", "cloudnest")

	v.SetDefault("jwt_secret", "your-secret-key")
	v.SetDefault("access_token_ttl", "24h")

	v.SetDefault("storage_provider", "local")
	v.SetDefault("storage_region", "us-east-1")
	v.SetDefault("storage_endpoint", "")
	v.SetDefault("storage_bucket", "cloudnest")
	v.SetDefault("storage_access_key", "")
	v.SetDefault("storage_secret_key", "")
	v.SetDefault("storage_cdn_url", "")
	v.SetDefault("upload_path", "./uploads")
	v.SetDefault("max_upload_size", int64(104857600)) // 100MB

	v.SetDefault("cors_allowed_origins", []string{
		"http://localhost:3000",
		"http://localhost:8080",
	})

	v.SetDefault("app_name", "cloudnest")
	v.SetDefault("app_version", "1.0.0")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logrus.WithError(err).Warn("config file unreadable, continuing with env and defaults")
		}
	}

	v.AutomaticEnv()

	config := &Config{
		Port:        v.GetString("port"),
		Environment: v.GetString("environment"),
		Debug:       v.GetBool("debug"),

		MongoURI: v.GetString("mongo_uri"),
		DBName:   v.GetString("db_name"),

		JWTSecret:      v.GetString("jwt_secret"),
		AccessTokenTTL: v.GetDuration("access_token_ttl"),

		StorageProvider: v.GetString("storage_provider"),
		StorageRegion:   v.GetString("storage_region"),
		StorageEndpoint: v.GetString("storage_endpoint"),
		StorageBucket:   v.GetString("storage_bucket"),
		StorageAccess:   v.GetString("storage_access_key"),
		StorageSecret:   v.GetString("storage_secret_key"),
		StorageCDNUrl:   v.GetString("storage_cdn_url"),
		UploadPath:      v.GetString("upload_path"),
		MaxUploadSize:   v.GetInt64("max_upload_size"),

		CORSAllowedOrigins: v.GetStringSlice("cors_allowed_origins"),

		AppName:    v.GetString("app_name"),
		AppVersion: v.GetString("app_version"),
	}

	AppConfig = config

	if config.Debug {
		logrus.WithFields(logrus.Fields{
			"environment": config.Environment,
			"port":        config.Port,
			"database":    config.DBName,
			"storage":     config.StorageProvider,
		}).Info("configuration loaded")
	}

	return config
}

// Provider returns the remote storage provider settings.
func (c *Config) Provider() *models.StorageProvider {
	return &models.StorageProvider{
		Name:      c.AppName,
		Type:      c.StorageProvider,
		Region:    c.StorageRegion,
		Endpoint:  c.StorageEndpoint,
		Bucket:    c.StorageBucket,
		AccessKey: c.StorageAccess,
		SecretKey: c.StorageSecret,
		CDNUrl:    c.StorageCDNUrl,
		BasePath:  c.UploadPath,
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetServerAddress returns the server address for listening
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// ValidateConfig validates the configuration
func (c *Config) ValidateConfig() error {
	if c.MongoURI == "" {
		return fmt.Errorf("mongo_uri is required")
	}

	if c.JWTSecret == "your-secret-key" && c.IsProduction() {
		return fmt.Errorf("jwt_secret must be changed in production")
	}

	if c.StorageProvider == "local" {
		if err := os.MkdirAll(c.UploadPath, 0755); err != nil {
			return fmt.Errorf("could not create upload directory %s: %v", c.UploadPath, err)
		}
	}

	return nil
}
