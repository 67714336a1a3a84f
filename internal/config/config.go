package config

import (
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	JWT      JWTConfig
	Rewards  RewardsConfig
	Redis    RedisConfig
	Storage  StorageConfig
	LogLevel string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int
}

// RewardsConfig holds the reward policy split constants. These feed the
// rewards.Policy passed into the reward rules; nothing else reads them.
type RewardsConfig struct {
	PlacementSharePercent float64
	ExpectedKillFactor    float64
	BudgetEpsilon         float64
}

// RedisConfig holds the rate-limiter Redis connection. An empty Addr
// disables rate limiting (fail-open).
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StorageConfig holds the Cloudflare R2 (S3-compatible) bucket used for
// result screenshots.
type StorageConfig struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
}

// LoadConfig loads configuration from config files and environment variables
func LoadConfig(path string) (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; environment variables cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Secrets come from the environment when set, so a committed config file
	// never has to carry them.
	config.MongoDB.URI = GetEnv("MONGODB_URI", config.MongoDB.URI)
	config.JWT.Secret = GetEnv("JWT_SECRET", config.JWT.Secret)
	config.Storage.SecretAccessKey = GetEnv("R2_SECRET_ACCESS_KEY", config.Storage.SecretAccessKey)

	return &config, nil
}

// setDefaults sets default values for configuration
func setDefaults() {
	viper.SetDefault("Server.Port", "4000")
	viper.SetDefault("Server.AllowedHosts", []string{"localhost:3000"})
	viper.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	viper.SetDefault("MongoDB.Database", "battlekash")
	viper.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	viper.SetDefault("LogLevel", "info")
	viper.SetDefault("Rewards.PlacementSharePercent", 10.0)
	viper.SetDefault("Rewards.ExpectedKillFactor", 0.8)
	viper.SetDefault("Rewards.BudgetEpsilon", 0.01)
	viper.SetDefault("Redis.Addr", "")
	viper.SetDefault("Redis.DB", 0)
}
