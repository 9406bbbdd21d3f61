package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"vibin_chats/models"
)

// Tables holds the DynamoDB table names
type Tables struct {
	Chats    string `yaml:"chats"`
	Matches  string `yaml:"matches"`
	Users    string `yaml:"users"`
	Sessions string `yaml:"sessions"`
}

// Config is the runtime configuration of the chat list service
type Config struct {
	Port           string        `yaml:"port"`
	AWSRegion      string        `yaml:"aws_region"`
	S3Bucket       string        `yaml:"s3_bucket"`
	AvatarURLTTL   time.Duration `yaml:"avatar_url_ttl"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	LogLevel       string        `yaml:"log_level"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Tables         Tables        `yaml:"tables"`
}

// DefaultConfig returns the configuration used when nothing is overridden
func DefaultConfig() *Config {
	return &Config{
		Port:           "8080",
		AvatarURLTTL:   5 * time.Minute,
		RequestTimeout: 15 * time.Second,
		LogLevel:       "info",
		AllowedOrigins: []string{"*"},
		Tables: Tables{
			Chats:    models.ChatsTable,
			Matches:  models.MatchesTable,
			Users:    models.UsersTable,
			Sessions: models.SessionsTable,
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the environment.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.S3Bucket = getEnv("S3_BUCKET_NAME", c.S3Bucket)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Tables.Chats = getEnv("CHATS_TABLE", c.Tables.Chats)
	c.Tables.Matches = getEnv("MATCHES_TABLE", c.Tables.Matches)
	c.Tables.Users = getEnv("USERS_TABLE", c.Tables.Users)
	c.Tables.Sessions = getEnv("SESSIONS_TABLE", c.Tables.Sessions)

	if origins, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok && origins != "" {
		c.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, o)
			}
		}
	}
}

// Validate rejects configurations the service cannot start with
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.Tables.Chats == "" || c.Tables.Matches == "" || c.Tables.Users == "" || c.Tables.Sessions == "" {
		return fmt.Errorf("all table names are required")
	}
	if c.AvatarURLTTL <= 0 {
		return fmt.Errorf("avatar_url_ttl must be positive")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists && val != "" {
		return val
	}

	return fallback
}
