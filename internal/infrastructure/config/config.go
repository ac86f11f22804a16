// Package config loads the service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting. Keys map 1:1 to environment variables
// (HTTP_PORT, APPLICATIONS_TABLE, ...).
type Config struct {
	HTTPPort int `mapstructure:"http_port"`

	AWSRegion          string `mapstructure:"aws_region"`
	AWSAccessKeyID     string `mapstructure:"aws_access_key_id"`
	AWSSecretAccessKey string `mapstructure:"aws_secret_access_key"`
	DynamoDBEndpoint   string `mapstructure:"dynamodb_endpoint"`
	ApplicationsTable  string `mapstructure:"applications_table"`
	DocumentsTable     string `mapstructure:"documents_table"`

	S3Endpoint       string        `mapstructure:"s3_endpoint"`
	S3AccessKey      string        `mapstructure:"s3_access_key"`
	S3SecretKey      string        `mapstructure:"s3_secret_key"`
	S3UseSSL         bool          `mapstructure:"s3_use_ssl"`
	S3Region         string        `mapstructure:"s3_region"`
	DocumentsBucket  string        `mapstructure:"documents_bucket"`
	SignaturesBucket string        `mapstructure:"signatures_bucket"`
	PublicURLTTL     time.Duration `mapstructure:"public_url_ttl"`
	MaxUploadBytes   int64         `mapstructure:"max_upload_bytes"`

	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	ActionLockTTL time.Duration `mapstructure:"action_lock_ttl"`

	NotificationsEnabled bool   `mapstructure:"notifications_enabled"`
	SESSender            string `mapstructure:"ses_sender"`
	SNSTopicARN          string `mapstructure:"sns_topic_arn"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

var defaults = map[string]any{
	"http_port":             8080,
	"aws_region":            "eu-west-3",
	"aws_access_key_id":     "local",
	"aws_secret_access_key": "local",
	"dynamodb_endpoint":     "",
	"applications_table":    "project_applications",
	"documents_table":       "user_documents",
	"s3_endpoint":           "localhost:9000",
	"s3_access_key":         "minioadmin",
	"s3_secret_key":         "minioadmin",
	"s3_use_ssl":            false,
	"s3_region":             "eu-west-3",
	"documents_bucket":      "documents",
	"signatures_bucket":     "signatures",
	"public_url_ttl":        "15m",
	"max_upload_bytes":      10 << 20, // 10 MiB
	"redis_addr":            "localhost:6379",
	"redis_password":        "",
	"action_lock_ttl":       "2m",
	"notifications_enabled": false,
	"ses_sender":            "",
	"sns_topic_arn":         "",
	"log_level":             "info",
	"log_format":            "json",
}

// Load reads the environment on top of the defaults. The .env file, when
// present, is loaded by the godotenv autoload import in main.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	for k, def := range defaults {
		v.SetDefault(k, def)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("http_port out of range: %d", c.HTTPPort))
	}
	if c.ApplicationsTable == "" || c.DocumentsTable == "" {
		errs = append(errs, errors.New("table names must not be empty"))
	}
	if c.DocumentsBucket == "" || c.SignaturesBucket == "" {
		errs = append(errs, errors.New("bucket names must not be empty"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_upload_bytes must be positive: %d", c.MaxUploadBytes))
	}
	if c.ActionLockTTL <= 0 {
		errs = append(errs, fmt.Errorf("action_lock_ttl must be positive: %s", c.ActionLockTTL))
	}
	if c.NotificationsEnabled && c.SESSender == "" && c.SNSTopicARN == "" {
		errs = append(errs, errors.New("notifications enabled but neither ses_sender nor sns_topic_arn is set"))
	}
	return errors.Join(errs...)
}
