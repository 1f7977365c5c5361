package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName     string        `mapstructure:"service_name"`
	Env             string        `mapstructure:"env"`
	Port            int           `mapstructure:"port"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Database        Database      `mapstructure:"database"`
	AWS             AWS           `mapstructure:"aws"`
	Purchase        Downstream    `mapstructure:"purchase"`
	Transport       Downstream    `mapstructure:"transport"`
	Telemetry       Telemetry     `mapstructure:"telemetry"`
	Reconciler      Reconciler    `mapstructure:"reconciler"`
}

type Database struct {
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	EnsureSchema    bool          `mapstructure:"ensure_schema"`
}

type AWS struct {
	AccessKeyID          string `mapstructure:"access_key_id"`
	SecretAccessKey      string `mapstructure:"secret_access_key"`
	Region               string `mapstructure:"region"`
	EndpointSNS          string `mapstructure:"endpoint_sns"`
	EndpointSQS          string `mapstructure:"endpoint_sqs"`
	SNSTopicArn          string `mapstructure:"sns_topic_arn"`
	SQSQueueURL          string `mapstructure:"sqs_queue_url"`
	SQSWorkers           int32  `mapstructure:"sqs_workers"`
	SQSReaders           int32  `mapstructure:"sqs_readers"`
	SQSVisibilityTimeout int32  `mapstructure:"sqs_visibility_timeout"`
}

// Downstream configures one of the purchase or transport APIs
type Downstream struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
}

type Telemetry struct {
	Enabled        bool   `mapstructure:"enabled"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	ServiceVersion string `mapstructure:"service_version"`
}

// Reconciler drives the sweep over unresolved assignment attempts
type Reconciler struct {
	Enabled   bool          `mapstructure:"enabled"`
	Interval  time.Duration `mapstructure:"interval"`
	OlderThan time.Duration `mapstructure:"older_than"`
	BatchSize int           `mapstructure:"batch_size"`
}

// ReadConfig loads configuration in order: defaults, the JSON file named by
// ENVIRONMENT, .env and OFFER_* environment variables, then command line flags.
func ReadConfig(args []string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, errors.Wrap(err, "error loading .env")
	}

	flags := pflag.NewFlagSet("offers-service", pflag.ContinueOnError)
	flags.IntP("port", "p", 0, "port to listen on")
	flags.String("config-dir", "", "directory holding <environment>.json")
	flags.String("log-level", "", "debug, info, warn or error")
	if err := flags.Parse(args); err != nil {
		return nil, errors.Wrap(err, "error parsing flags")
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName(getConfigName())
	v.SetConfigType("json")
	configDir, _ := flags.GetString("config-dir")
	if configDir == "" {
		configDir = defaultConfigDir()
	}
	v.AddConfigPath(configDir)

	// Allow environment variables to override config
	v.SetEnvPrefix("OFFER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	if flags.Changed("port") {
		port, _ := flags.GetInt("port")
		v.Set("port", port)
	}
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		v.Set("log_level", level)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate rejects settings the service cannot start with
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid port: %d", c.Port)
	}
	if c.Purchase.BaseURL == "" {
		return errors.New("purchase.base_url is required")
	}
	if c.Transport.BaseURL == "" {
		return errors.New("transport.base_url is required")
	}
	if c.Reconciler.Enabled && c.Reconciler.Interval <= 0 {
		return errors.New("reconciler.interval must be positive")
	}
	return nil
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetDatabaseURL constructs database URL from config
func (c *Config) GetDatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

func getConfigName() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "local"
	}
	return env
}

func defaultConfigDir() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "."
	}
	return filepath.Dir(filename)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service_name", "offers-service")
	v.SetDefault("env", "local")
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("shutdown_timeout", 30*time.Second)

	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "offers")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.ensure_schema", false)

	v.SetDefault("aws.access_key_id", "")
	v.SetDefault("aws.secret_access_key", "")
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.endpoint_sns", "")
	v.SetDefault("aws.endpoint_sqs", "")
	v.SetDefault("aws.sns_topic_arn", "arn:aws:sns:us-east-1:000000000000:offer-events")
	v.SetDefault("aws.sqs_queue_url", "http://localhost:4566/000000000000/offer-commands")
	v.SetDefault("aws.sqs_workers", 4)
	v.SetDefault("aws.sqs_readers", 1)
	v.SetDefault("aws.sqs_visibility_timeout", 60)

	v.SetDefault("purchase.base_url", "http://localhost:8081")
	v.SetDefault("purchase.timeout", 10*time.Second)
	v.SetDefault("purchase.rate_per_second", 0)
	v.SetDefault("purchase.burst", 1)
	v.SetDefault("transport.base_url", "http://localhost:8082")
	v.SetDefault("transport.timeout", 10*time.Second)
	v.SetDefault("transport.rate_per_second", 0)
	v.SetDefault("transport.burst", 1)

	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.service_version", "1.0.0")

	v.SetDefault("reconciler.enabled", true)
	v.SetDefault("reconciler.interval", time.Minute)
	v.SetDefault("reconciler.older_than", 5*time.Minute)
	v.SetDefault("reconciler.batch_size", 100)
}
