package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config application-wide configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Mail     MailConfig     `mapstructure:"mail"`
	Log      LogConfig      `mapstructure:"log"`
	Rental   RentalConfig   `mapstructure:"rental"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
	Feature  FeatureConfig  `mapstructure:"feature"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	BaseURL      string     `mapstructure:"base_url"`
	MaxBodyBytes int64      `mapstructure:"max_body_bytes"`
	CORS         CORSConfig `mapstructure:"cors"`
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL settings
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // minutes
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // minutes
}

// DSN builds the PostgreSQL connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig cache settings
type RedisConfig struct {
	Addr       string        `mapstructure:"addr"`
	Password   string        `mapstructure:"password"`
	DB         int           `mapstructure:"db"`
	ContentTTL time.Duration `mapstructure:"content_ttl"`
}

// AuthConfig JWT settings
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
	Issuer         string        `mapstructure:"issuer"`
}

// StorageConfig S3-compatible blob store settings
type StorageConfig struct {
	Endpoint      string `mapstructure:"endpoint"` // empty = AWS default resolver
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	UsePathStyle  bool   `mapstructure:"use_path_style"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	ImageWidth    uint   `mapstructure:"image_width"`
	MaxUploadSize int64  `mapstructure:"max_upload_size"`
}

// MailConfig transactional email settings
type MailConfig struct {
	Provider string `mapstructure:"provider"` // smtp | ses | none
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
}

// LogConfig logging settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RentalConfig booking rules
type RentalConfig struct {
	DefaultBufferDays int           `mapstructure:"default_buffer_days"`
	BufferDebounce    time.Duration `mapstructure:"buffer_debounce"`
	PickupLocation    string        `mapstructure:"pickup_location"`
}

// JobsConfig background job settings
type JobsConfig struct {
	OrphanSweepInterval time.Duration `mapstructure:"orphan_sweep_interval"`
	OrphanGracePeriod   time.Duration `mapstructure:"orphan_grace_period"`
}

// FeatureConfig feature switches
type FeatureConfig struct {
	NotifyOnStatusChange bool `mapstructure:"notify_on_status_change"`
	OrphanSweepEnabled   bool `mapstructure:"orphan_sweep_enabled"`
}

// Load reads configuration from file and environment.
// Precedence: environment > config file > defaults
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── defaults ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.max_body_bytes", 12<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "dress_for_success")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.content_ttl", "10m")

	v.SetDefault("auth.access_token_ttl", "12h")
	v.SetDefault("auth.issuer", "dress-for-success")

	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "attire-images")
	v.SetDefault("storage.use_path_style", true)
	v.SetDefault("storage.image_width", 800)
	v.SetDefault("storage.max_upload_size", 10<<20)

	v.SetDefault("mail.provider", "none")
	v.SetDefault("mail.smtp_port", 587)
	v.SetDefault("mail.from_name", "Dress for Success")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("rental.default_buffer_days", 7)
	v.SetDefault("rental.buffer_debounce", "0s")
	v.SetDefault("rental.pickup_location", "Career Centre, Room 110")

	v.SetDefault("jobs.orphan_sweep_interval", "6h")
	v.SetDefault("jobs.orphan_grace_period", "24h")

	v.SetDefault("feature.notify_on_status_change", false)
	v.SetDefault("feature.orphan_sweep_enabled", true)

	// ── config file ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── environment ──
	v.SetEnvPrefix("DFS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		// no file: defaults and environment only
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings the service cannot run without
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret must not be empty")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("config: auth.jwt_secret must be at least 16 characters")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port must be between 1 and 65535")
	}
	if c.Rental.DefaultBufferDays < 0 {
		return fmt.Errorf("config: rental.default_buffer_days must not be negative")
	}
	switch c.Mail.Provider {
	case "smtp", "ses", "none":
	default:
		return fmt.Errorf("config: unknown mail.provider %q", c.Mail.Provider)
	}
	return nil
}
