package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/pitchdesk/pitchdesk/internal/domain/entity"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Portal     PortalConfig     `mapstructure:"portal"`
	HoldPolicy HoldPolicyConfig `mapstructure:"hold_policy"`
	Logger     LoggerConfig     `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// PortalConfig holds client portal link configuration
type PortalConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	SigningKey string        `mapstructure:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// HoldPolicyConfig seeds the payout hold policy on first run
type HoldPolicyConfig struct {
	Enabled             bool           `mapstructure:"enabled"`
	MinimumHoldHours    int            `mapstructure:"minimum_hold_hours"`
	BusinessDaysOnly    bool           `mapstructure:"business_days_only"`
	ProcessingTimeOfDay string         `mapstructure:"processing_time_of_day"`
	AllowAdminBypass    bool           `mapstructure:"allow_admin_bypass"`
	RequireBypassReason bool           `mapstructure:"require_bypass_reason"`
	AuditBypass         bool           `mapstructure:"audit_bypass"`
	HoldDays            map[string]int `mapstructure:"hold_days"`
	DefaultHoldDays     int            `mapstructure:"default_hold_days"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	// Database defaults
	viper.SetDefault("database.path", "data/pitchdesk.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	viper.SetDefault("database.migrations_dir", "migrations")

	// Portal defaults
	viper.SetDefault("portal.base_url", "http://localhost:8080")
	viper.SetDefault("portal.token_ttl", 72*time.Hour)

	// Hold policy defaults
	viper.SetDefault("hold_policy.enabled", true)
	viper.SetDefault("hold_policy.minimum_hold_hours", 2)
	viper.SetDefault("hold_policy.business_days_only", true)
	viper.SetDefault("hold_policy.processing_time_of_day", "14:00")
	viper.SetDefault("hold_policy.allow_admin_bypass", true)
	viper.SetDefault("hold_policy.require_bypass_reason", true)
	viper.SetDefault("hold_policy.audit_bypass", true)
	viper.SetDefault("hold_policy.default_hold_days", 3)
	viper.SetDefault("hold_policy.hold_days", map[string]int{
		entity.WorkflowTypeStandard: 3,
		entity.WorkflowTypeContest:  5,
		entity.WorkflowTypeClient:   7,
	})

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	// Sensitive credentials from environment
	viper.BindEnv("portal.signing_key", "PORTAL_SIGNING_KEY")
	viper.BindEnv("database.path", "DATABASE_PATH")
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Portal.SigningKey == "" {
		return fmt.Errorf("portal signing key is required (set PORTAL_SIGNING_KEY)")
	}
	if c.HoldPolicy.MinimumHoldHours < 0 {
		return fmt.Errorf("minimum hold hours must be >= 0, got %d", c.HoldPolicy.MinimumHoldHours)
	}
	for workflowType, days := range c.HoldPolicy.HoldDays {
		if days < 0 {
			return fmt.Errorf("hold days for %s must be >= 0, got %d", workflowType, days)
		}
	}
	return nil
}

// HoldPolicy converts the seed config into the domain policy
func (c *HoldPolicyConfig) HoldPolicy() *entity.PayoutHoldPolicy {
	return &entity.PayoutHoldPolicy{
		Enabled:             c.Enabled,
		MinimumHoldHours:    c.MinimumHoldHours,
		BusinessDaysOnly:    c.BusinessDaysOnly,
		ProcessingTimeOfDay: c.ProcessingTimeOfDay,
		AllowAdminBypass:    c.AllowAdminBypass,
		RequireBypassReason: c.RequireBypassReason,
		AuditBypass:         c.AuditBypass,
		HoldDays:            c.HoldDays,
		DefaultHoldDays:     c.DefaultHoldDays,
	}
}
