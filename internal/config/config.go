package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/currybox/currybox/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig
	Catalog    CatalogConfig `validate:"required"`
	Pricing    PricingConfig `validate:"required"`
	Promo      CollaboratorConfig
	Payment    CollaboratorConfig
	Order      CollaboratorConfig
	Session    SessionConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// CatalogConfig points at the externally supplied menu file
type CatalogConfig struct {
	Path string `validate:"required"`
}

// PricingConfig carries the rule constants of the pricing engine. All amounts
// are integer minor currency units.
type PricingConfig struct {
	// FreeDeliveryThreshold is the subtotal at or above which delivery is free
	FreeDeliveryThreshold int64 `mapstructure:"free_delivery_threshold"`
	// DeliveryFee is the flat fee charged below the threshold
	DeliveryFee int64 `mapstructure:"delivery_fee"`
	// VolumeTiers maps minimum item count to percentage discount, highest
	// qualifying tier wins, tiers never stack
	VolumeTiers []VolumeTier `mapstructure:"volume_tiers"`
}

type VolumeTier struct {
	MinItems int   `mapstructure:"min_items"`
	Percent  int64 `mapstructure:"percent"`
}

// CollaboratorConfig configures one external HTTP collaborator
type CollaboratorConfig struct {
	BaseURL string `mapstructure:"base_url"`
	APIKey  string `mapstructure:"api_key"`
}

type SessionConfig struct {
	// TTLMinutes controls how long an idle session stays in the hot cache
	TTLMinutes int `mapstructure:"ttl_minutes"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/currybox")

	v.SetEnvPrefix("CURRYBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("catalog.path", "./internal/config/catalog.yaml")
	v.SetDefault("pricing.free_delivery_threshold", 5000)
	v.SetDefault("pricing.delivery_fee", 500)
	v.SetDefault("session.ttl_minutes", 120)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development and
// tests. Pricing defaults match the shop's published rules.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Catalog:    CatalogConfig{Path: "./internal/config/catalog.yaml"},
		Pricing:    DefaultPricingConfig(),
		Session:    SessionConfig{TTLMinutes: 120},
	}
}

// DefaultPricingConfig returns the published pricing rules: free delivery at
// 5000 minor units, flat 500 fee below, and 5/10/15 item volume tiers.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		FreeDeliveryThreshold: 5000,
		DeliveryFee:           500,
		VolumeTiers: []VolumeTier{
			{MinItems: 15, Percent: 15},
			{MinItems: 10, Percent: 10},
			{MinItems: 5, Percent: 5},
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
