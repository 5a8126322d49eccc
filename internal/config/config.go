package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Order    OrderConfig    `mapstructure:"order"`
	Tracing  TracingConfig  `mapstructure:"tracing"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout"`
	IdleTimeout  time.Duration `mapstructure:"idleTimeout"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
	AutoMigrate     bool          `mapstructure:"autoMigrate"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
}

type OrderConfig struct {
	TxTimeout time.Duration `mapstructure:"txTimeout"`
	MaxLines  int           `mapstructure:"maxLines"`
}

// TracingConfig leaves Endpoint empty to keep spans in process.
type TracingConfig struct {
	ServiceName string  `mapstructure:"serviceName"`
	Endpoint    string  `mapstructure:"endpoint"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRatio float64 `mapstructure:"sampleRatio"`
}

var defaults = map[string]any{
	"server.port":              8080,
	"server.readTimeout":       "10s",
	"server.writeTimeout":      "10s",
	"server.idleTimeout":       "30s",
	"database.host":            "localhost",
	"database.port":            3306,
	"database.user":            "sellerhub",
	"database.password":        "secret",
	"database.name":            "sellerhub",
	"database.maxOpenConns":    25,
	"database.maxIdleConns":    5,
	"database.connMaxLifetime": "5m",
	"database.autoMigrate":     false,
	"log.level":                "info",
	"log.format":               "json",
	"auth.jwtSecret":           "",
	"order.txTimeout":          "5s",
	"order.maxLines":           100,
	"tracing.serviceName":      "sellerhub",
	"tracing.endpoint":         "",
	"tracing.insecure":         true,
	"tracing.sampleRatio":      1.0,
}

// Load reads the YAML file at path, if it exists, and lets environment
// variables override it: database.maxOpenConns becomes DATABASE_MAXOPENCONNS.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isMissingFile(err) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func isMissingFile(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwtSecret must be set (AUTH_JWTSECRET)")
	}
	if c.Order.TxTimeout <= 0 {
		return errors.New("order.txTimeout must be positive")
	}
	if c.Order.MaxLines <= 0 {
		return errors.New("order.maxLines must be positive")
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return errors.New("tracing.sampleRatio must be between 0 and 1")
	}
	return nil
}
