package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL         string        `mapstructure:"database_url"`
	ServerPort          string        `mapstructure:"server_port"`
	JWTSecret           string        `mapstructure:"jwt_secret"`
	TokenTTL            time.Duration `mapstructure:"token_ttl"`
	BaseURL             string        `mapstructure:"base_url"`
	AllowedOrigins      []string      `mapstructure:"allowed_origins"`
	BootstrapAdminEmail string        `mapstructure:"bootstrap_admin_email"`
	LogLevel            string        `mapstructure:"log_level"`
	Timezone            string        `mapstructure:"timezone"`
	BrandName           string        `mapstructure:"brand_name"`
	Email               EmailConfig   `mapstructure:"email"`
}

type EmailConfig struct {
	From     string        `mapstructure:"from"`
	SMTPHost string        `mapstructure:"smtp_host"`
	SMTPPort int           `mapstructure:"smtp_port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether an SMTP relay is configured.
func (e EmailConfig) Enabled() bool {
	return strings.TrimSpace(e.SMTPHost) != ""
}

// Load reads the configuration from a YAML file and the environment, exiting on error.
func Load() *Config {
	cfg, err := LoadFrom("")
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	return cfg
}

// LoadFrom reads configuration from path, or from config.yaml in . and ./config when path is empty.
// Every key can be overridden with a TUTORING_ prefixed environment variable.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("TUTORING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Fallback defaults
	if config.ServerPort == "" {
		config.ServerPort = "8080"
	}
	if config.TokenTTL <= 0 {
		config.TokenTTL = 24 * time.Hour
	}
	if config.BaseURL == "" {
		config.BaseURL = "http://localhost:3001"
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if len(config.AllowedOrigins) == 0 {
		config.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Timezone == "" {
		config.Timezone = "UTC"
	}
	if config.BrandName == "" {
		config.BrandName = "Tutoring"
	}
	if config.Email.SMTPPort == 0 {
		config.Email.SMTPPort = 587
	}
	if config.Email.Timeout <= 0 {
		config.Email.Timeout = 10 * time.Second
	}
	if config.Email.From == "" {
		config.Email.From = "Tutoring <noreply@localhost>"
	}

	if config.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret must be set")
	}
	if config.DatabaseURL == "" {
		return nil, fmt.Errorf("database_url must be set")
	}

	return &config, nil
}

// bindEnv registers every key so AutomaticEnv also applies to Unmarshal.
func bindEnv(v *viper.Viper) {
	keys := []string{
		"database_url", "server_port", "jwt_secret", "token_ttl", "base_url",
		"allowed_origins", "bootstrap_admin_email", "log_level", "timezone",
		"brand_name",
		"email.from", "email.smtp_host", "email.smtp_port", "email.username",
		"email.password", "email.timeout",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}
