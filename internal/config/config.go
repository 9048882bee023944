package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"accounthub/internal/token"
)

type ServerConfig struct {
	Port int    `yaml:"port"`
	DSN  string `yaml:"database_url"`
}

type ServicesConfig struct {
	AuthURL        string `yaml:"auth_url"`
	UserURL        string `yaml:"user_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// JWTConfig TTLs are duration strings ("15m", "168h"); unset values
// fall back to the token package defaults.
type JWTConfig struct {
	Secret          string `yaml:"secret"`
	AccessTTL       string `yaml:"access_ttl"`
	RefreshTTL      string `yaml:"refresh_ttl"`
	ResetTTL        string `yaml:"reset_ttl"`
	VerificationTTL string `yaml:"verification_ttl"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password"`
	FromEmail    string `yaml:"from_email"`
	DryRun       bool   `yaml:"dry_run"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Dev   bool   `yaml:"dev"`
	File  string `yaml:"file"`
}

type Config struct {
	Gateway     ServerConfig   `yaml:"gateway"`
	AuthService ServerConfig   `yaml:"auth_service"`
	UserService ServerConfig   `yaml:"user_service"`
	Services    ServicesConfig `yaml:"services"`
	JWT         JWTConfig      `yaml:"jwt"`
	Email       EmailConfig    `yaml:"email"`
	Log         LogConfig      `yaml:"log"`
}

// LoadConfig reads the YAML config file and applies environment
// overrides. A .env file is honored when present; real environment
// variables win over both.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = "config/config.yaml"
	}
	if env := os.Getenv("CONFIG_FILE"); env != "" {
		path = env
	}

	cfg := &Config{}
	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (jwt.secret or JWT_SECRET)")
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("AUTH_DATABASE_URL"); v != "" {
		cfg.AuthService.DSN = v
	}
	if v := os.Getenv("USER_DATABASE_URL"); v != "" {
		cfg.UserService.DSN = v
	}
	if v := os.Getenv("AUTH_SERVICE_URL"); v != "" {
		cfg.Services.AuthURL = v
	}
	if v := os.Getenv("USER_SERVICE_URL"); v != "" {
		cfg.Services.UserURL = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Gateway.Port == 0 {
		cfg.Gateway.Port = 8080
	}
	if cfg.AuthService.Port == 0 {
		cfg.AuthService.Port = 8081
	}
	if cfg.UserService.Port == 0 {
		cfg.UserService.Port = 8082
	}
	if cfg.Services.AuthURL == "" {
		cfg.Services.AuthURL = fmt.Sprintf("http://localhost:%d", cfg.AuthService.Port)
	}
	if cfg.Services.UserURL == "" {
		cfg.Services.UserURL = fmt.Sprintf("http://localhost:%d", cfg.UserService.Port)
	}
	if cfg.Services.TimeoutSeconds == 0 {
		cfg.Services.TimeoutSeconds = 5
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// CallTimeout is the fixed per-call wait for downstream services.
func (c *Config) CallTimeout() time.Duration {
	return time.Duration(c.Services.TimeoutSeconds) * time.Second
}

// TokenOptions translates the configured TTL strings into token
// service options; invalid strings surface as errors rather than being
// silently ignored.
func (c *Config) TokenOptions() (token.Options, error) {
	opts := token.Options{}
	for _, f := range []struct {
		raw  string
		dst  *time.Duration
		name string
	}{
		{c.JWT.AccessTTL, &opts.AccessTTL, "jwt.access_ttl"},
		{c.JWT.RefreshTTL, &opts.RefreshTTL, "jwt.refresh_ttl"},
		{c.JWT.ResetTTL, &opts.ResetTTL, "jwt.reset_ttl"},
		{c.JWT.VerificationTTL, &opts.VerificationTTL, "jwt.verification_ttl"},
	} {
		if f.raw == "" {
			continue
		}
		d, err := time.ParseDuration(f.raw)
		if err != nil {
			return token.Options{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = d
	}
	return opts, nil
}
