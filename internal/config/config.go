package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	SMTP     SMTPConfig     `mapstructure:"smtp"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// BaseURL is the public URL verification links point at.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// DatabaseConfig contains the storage settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	JWTSecret   string        `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenExpiry time.Duration `mapstructure:"token_expiry" validate:"required"`
}

// SMTPConfig contains the outbound mail settings. When Enabled is false the
// server logs verification links instead of sending them.
type SMTPConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host" validate:"required_if=Enabled true"`
	Port     int    `mapstructure:"port" validate:"required_if=Enabled true"`
	From     string `mapstructure:"from" validate:"required_if=Enabled true"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}
