// Package config provides configuration structures and validation for the
// facade. It handles environment-based configuration for the HTTP server,
// logging, and the TigerBeetle cluster connection.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the complete application configuration. Each field covers one
// subsystem and is validated during startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	TigerBeetle TigerBeetleConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// TigerBeetleConfig contains the ledger engine connection settings
type TigerBeetleConfig struct {
	ClusterID uint64   // Cluster the facade belongs to
	Addresses []string // Replica addresses, e.g. "3000" or "10.0.0.1:3000"
}

// validate checks all configuration values against their minimum
// requirements and reports every violation at once.
func (c *Config) validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	if len(c.TigerBeetle.Addresses) == 0 {
		validationErrors = append(validationErrors, "TIGERBEETLE_ADDRESSES is required")
	}
	for _, addr := range c.TigerBeetle.Addresses {
		if strings.TrimSpace(addr) == "" {
			validationErrors = append(validationErrors, "TIGERBEETLE_ADDRESSES must not contain empty entries")
			break
		}
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
