package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from a .env file using the provided base
// name, e.g. LoadConfig("api") reads "api.env".
func LoadConfig(configName string) (*Config, error) {
	configFileName := fmt.Sprintf("%s.env", configName)
	return loadConfig(configFileName, "env")
}

// LoadConfigWithNameAndType loads configuration with an explicit name and
// file type, for callers that need a specific format (e.g. "yaml").
func LoadConfigWithNameAndType(configName, configType string) (*Config, error) {
	return loadConfig(configName, configType)
}

// loadConfig layers configuration sources: defaults first, then values from
// a config file if one is found, then environment variables, and finally
// validates the result.
func loadConfig(configName, configType string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configName)
	if configType != "" {
		v.SetConfigType(configType)
	}

	// Config paths in order of priority
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			fmt.Printf("INFO: No config file '%s' found, relying on environment variables and defaults.\n", configName)
		} else {
			fmt.Printf("WARNING: Error reading config file (%s): %v\n", v.ConfigFileUsed(), err)
		}
	} else {
		fmt.Printf("INFO: Config loaded from file: %s\n", v.ConfigFileUsed())
	}

	v.AutomaticEnv()

	config := &Config{
		Application: ApplicationConfig{
			Env:  v.GetString("APP_ENV"),
			Name: v.GetString("APP_NAME"),
		},
		Logging: LoggingConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			IdleTimeout:     v.GetDuration("SERVER_IDLE_TIMEOUT"),
		},
		TigerBeetle: TigerBeetleConfig{
			ClusterID: v.GetUint64("TIGERBEETLE_CLUSTER_ID"),
			Addresses: splitAddresses(v.GetString("TIGERBEETLE_ADDRESSES")),
		},
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// splitAddresses parses the comma-separated replica address list.
func splitAddresses(addresses string) []string {
	if strings.TrimSpace(addresses) == "" {
		return nil
	}

	parts := strings.Split(addresses, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		result = append(result, strings.TrimSpace(part))
	}
	return result
}

// setDefaults initializes configuration with development-friendly values.
// Production deployments override these with environment variables.
func setDefaults(v *viper.Viper) {
	// HTTP server defaults - tuned for typical web application workloads
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_READ_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30*time.Second)
	v.SetDefault("SERVER_IDLE_TIMEOUT", 120*time.Second)

	// TigerBeetle defaults - a single-replica development cluster
	v.SetDefault("TIGERBEETLE_CLUSTER_ID", 0)
	v.SetDefault("TIGERBEETLE_ADDRESSES", "3000")

	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_NAME", "tigerbeetle-facade")
}
