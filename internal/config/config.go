package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Logger  LoggerConfig
	Auth    AuthConfig
	Catalog CatalogConfig
	Tables  TablesConfig
	Ticket  TicketConfig
	Printer PrinterConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	APIKey string
}

// CatalogConfig points at an optional seed file replacing the embedded
// product catalog.
type CatalogConfig struct {
	SeedFile string
}

// TablesConfig holds the table layout. The counter (table 0) always
// exists on top of Count numbered tables.
type TablesConfig struct {
	Count int
}

// TicketConfig holds receipt rendering configuration.
type TicketConfig struct {
	Venue string
	Dir   string
}

// PrinterConfig describes the (mocked) thermal printer connection.
type PrinterConfig struct {
	Type              string
	IP                string
	Port              int
	CharactersPerLine int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			APIKey: getEnv("API_KEY", ""),
		},
		Catalog: CatalogConfig{
			SeedFile: getEnv("CATALOG_SEED_FILE", ""),
		},
		Tables: TablesConfig{
			Count: getEnvAsInt("TABLES_COUNT", 8),
		},
		Ticket: TicketConfig{
			Venue: getEnv("TICKET_VENUE", "Bar El Haido"),
			Dir:   getEnv("TICKET_DIR", "tickets"),
		},
		Printer: PrinterConfig{
			Type:              getEnv("PRINTER_TYPE", "EPSON"),
			IP:                getEnv("PRINTER_IP", "192.168.1.50"),
			Port:              getEnvAsInt("PRINTER_PORT", 9100),
			CharactersPerLine: getEnvAsInt("PRINTER_CHARS_PER_LINE", 32),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Auth.APIKey == "" {
		return fmt.Errorf("API key is required")
	}

	if c.Tables.Count < 0 {
		return fmt.Errorf("table count cannot be negative: %d", c.Tables.Count)
	}

	if c.Ticket.Venue == "" {
		return fmt.Errorf("ticket venue is required")
	}

	if c.Printer.Port < 1 || c.Printer.Port > 65535 {
		return fmt.Errorf("invalid printer port: %d", c.Printer.Port)
	}

	if c.Printer.CharactersPerLine < 20 {
		return fmt.Errorf("printer characters per line must be at least 20, got %d", c.Printer.CharactersPerLine)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
