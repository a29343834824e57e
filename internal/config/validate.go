package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate aplica las reglas que cleanenv no puede expresar con tags.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range (got %d)", c.Server.Port)
	}
	if c.Server.BasePath != "" && !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path must start with / (got %q)", c.Server.BasePath)
	}

	switch strings.ToLower(c.Database.Driver) {
	case DriverMemory:
	case DriverPostgres:
		if err := c.Database.validate(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	default:
		return fmt.Errorf("database.driver must be postgres or memory (got %q)", c.Database.Driver)
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	return nil
}

func (d *DatabaseConfig) validate() error {
	var missing []string
	if strings.TrimSpace(d.Host) == "" {
		missing = append(missing, "DB_HOST")
	}
	if d.Port == 0 {
		missing = append(missing, "DB_PORT")
	}
	if strings.TrimSpace(d.Name) == "" {
		missing = append(missing, "DB_NAME")
	}
	if strings.TrimSpace(d.User) == "" {
		missing = append(missing, "DB_USER")
	}
	if len(missing) > 0 {
		return errors.New("missing " + strings.Join(missing, ", "))
	}
	if d.MaxConns < 1 {
		return fmt.Errorf("max_conns must be >= 1 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be between 0 and max_conns (got %d)", d.MinConns)
	}
	return nil
}
