package database

import "fmt"

// Config holds Postgres connection settings. Its fields mirror
// config.DatabaseConfig so callers can convert between the two directly.
type Config struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConnections int
	MigrationsDir  string
}

// DSN returns the lib/pq keyword/value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=%s",
		c.User, c.Password, c.Host, c.portOrDefault(), c.Name, c.SSLMode,
	)
}

// URL returns the postgres:// form expected by golang-migrate.
func (c Config) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.portOrDefault(), c.Name, c.SSLMode,
	)
}

func (c Config) portOrDefault() string {
	if c.Port == "" {
		return "5432"
	}
	return c.Port
}
