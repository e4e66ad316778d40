package cmd

import (
	"fmt"

	"github.com/caarlos0/env/v9"
)

// Config carries everything the entrypoint needs to wire the engine.
// Values come from the environment; a .env file is loaded first when
// present.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_NAME,required"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`
}

// LoadConfig parses the configuration from the environment.
func LoadConfig() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return config, nil
}

// DSN assembles the Postgres connection string. Both GORM and the
// LISTEN/NOTIFY bridge connect with it.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
