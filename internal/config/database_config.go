package config

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lumberg/petitions/internal/util"
)

// Database contains configuration for the Postgres connection holding the
// signature and validation tables.
type Database struct {
	Host     string `envconfig:"HOST"`
	Port     int    `envconfig:"PORT"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD" json:"-"` // sensitive field
	Database string `envconfig:"DATABASE"`

	AdditionalParams map[string]string `envconfig:"ADDITIONAL_PARAMS"`

	// Connection pool settings
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME"`
}

// LoadDatabaseConfig loads database configuration from environment variables.
func LoadDatabaseConfig() Database {
	return Database{
		Host:     util.GetEnv("PGHOST", "localhost"),
		Port:     util.GetEnvAsInt("PGPORT", 5432),
		Username: util.GetEnv("PGUSER", "postgres"),
		Password: util.GetEnv("PGPASSWORD", ""),
		Database: util.GetEnv("PGDATABASE", "petitions"),
		AdditionalParams: map[string]string{
			"sslmode": util.GetEnv("PGSSLMODE", "disable"),
		},
		MaxOpenConns:    util.GetEnvAsInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    util.GetEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: time.Second * time.Duration(util.GetEnvAsInt("DB_CONN_MAX_LIFETIME_SECONDS", 300)),
	}
}

// ConnectionString generates a connection string to be passed to sql.Open.
func (d Database) ConnectionString() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s", d.Host, d.Port, d.Username, d.Password, d.Database))

	if len(d.AdditionalParams) > 0 {
		params := make([]string, 0, len(d.AdditionalParams))
		for param := range d.AdditionalParams {
			params = append(params, param)
		}

		sort.Strings(params)

		for _, param := range params {
			fmt.Fprintf(&b, " %s=%s", param, d.AdditionalParams[param])
		}
	}

	return b.String()
}
