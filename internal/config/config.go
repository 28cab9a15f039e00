package config

import (
	"errors"
	"fmt"
	"net"
	"time"

	"loanstream/internal/domain/underwriting"

	"github.com/caarlos0/env/v11"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"`

	DBDriver      string `env:"DB_DRIVER" envDefault:"mysql"`
	DBAutoMigrate bool   `env:"DB_AUTO_MIGRATE" envDefault:"true"`
	DBLogLevel    string `env:"DB_LOG_LEVEL" envDefault:"warn"`

	MySQLHost string `env:"MYSQL_HOST" envDefault:"mysql"`
	MySQLPort string `env:"MYSQL_PORT" envDefault:"3306"`
	MySQLDB   string `env:"MYSQL_DB" envDefault:"loanstream"`
	MySQLUser string `env:"MYSQL_USER" envDefault:"loanstream"`
	MySQLPass string `env:"MYSQL_PASS" envDefault:"loanstream"`

	PostgresDSN string `env:"POSTGRES_DSN"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"loanstream.db"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"redis:6379"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	IdempTTLSecs int `env:"IDEMPOTENCY_TTL_SECONDS" envDefault:"300"`

	JWTSecret string `env:"JWT_SECRET"`

	AutoUnderwrite bool    `env:"AUTO_UNDERWRITE" envDefault:"false"`
	MinIncome      float64 `env:"UNDERWRITING_MIN_INCOME" envDefault:"8000"`
	MinCreditScore int     `env:"UNDERWRITING_MIN_CREDIT_SCORE" envDefault:"600"`
	MaxDTI         float64 `env:"UNDERWRITING_MAX_DTI" envDefault:"0.5"`
}

// Load reads the environment. Call Validate before using the result.
func Load() (*Config, error) {
	c := &Config{}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverPostgres:
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("invalid IDEMPOTENCY_TTL_SECONDS %d", c.IdempTTLSecs)
	}
	if c.MinIncome < 0 || c.MaxDTI <= 0 {
		return errors.New("invalid underwriting thresholds")
	}
	if c.MinCreditScore < underwriting.MinCreditScore || c.MinCreditScore > underwriting.MaxCreditScore {
		return fmt.Errorf("UNDERWRITING_MIN_CREDIT_SCORE must be within [%d, %d]",
			underwriting.MinCreditScore, underwriting.MaxCreditScore)
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case DriverPostgres:
		return c.PostgresDSN
	case DriverSQLite:
		return c.SQLitePath
	}
	return c.MySQLDSN()
}

func (c *Config) IdempTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) Policy() underwriting.Policy {
	return underwriting.Policy{
		MinIncome:      c.MinIncome,
		MinCreditScore: c.MinCreditScore,
		MaxDTI:         c.MaxDTI,
	}
}
