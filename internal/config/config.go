package config

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/text/currency"

	"github.com/Alturino/storefront/internal/log"
)

type Application struct {
	Env          string `mapstructure:"env"           json:"env"`
	Host         string `mapstructure:"host"          json:"host"`
	SecretKey    string `mapstructure:"secret_key"    json:"-"`
	Currency     string `mapstructure:"currency"      json:"currency"`
	Port         int    `mapstructure:"port"          json:"port"`
	CookieSecure bool   `mapstructure:"cookie_secure" json:"cookie_secure"`
}

type Database struct {
	Name           string `mapstructure:"name"            json:"name"`
	Host           string `mapstructure:"host"            json:"host"`
	MigrationPath  string `mapstructure:"migration_path"  json:"migration_path"`
	Password       string `mapstructure:"password"        json:"-"`
	TimeZone       string `mapstructure:"timezone"        json:"timezone"`
	Username       string `mapstructure:"username"        json:"username"`
	MaxConnections int    `mapstructure:"max_connections" json:"max_connections"`
	MinConnections int    `mapstructure:"min_connections" json:"min_connections"`
	Port           uint16 `mapstructure:"port"            json:"port"`
}

type Cache struct {
	Host     string `mapstructure:"host"     json:"host"`
	Password string `mapstructure:"password" json:"-"`
	Database int    `mapstructure:"database" json:"database"`
	Port     uint16 `mapstructure:"port"     json:"port"`
}

type Otel struct {
	Host string `mapstructure:"host" json:"host"`
	Port int    `mapstructure:"port" json:"port"`
}

type Services struct {
	OrderURL string `mapstructure:"order_url" json:"order_url"`
}

type Config struct {
	Database    `mapstructure:"db"          json:"db"`
	Cache       `mapstructure:"cache"       json:"cache"`
	Application `mapstructure:"application" json:"application"`
	Otel        `mapstructure:"otel"        json:"otel"`
	Services    `mapstructure:"services"    json:"services"`
}

var (
	once   sync.Once
	config *Config
)

// InitConfig reads env/<filename>.yaml once per process. Environment variables
// override file values using the upper-cased key path, e.g. DB_PASSWORD.
func InitConfig(c context.Context, filename string) *Config {
	once.Do(func() {
		cfg := Config{}
		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyTag, "main InitConfig").
			Str(log.KeyProcess, "init config").
			Str("filename", filename).
			Logger()

		logger = logger.With().Str(log.KeyProcess, "loading dotenv").Logger()
		logger.Info().Msg("loading dotenv")
		if err := godotenv.Load(); err != nil {
			logger.Info().Err(err).Msg("no .env file found, relying on environment")
		} else {
			logger.Info().Msg("loaded dotenv")
		}

		v := viper.New()
		v.SetConfigName(filename)
		v.AddConfigPath("./env")
		v.SetConfigType("yaml")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		logger = logger.With().Str(log.KeyProcess, "reading config").Logger()
		logger.Info().Msg("reading config")
		err := v.ReadInConfig()
		if err != nil {
			err = fmt.Errorf("error when reading config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("read config")

		logger = logger.With().Str(log.KeyProcess, "unmarshaling config").Logger()
		logger.Info().Msg("unmarshaling config")
		err = v.Unmarshal(&cfg)
		if err != nil {
			err = fmt.Errorf("error unmarshaling config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("unmarshaled config")

		logger = logger.With().Str(log.KeyProcess, "validating config").Logger()
		logger.Info().Msg("validating config")
		err = cfg.Validate()
		if err != nil {
			err = fmt.Errorf("invalid config with error=%w", err)
			logger.Fatal().Err(err).Msg(err.Error())
		}
		logger.Info().Msg("validated config")

		config = &cfg
		logger.Info().Any(log.KeyConfig, cfg).Msg("initialized config")
	})
	return config
}

func (c Config) Validate() error {
	if c.Application.SecretKey == "" {
		return fmt.Errorf("application.secret_key is empty")
	}
	if c.Application.Currency == "" {
		return nil
	}
	if _, err := currency.ParseISO(c.Application.Currency); err != nil {
		return fmt.Errorf("application.currency=%s is not valid: %w", c.Application.Currency, err)
	}
	return nil
}

// CurrencyUnit defaults to USD when no currency is configured.
func (a Application) CurrencyUnit() currency.Unit {
	unit, err := currency.ParseISO(a.Currency)
	if err != nil {
		return currency.USD
	}
	return unit
}
