package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Token    Token
}

type Server struct {
	Addr string
}

type Database struct {
	Driver string
	DSN    string
}

type Token struct {
	Secret string
	TTL    time.Duration
}

// Load reads config.yaml from dir and applies PARLEY_-prefixed environment
// overrides (PARLEY_TOKEN_SECRET, PARLEY_DATABASE_DSN, ...). A missing file
// is fine; a missing token secret is not.
func Load(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("PARLEY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "parley.db")
	v.SetDefault("token.ttl", time.Hour)
	// Registered so the env override is visible to Unmarshal.
	v.SetDefault("token.secret", "")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	if c.Token.Secret == "" {
		return nil, errors.New("token secret is required (token.secret / PARLEY_TOKEN_SECRET)")
	}
	return &c, nil
}
