package config

import (
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config interface {
	EnvConfig
	APIConfig
	SessionConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	API
	Session
}

// New loads a .env file from the working directory when one exists, then parses
// the process environment.
func New() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(err, "[config.New] godotenv.Load")
	}
	return parse(env.Options{})
}

// FromMap parses configuration from an explicit environment, ignoring the process
// environment entirely.
func FromMap(environ map[string]string) (Config, error) {
	return parse(env.Options{Environment: environ})
}

func parse(opts env.Options) (Config, error) {
	var c mainConfig
	if err := env.ParseWithOptions(&c, opts); err != nil {
		return nil, errors.Wrap(err, "[config.parse] env.ParseWithOptions")
	}
	if err := c.API.validate(); err != nil {
		return nil, err
	}
	return c, nil
}
