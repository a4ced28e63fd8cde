package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type APIConfig interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
	GetRateLimit() float64
	GetRateBurst() int
	GetAutoRenew() bool
}

type API struct {
	BaseURL        string        `env:"CINEMA_API_BASE_URL" envDefault:"http://localhost:8080/api"`
	RequestTimeout time.Duration `env:"CINEMA_API_TIMEOUT" envDefault:"0s"`   // 0 leaves the transport default
	RateLimit      float64       `env:"CINEMA_API_RATE_LIMIT" envDefault:"0"` // requests per second, 0 disables
	RateBurst      int           `env:"CINEMA_API_BURST" envDefault:"5"`
	AutoRenew      bool          `env:"CINEMA_AUTO_RENEW" envDefault:"false"`
}

var _ APIConfig = API{}

// GetBaseURL returns the API root without a trailing slash (e.g. "http://localhost:8080/api")
func (a API) GetBaseURL() string {
	return strings.TrimRight(a.BaseURL, "/")
}

func (a API) GetRequestTimeout() time.Duration {
	return a.RequestTimeout
}

func (a API) GetRateLimit() float64 {
	return a.RateLimit
}

func (a API) GetRateBurst() int {
	if a.RateBurst <= 0 {
		return 1
	}
	return a.RateBurst
}

func (a API) GetAutoRenew() bool {
	return a.AutoRenew
}

func (a API) validate() error {
	u, err := url.Parse(a.BaseURL)
	if err != nil {
		return errors.Wrap(err, "[API.validate] CINEMA_API_BASE_URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Errorf("[API.validate] CINEMA_API_BASE_URL must be http(s), got %q", a.BaseURL)
	}
	if a.RateLimit < 0 {
		return errors.New("[API.validate] CINEMA_API_RATE_LIMIT must not be negative")
	}
	return nil
}
