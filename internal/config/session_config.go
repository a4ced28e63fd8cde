package config

import "time"

type SessionConfig interface {
	GetSessionFile() string
	GetCookieFile() string
	GetSessionPassphrase() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetSessionKey() string
	GetSessionTTL() time.Duration
}

// Session selects where the persisted identity lives. A non-empty redis address
// takes precedence over the session file.
type Session struct {
	File          string        `env:"CINEMA_SESSION_FILE" envDefault:"./data/session.json"`
	CookieFile    string        `env:"CINEMA_COOKIE_FILE" envDefault:"./data/cookies.json"`
	Passphrase    string        `env:"CINEMA_SESSION_PASSPHRASE"`
	RedisAddr     string        `env:"CINEMA_REDIS_ADDR"`
	RedisPassword string        `env:"CINEMA_REDIS_PASSWORD"`
	RedisDB       int           `env:"CINEMA_REDIS_DB" envDefault:"0"`
	Key           string        `env:"CINEMA_SESSION_KEY" envDefault:"default"`
	TTL           time.Duration `env:"CINEMA_SESSION_TTL" envDefault:"720h"`
}

var _ SessionConfig = Session{}

func (s Session) GetSessionFile() string {
	return s.File
}

func (s Session) GetCookieFile() string {
	return s.CookieFile
}

func (s Session) GetSessionPassphrase() string {
	return s.Passphrase
}

func (s Session) GetRedisAddr() string {
	return s.RedisAddr
}

func (s Session) GetRedisPassword() string {
	return s.RedisPassword
}

func (s Session) GetRedisDB() int {
	return s.RedisDB
}

func (s Session) GetSessionKey() string {
	return s.Key
}

func (s Session) GetSessionTTL() time.Duration {
	return s.TTL
}
