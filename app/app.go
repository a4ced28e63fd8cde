// Package app wires every component from configuration.
package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/jrsteele09/go-cinema-client/api"
	"github.com/jrsteele09/go-cinema-client/bootstrap"
	"github.com/jrsteele09/go-cinema-client/internal/config"
	"github.com/jrsteele09/go-cinema-client/internal/cookiestore"
	"github.com/jrsteele09/go-cinema-client/internal/secretfile"
	"github.com/jrsteele09/go-cinema-client/queries"
	"github.com/jrsteele09/go-cinema-client/querycache"
	"github.com/jrsteele09/go-cinema-client/services"
	"github.com/jrsteele09/go-cinema-client/sessions"
	"github.com/jrsteele09/go-cinema-client/sessions/filerepo"
	"github.com/jrsteele09/go-cinema-client/sessions/redisrepo"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// App holds one instance of each component. Session and cache are owned here and
// injected everywhere else.
type App struct {
	Config    config.Config
	Jar       *cookiestore.Jar
	Session   *sessions.Store
	Client    *api.Client
	Services  *services.Services
	Cache     *querycache.Cache
	Queries   *queries.Queries
	Bootstrap *bootstrap.Initializer

	closers []func() error
	log     zerolog.Logger
}

type options struct {
	log       zerolog.Logger
	repo      sessions.Repo
	apiOpts   []api.Option
	cacheOpts []querycache.Option
}

type Option func(*options)

func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithSessionRepo replaces the configured file or redis repo.
func WithSessionRepo(r sessions.Repo) Option {
	return func(o *options) {
		o.repo = r
	}
}

// WithAPIOptions appends options to the HTTP client, after the configured ones.
func WithAPIOptions(opts ...api.Option) Option {
	return func(o *options) {
		o.apiOpts = append(o.apiOpts, opts...)
	}
}

func WithCacheOptions(opts ...querycache.Option) Option {
	return func(o *options) {
		o.cacheOpts = append(o.cacheOpts, opts...)
	}
}

func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	o := options{log: log.Logger}
	for _, opt := range opts {
		opt(&o)
	}
	a := &App{Config: cfg, log: o.log}

	jar, err := cookiestore.New(
		cookiestore.WithFile(secretfile.New(cfg.GetCookieFile(), cfg.GetSessionPassphrase())),
		cookiestore.WithLogger(o.log),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[app.New] cookiestore.New")
	}
	a.Jar = jar

	repo := o.repo
	if repo == nil {
		if repo, err = a.sessionRepo(ctx, cfg); err != nil {
			return nil, err
		}
	}
	a.Session = sessions.NewStore(repo, sessions.WithLogger(o.log), sessions.WithCredentials(jar))
	a.Cache = querycache.New(append([]querycache.Option{querycache.WithLogger(o.log)}, o.cacheOpts...)...)

	apiOpts := []api.Option{
		api.WithLogger(o.log),
		api.WithCookieJar(jar),
		api.WithTokenSource(a.Session),
		api.WithTimeout(cfg.GetRequestTimeout()),
		api.WithRateLimit(cfg.GetRateLimit(), cfg.GetRateBurst()),
	}
	if cfg.GetAutoRenew() {
		// a.Bootstrap is set below, before any request can be sent.
		apiOpts = append(apiOpts, api.WithRenewer(api.RenewerFunc(func(ctx context.Context) error {
			return a.Bootstrap.Renew(ctx)
		})))
	}
	a.Client, err = api.New(cfg.GetBaseURL(), append(apiOpts, o.apiOpts...)...)
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "[app.New] api.New")
	}

	a.Services = services.New(a.Client)
	a.Bootstrap = bootstrap.New(a.Session, a.Services.Auth,
		bootstrap.WithLogger(o.log),
		bootstrap.WithOnExpired(a.Cache.Clear),
	)
	a.Queries = queries.New(a.Services, a.Cache, a.Session, queries.WithLogger(o.log))
	return a, nil
}

func (a *App) sessionRepo(ctx context.Context, cfg config.Config) (sessions.Repo, error) {
	if cfg.GetRedisAddr() == "" {
		f := secretfile.New(cfg.GetSessionFile(), cfg.GetSessionPassphrase())
		if !f.Encrypted() {
			a.log.Debug().Str("file", f.Path()).Msg("session file is not encrypted, set CINEMA_SESSION_PASSPHRASE to seal it")
		}
		return filerepo.New(f), nil
	}

	client, err := redisrepo.Connect(ctx, cfg.GetRedisAddr(), cfg.GetRedisPassword(), cfg.GetRedisDB())
	if err != nil {
		return nil, errors.Wrap(err, "[app.sessionRepo]")
	}
	a.closers = append(a.closers, client.Close)
	return redisrepo.New(client, cfg.GetSessionKey(), cfg.GetSessionTTL()), nil
}

// Start runs session bootstrap and returns its outcome.
func (a *App) Start(ctx context.Context) bootstrap.Outcome {
	return a.Bootstrap.Run(ctx)
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// NewLogger builds the console logger used by the CLI.
func NewLogger(cfg config.EnvConfig, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, err := zerolog.ParseLevel(cfg.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Str("app", cfg.GetAppName()).
		Logger()
}
