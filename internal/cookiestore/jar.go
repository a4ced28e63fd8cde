// Package cookiestore is an http.CookieJar that survives process restarts. It holds
// the server-managed refresh cookie so request code never has to see it.
package cookiestore

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/jrsteele09/go-cinema-client/internal/secretfile"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"
)

type storedCookie struct {
	URL      string        `json:"url"`
	Name     string        `json:"name"`
	Value    string        `json:"value"`
	Path     string        `json:"path,omitempty"`
	Domain   string        `json:"domain,omitempty"`
	Expires  time.Time     `json:"expires,omitempty"`
	Secure   bool          `json:"secure,omitempty"`
	HttpOnly bool          `json:"httpOnly,omitempty"`
	SameSite http.SameSite `json:"sameSite,omitempty"`
}

type Jar struct {
	mu      sync.Mutex
	inner   *cookiejar.Jar
	entries map[string]storedCookie
	file    *secretfile.File // nil keeps the jar in memory only
	log     zerolog.Logger
	now     func() time.Time
}

var _ http.CookieJar = (*Jar)(nil)

type Option func(*Jar)

func WithLogger(l zerolog.Logger) Option {
	return func(j *Jar) {
		j.log = l
	}
}

func WithNowTime(now func() time.Time) Option {
	return func(j *Jar) {
		j.now = now
	}
}

// WithFile persists the jar to f after every change.
func WithFile(f *secretfile.File) Option {
	return func(j *Jar) {
		j.file = f
	}
}

// New creates a jar and loads any cookies previously saved to its file.
func New(opts ...Option) (*Jar, error) {
	j := &Jar{
		entries: make(map[string]storedCookie),
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	inner, err := newInner()
	if err != nil {
		return nil, err
	}
	j.inner = inner
	if err := j.load(); err != nil {
		return nil, err
	}
	return j, nil
}

func newInner() (*cookiejar.Jar, error) {
	inner, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "[cookiestore.New] cookiejar.New")
	}
	return inner, nil
}

func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.inner.SetCookies(u, cookies)
	now := j.now()
	for _, c := range cookies {
		k := entryKey(u, c)
		if c.MaxAge < 0 || (!c.Expires.IsZero() && !c.Expires.After(now)) {
			delete(j.entries, k)
			continue
		}
		expires := c.Expires
		if c.MaxAge > 0 {
			expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		}
		j.entries[k] = storedCookie{
			URL:      u.Scheme + "://" + u.Host,
			Name:     c.Name,
			Value:    c.Value,
			Path:     c.Path,
			Domain:   c.Domain,
			Expires:  expires,
			Secure:   c.Secure,
			HttpOnly: c.HttpOnly,
			SameSite: c.SameSite,
		}
	}
	if err := j.saveLocked(); err != nil {
		j.log.Warn().Err(err).Msg("persisting cookie jar")
	}
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.inner.Cookies(u)
}

// Clear drops every cookie, in memory and on disk.
func (j *Jar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	inner, err := newInner()
	if err != nil {
		return err
	}
	j.inner = inner
	j.entries = make(map[string]storedCookie)
	if j.file == nil {
		return nil
	}
	return j.file.Remove()
}

// Len reports how many unexpired cookies the jar tracks.
func (j *Jar) Len() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.entries)
}

func (j *Jar) load() error {
	if j.file == nil {
		return nil
	}
	data, err := j.file.Read()
	if errors.Is(err, ierrors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "[Jar.load] Read")
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		j.log.Warn().Err(err).Str("file", j.file.Path()).Msg("discarding unreadable cookie jar")
		return nil
	}

	now := j.now()
	for _, sc := range stored {
		if !sc.Expires.IsZero() && !sc.Expires.After(now) {
			continue
		}
		u, err := url.Parse(sc.URL)
		if err != nil {
			continue
		}
		c := &http.Cookie{
			Name:     sc.Name,
			Value:    sc.Value,
			Path:     sc.Path,
			Domain:   sc.Domain,
			Expires:  sc.Expires,
			Secure:   sc.Secure,
			HttpOnly: sc.HttpOnly,
			SameSite: sc.SameSite,
		}
		j.inner.SetCookies(u, []*http.Cookie{c})
		j.entries[entryKey(u, c)] = sc
	}
	return nil
}

func (j *Jar) saveLocked() error {
	if j.file == nil {
		return nil
	}
	stored := make([]storedCookie, 0, len(j.entries))
	for _, sc := range j.entries {
		stored = append(stored, sc)
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return errors.Wrap(err, "[Jar.save] json.Marshal")
	}
	return j.file.Write(data)
}

func entryKey(u *url.URL, c *http.Cookie) string {
	domain := c.Domain
	if domain == "" {
		domain = u.Hostname()
	}
	return domain + "|" + c.Path + "|" + c.Name
}
