// Package redisrepo stores the session snapshot in redis so several client
// processes on one machine or container can share a login.
package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/jrsteele09/go-cinema-client/sessions"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cinema:session:"

var _ sessions.Repo = (*Repo)(nil)

type Repo struct {
	client redis.Cmdable
	key    string
	ttl    time.Duration // 0 keeps the key forever
}

// New stores the snapshot under cinema:session:<name>.
func New(client redis.Cmdable, name string, ttl time.Duration) *Repo {
	return &Repo{client: client, key: keyPrefix + name, ttl: ttl}
}

// Connect dials and pings redis.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(err, "[redisrepo.Connect] Ping")
	}
	return client, nil
}

func (r *Repo) Key() string {
	return r.key
}

func (r *Repo) Load(ctx context.Context) (*sessions.Persisted, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[redisrepo.Load] Get")
	}

	var p sessions.Persisted
	if err := json.Unmarshal(val, &p); err != nil {
		return nil, errors.Wrapf(ierrors.ErrCorruptSnapshot, "[redisrepo.Load] %v", err)
	}
	return &p, nil
}

func (r *Repo) Save(ctx context.Context, p sessions.Persisted) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "[redisrepo.Save] json.Marshal")
	}
	return errors.Wrap(r.client.Set(ctx, r.key, data, r.ttl).Err(), "[redisrepo.Save] Set")
}

func (r *Repo) Clear(ctx context.Context) error {
	return errors.Wrap(r.client.Del(ctx, r.key).Err(), "[redisrepo.Clear] Del")
}
