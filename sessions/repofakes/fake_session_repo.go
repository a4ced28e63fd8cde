package fakesessionrepo

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jrsteele09/go-cinema-client/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo keeps the snapshot in memory and records the JSON of every save,
// so tests can inspect exactly what would have reached durable storage.
type FakeSessionRepo struct {
	current *sessions.Persisted
	writes  [][]byte
	loadErr error
	saveErr error
	lock    sync.RWMutex
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{}
}

// Seed sets the snapshot Load returns, as if written by a previous run.
func (r *FakeSessionRepo) Seed(p sessions.Persisted) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.current = &p
}

func (r *FakeSessionRepo) FailLoad(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.loadErr = err
}

func (r *FakeSessionRepo) FailSave(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.saveErr = err
}

func (r *FakeSessionRepo) Load(_ context.Context) (*sessions.Persisted, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.current == nil {
		return nil, nil
	}
	p := *r.current
	return &p, nil
}

func (r *FakeSessionRepo) Save(_ context.Context, p sessions.Persisted) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	r.writes = append(r.writes, data)
	r.current = &p
	return nil
}

func (r *FakeSessionRepo) Clear(_ context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.current = nil
	return nil
}

// Writes returns the encoded form of every snapshot saved so far.
func (r *FakeSessionRepo) Writes() [][]byte {
	r.lock.RLock()
	defer r.lock.RUnlock()
	out := make([][]byte, len(r.writes))
	copy(out, r.writes)
	return out
}
