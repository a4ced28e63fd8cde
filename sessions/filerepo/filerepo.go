// Package filerepo stores the session snapshot in a local file, encrypted when a
// passphrase is configured.
package filerepo

import (
	"context"
	"encoding/json"

	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/jrsteele09/go-cinema-client/internal/secretfile"
	"github.com/jrsteele09/go-cinema-client/sessions"
	"github.com/pkg/errors"
)

var _ sessions.Repo = (*Repo)(nil)

type Repo struct {
	file *secretfile.File
}

func New(file *secretfile.File) *Repo {
	return &Repo{file: file}
}

func (r *Repo) Load(_ context.Context) (*sessions.Persisted, error) {
	data, err := r.file.Read()
	if errors.Is(err, ierrors.ErrNotFound) {
		return nil, nil
	}
	if errors.Is(err, ierrors.ErrWrongPassphrase) {
		return nil, errors.Wrapf(ierrors.ErrCorruptSnapshot, "[filerepo.Load] %v", err)
	}
	if err != nil {
		return nil, errors.Wrap(err, "[filerepo.Load]")
	}

	var p sessions.Persisted
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(ierrors.ErrCorruptSnapshot, "[filerepo.Load] %v", err)
	}
	return &p, nil
}

func (r *Repo) Save(_ context.Context, p sessions.Persisted) error {
	data, err := json.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "[filerepo.Save] json.Marshal")
	}
	return errors.Wrap(r.file.Write(data), "[filerepo.Save]")
}

func (r *Repo) Clear(_ context.Context) error {
	return errors.Wrap(r.file.Remove(), "[filerepo.Clear]")
}
