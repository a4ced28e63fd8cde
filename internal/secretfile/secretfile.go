// Package secretfile persists small blobs to disk, optionally sealed with a
// passphrase-derived key (argon2id + NaCl secretbox). Writes are atomic.
package secretfile

import (
	"bytes"
	"crypto/rand"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4

	filePerm = 0o600
	dirPerm  = 0o700
)

var magic = []byte("CSF1")

type File struct {
	path       string
	passphrase []byte
}

// New returns a File at path. An empty passphrase stores plaintext.
func New(path, passphrase string) *File {
	return &File{path: path, passphrase: []byte(passphrase)}
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Encrypted() bool {
	return len(f.passphrase) > 0
}

// Read returns the decrypted contents. A missing file yields ierrors.ErrNotFound.
func (f *File) Read() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ierrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[File.Read] os.ReadFile")
	}

	sealed := bytes.HasPrefix(data, magic)
	switch {
	case sealed && !f.Encrypted():
		return nil, errors.Wrap(ierrors.ErrWrongPassphrase, "[File.Read] file is encrypted, no passphrase set")
	case !sealed && f.Encrypted():
		return nil, errors.Wrap(ierrors.ErrWrongPassphrase, "[File.Read] file is not encrypted")
	case !sealed:
		return data, nil
	}
	return f.open(data[len(magic):])
}

// Write replaces the file contents via a temp file and rename.
func (f *File) Write(data []byte) error {
	out := data
	if f.Encrypted() {
		sealed, err := f.seal(data)
		if err != nil {
			return err
		}
		out = sealed
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return errors.Wrap(err, "[File.Write] os.MkdirAll")
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return errors.Wrap(err, "[File.Write] os.CreateTemp")
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[File.Write] Chmod")
	}
	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[File.Write] Write")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[File.Write] Sync")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[File.Write] Close")
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return errors.Wrap(err, "[File.Write] os.Rename")
	}
	return nil
}

// Remove deletes the file. Removing a missing file is not an error.
func (f *File) Remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, "[File.Remove] os.Remove")
	}
	return nil
}

func (f *File) seal(plain []byte) ([]byte, error) {
	var salt [saltSize]byte
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, salt[:]); err != nil {
		return nil, errors.Wrap(err, "[File.seal] salt")
	}
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, errors.Wrap(err, "[File.seal] nonce")
	}
	key := f.deriveKey(salt[:])

	out := make([]byte, 0, len(magic)+saltSize+nonceSize+len(plain)+secretbox.Overhead)
	out = append(out, magic...)
	out = append(out, salt[:]...)
	out = append(out, nonce[:]...)
	return secretbox.Seal(out, plain, &nonce, key), nil
}

func (f *File) open(body []byte) ([]byte, error) {
	if len(body) < saltSize+nonceSize+secretbox.Overhead {
		return nil, errors.Wrap(ierrors.ErrWrongPassphrase, "[File.open] truncated")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], body[saltSize:saltSize+nonceSize])
	key := f.deriveKey(body[:saltSize])

	plain, ok := secretbox.Open(nil, body[saltSize+nonceSize:], &nonce, key)
	if !ok {
		return nil, errors.Wrap(ierrors.ErrWrongPassphrase, "[File.open] secretbox.Open")
	}
	return plain, nil
}

func (f *File) deriveKey(salt []byte) *[keySize]byte {
	var key [keySize]byte
	copy(key[:], argon2.IDKey(f.passphrase, salt, argonTime, argonMemory, argonThreads, keySize))
	return &key
}
