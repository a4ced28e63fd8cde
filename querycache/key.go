package querycache

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"

	ierrors "github.com/jrsteele09/go-cinema-client/internal/errors"
	"github.com/pkg/errors"
)

// Filters is a key segment built from named query parameters. Nil values are
// dropped, and keys are encoded in sorted order, so two maps describing the same
// query always produce the same segment.
type Filters map[string]any

// Key is an ordered list of encoded segments. A key is a prefix of another when
// its segments match the other's leading segments.
type Key struct {
	segs []string
}

// NewKey encodes parts into a key. Supported parts are strings, booleans,
// numbers, nil, pointers to those, and Filters.
func NewKey(parts ...any) (Key, error) {
	return Key{}.Extend(parts...)
}

// MustKey is NewKey for static key factories. It panics on an unsupported part.
func MustKey(parts ...any) Key {
	k, err := NewKey(parts...)
	if err != nil {
		panic(err)
	}
	return k
}

// Extend returns a new key with parts appended. The receiver is not modified.
func (k Key) Extend(parts ...any) (Key, error) {
	segs := make([]string, len(k.segs), len(k.segs)+len(parts))
	copy(segs, k.segs)
	for i, p := range parts {
		s, err := encodePart(p)
		if err != nil {
			return Key{}, errors.Wrapf(err, "[Key.Extend] part %d", i)
		}
		segs = append(segs, s)
	}
	return Key{segs: segs}, nil
}

// With is Extend for static key factories.
func (k Key) With(parts ...any) Key {
	ext, err := k.Extend(parts...)
	if err != nil {
		panic(err)
	}
	return ext
}

func (k Key) Len() int {
	return len(k.segs)
}

func (k Key) IsZero() bool {
	return len(k.segs) == 0
}

// HasPrefix compares whole segments, so ["movies","detail",1] is not under
// ["movies","detail",10].
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix.segs) > len(k.segs) {
		return false
	}
	for i, s := range prefix.segs {
		if k.segs[i] != s {
			return false
		}
	}
	return true
}

func (k Key) Equal(other Key) bool {
	return len(k.segs) == len(other.segs) && k.HasPrefix(other)
}

func (k Key) String() string {
	return "[" + strings.Join(k.segs, ",") + "]"
}

// id is the map key for the cache and the singleflight group. Encoded segments
// never contain raw control characters, so the separator is unambiguous.
func (k Key) id() string {
	return strings.Join(k.segs, "\x1f")
}

func encodePart(p any) (string, error) {
	switch v := p.(type) {
	case nil:
		return "null", nil
	case Filters:
		return encodeFilters(v)
	case map[string]any:
		return encodeFilters(Filters(v))
	}

	rv := reflect.ValueOf(p)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "null", nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		// Named types (MovieStatus etc.) encode as their underlying value.
		b, err := json.Marshal(underlying(rv))
		if err != nil {
			return "", errors.Wrapf(ierrors.ErrInvalidKey, "%T: %v", p, err)
		}
		return string(b), nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		f := make(Filters, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			f[iter.Key().String()] = iter.Value().Interface()
		}
		return encodeFilters(f)
	}
	return "", errors.Wrapf(ierrors.ErrInvalidKey, "unsupported key part %T", p)
}

func underlying(rv reflect.Value) any {
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	default:
		return rv.Float()
	}
}

func encodeFilters(f Filters) (string, error) {
	names := make([]string, 0, len(f))
	for name, v := range f {
		if isNil(v) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteByte('{')
	for i, name := range names {
		enc, err := encodePart(f[name])
		if err != nil {
			return "", errors.Wrapf(err, "filter %q", name)
		}
		if i > 0 {
			b.WriteByte(',')
		}
		nb, _ := json.Marshal(name)
		b.Write(nb)
		b.WriteByte(':')
		b.WriteString(enc)
	}
	b.WriteByte('}')
	return b.String(), nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
