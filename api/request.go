package api

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// FilePart is one file in a multipart upload.
type FilePart struct {
	Field       string // form field name ("file" or "files")
	FileName    string
	ContentType string // defaults to application/octet-stream
	Content     io.Reader
}

type request struct {
	query   url.Values
	headers map[string]string
	parts   []FilePart
	noRenew bool
	noAuth  bool
}

type RequestOption func(*request)

// Query adds a query parameter. Empty values are still sent.
func Query(key, value string) RequestOption {
	return func(r *request) {
		r.query.Add(key, value)
	}
}

// QueryInt adds key only when v is set.
func QueryInt(key string, v *int) RequestOption {
	return func(r *request) {
		if v != nil {
			r.query.Add(key, strconv.Itoa(*v))
		}
	}
}

// QueryString adds key only when v is set.
func QueryString(key string, v *string) RequestOption {
	return func(r *request) {
		if v != nil {
			r.query.Add(key, *v)
		}
	}
}

func Header(key, value string) RequestOption {
	return func(r *request) {
		r.headers[key] = value
	}
}

// Multipart sends parts as multipart/form-data instead of a JSON body.
func Multipart(parts ...FilePart) RequestOption {
	return func(r *request) {
		r.parts = append(r.parts, parts...)
	}
}

// NoRenew excludes the request from renew-and-retry on 401. Session lifecycle
// calls use it so a failed login or refresh never triggers another refresh.
func NoRenew() RequestOption {
	return func(r *request) {
		r.noRenew = true
	}
}

// Anonymous suppresses the Authorization header.
func Anonymous() RequestOption {
	return func(r *request) {
		r.noAuth = true
	}
}

func newRequest(opts []RequestOption) *request {
	r := &request{query: url.Values{}, headers: map[string]string{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// encodeBody returns the payload and content type. It is built once so a retry can
// replay it.
func (r *request) encodeBody(body any) ([]byte, string, error) {
	if len(r.parts) > 0 {
		return encodeMultipart(r.parts)
	}
	if body == nil {
		return nil, "", nil
	}
	data, err := json.Marshal(body)
	if err != nil {
		return nil, "", errors.Wrap(err, "[request.encodeBody] json.Marshal")
	}
	return data, "application/json", nil
}

func encodeMultipart(parts []FilePart) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		ct := p.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", multipartDisposition(p.Field, p.FileName))
		h.Set("Content-Type", ct)
		pw, err := w.CreatePart(h)
		if err != nil {
			return nil, "", errors.Wrap(err, "[encodeMultipart] CreatePart")
		}
		if _, err := io.Copy(pw, p.Content); err != nil {
			return nil, "", errors.Wrapf(err, "[encodeMultipart] copy %s", p.FileName)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "[encodeMultipart] Close")
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func multipartDisposition(field, file string) string {
	return `form-data; name="` + escapeQuotes(field) + `"; filename="` + escapeQuotes(file) + `"`
}

func escapeQuotes(s string) string {
	var b bytes.Buffer
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
