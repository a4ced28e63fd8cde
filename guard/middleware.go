package guard

import (
	"net/http"

	"github.com/jrsteele09/go-cinema-client/sessions"
)

// StateSource is satisfied by *sessions.Store.
type StateSource interface {
	State() sessions.State
}

// Middleware applies g to every request once bootstrap has completed. Requests
// arriving earlier wait for ready; if the request ends first it gets a 503.
func Middleware(src StateSource, ready <-chan struct{}, g Guard) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-ready:
			case <-r.Context().Done():
				http.Error(w, "session initialising", http.StatusServiceUnavailable)
				return
			}

			d := g(src.State())
			if !d.Allow {
				http.Redirect(w, r, d.Redirect, http.StatusSeeOther)
				return
			}
			next(w, r)
		}
	}
}
