package sessions

import (
	"github.com/jrsteele09/go-cinema-client/cinemamodel"
	"golang.org/x/oauth2"
)

// Persisted is the only session shape that reaches durable storage. It has no
// token field: the access token lives in process memory and nowhere else.
type Persisted struct {
	User            *cinemamodel.UserInfo `json:"user"`
	IsAuthenticated bool                  `json:"isAuthenticated"`
}

// Valid reports whether the snapshot is internally consistent.
func (p Persisted) Valid() bool {
	return !p.IsAuthenticated || p.User != nil
}

// State is a copy of the in-memory session.
// IsAuthenticated implies User != nil. Token may be nil while authenticated, e.g.
// after a restart and before renewal.
type State struct {
	User            *cinemamodel.UserInfo
	Token           *oauth2.Token
	IsAuthenticated bool
}

func (s State) HasToken() bool {
	return s.Token != nil && s.Token.AccessToken != ""
}

func (s State) Role() cinemamodel.Role {
	if s.User == nil {
		return ""
	}
	return s.User.Role
}
