package session

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"bookbazaar/internal/apiclient"
	"bookbazaar/internal/tokenstore"
	"bookbazaar/pkg/domain"
)

// AuthAPI is the remote authentication collaborator.
type AuthAPI interface {
	Login(email, password string) (string, error)
	Signup(req apiclient.SignupRequest) error
}

// ProfileFetcher resolves the authenticated user's real profile. The current
// remote contract exposes no profile endpoint, so callers normally leave this
// nil and a provisional identity is synthesized from the email local part.
type ProfileFetcher interface {
	Fetch(token, email string) (domain.User, error)
}

// Session owns the auth token and the inferred user identity. Every token
// transition is mirrored to the durable store: write on set, delete on clear.
// Invariant: identity present implies token present.
type Session struct {
	auth     AuthAPI
	tokens   tokenstore.Store
	profiles ProfileFetcher

	mu       sync.Mutex
	token    string
	identity *domain.User
}

// New builds a session and re-hydrates the token from durable storage. A
// persisted JWT whose expiry is already past is discarded and removed from
// the store; opaque tokens are kept as-is. Identity is never hydrated, it is
// inferred lazily at login.
func New(auth AuthAPI, tokens tokenstore.Store, profiles ProfileFetcher) *Session {
	s := &Session{auth: auth, tokens: tokens, profiles: profiles}
	tok, ok, err := tokens.Load()
	if err != nil {
		slog.Warn("session: load persisted token", "err", err)
		return s
	}
	if !ok {
		return s
	}
	if tokenExpired(tok) {
		slog.Info("session: discarding expired persisted token")
		if err := tokens.Clear(); err != nil {
			slog.Warn("session: clear expired token", "err", err)
		}
		return s
	}
	s.token = tok
	return s
}

// Login exchanges credentials for a token. On success the token is stored and
// mirrored to durable storage and a provisional identity is synthesized; on
// any failure (transport or rejected credentials) state is left untouched and
// false is returned. Callers get no further error detail.
func (s *Session) Login(email, password string) bool {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return false
	}
	token, err := s.auth.Login(email, password)
	if err != nil || token == "" {
		slog.Debug("session: login rejected", "email", email)
		return false
	}
	identity := s.resolveIdentity(token, email)

	s.mu.Lock()
	s.token = token
	s.identity = &identity
	s.mu.Unlock()

	if err := s.tokens.Save(token); err != nil {
		slog.Warn("session: persist token", "err", err)
	}
	return true
}

// Signup forwards registration to the collaborator. It never authenticates
// as a side effect.
func (s *Session) Signup(req apiclient.SignupRequest) bool {
	if err := s.auth.Signup(req); err != nil {
		slog.Debug("session: signup rejected", "email", req.Email)
		return false
	}
	return true
}

// Logout clears token and identity and deletes the durable key. Idempotent.
func (s *Session) Logout() {
	s.mu.Lock()
	wasAuthenticated := s.token != ""
	s.token = ""
	s.identity = nil
	s.mu.Unlock()

	if !wasAuthenticated {
		return
	}
	if err := s.tokens.Clear(); err != nil {
		slog.Warn("session: clear persisted token", "err", err)
	}
}

// IsAuthenticated reports whether a token is held.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Token returns the current bearer token, empty when unauthenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Identity returns the current user identity, when one has been inferred.
func (s *Session) Identity() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return domain.User{}, false
	}
	return *s.identity, true
}

func (s *Session) resolveIdentity(token, email string) domain.User {
	if s.profiles != nil {
		user, err := s.profiles.Fetch(token, email)
		if err == nil {
			return user
		}
		slog.Warn("session: profile fetch failed, falling back to provisional identity", "err", err)
	}
	return provisionalIdentity(email)
}

// provisionalIdentity derives a display name from the email local part. The
// remote contract returns no profile on login, so this stands in until a
// ProfileFetcher is wired.
func provisionalIdentity(email string) domain.User {
	name := email
	if at := strings.IndexByte(email, '@'); at > 0 {
		name = email[:at]
	}
	return domain.User{Name: name, Email: email}
}

// tokenExpired inspects the unverified exp claim of a JWT. Tokens that do not
// parse as JWTs, or carry no expiry, are treated as live; the server remains
// the authority either way.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
