package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/kidgames/internal/game"
	"github.com/robalobadob/kidgames/internal/store"
)

// Tokens outlive idle expiry so an active session never loses its token;
// the janitor decides when a session is gone.
const tokenLifetime = 24 * time.Hour

var errTokenSession = errors.New("token issued for another session")

// sessionClaims binds a token to one session.
type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

type tokens struct {
	secret   []byte
	lifetime time.Duration
}

// sign creates an HS256 token for session id.
func (t tokens) sign(id string, now time.Time) (string, time.Time, error) {
	exp := now.Add(t.lifetime)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

// verify checks the signature and expiry and that the token names id.
func (t tokens) verify(raw, id string) error {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return err
	}
	if claims.SID != id {
		return errTokenSession
	}
	return nil
}

// bearerOrQuery extracts a token from the Authorization header or, for
// websocket clients that cannot set headers, the token query parameter.
func bearerOrQuery(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return r.URL.Query().Get("token")
}

// ctxSessionKey is the context key type for the authorised session.
type ctxSessionKey struct{}

// requireSession enforces a valid token for {id} and injects the session
// into the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		raw := bearerOrQuery(r)
		if raw == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err := s.tokens.verify(raw, id); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}
		sess, err := s.store.Get(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session_not_found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store_failed")
			return
		}
		ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func currentSession(r *http.Request) game.Session {
	s, _ := r.Context().Value(ctxSessionKey{}).(game.Session)
	return s
}
