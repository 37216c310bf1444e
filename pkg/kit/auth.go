package kit

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const APIKeyHeader = "api-key"

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	tok := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return tok, tok != ""
}

func MetricsAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			got, ok := bearerToken(r)
			if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// BoundaryAuth guards a mounted service. A request passes when it carries a
// valid HS256 bearer token (JWTSecret set) or an api-key header matching the
// bcrypt APIKeyHash (APIKeyHash set). With neither configured every request passes.
type BoundaryAuth struct {
	JWTSecret  string
	APIKeyHash string
	Issuer     string
}

func (a BoundaryAuth) Enabled() bool {
	return a.JWTSecret != "" || a.APIKeyHash != ""
}

func (a BoundaryAuth) Middleware(next http.Handler) http.Handler {
	if !a.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.APIKeyHash != "" {
			if key := r.Header.Get(APIKeyHeader); key != "" {
				if bcrypt.CompareHashAndPassword([]byte(a.APIKeyHash), []byte(key)) == nil {
					next.ServeHTTP(w, r)
					return
				}
				WriteError(w, r, http.StatusUnauthorized, "invalid api key", nil)
				return
			}
		}

		if a.JWTSecret != "" {
			tok, ok := bearerToken(r)
			if !ok {
				WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
				return
			}
			if err := a.verifyToken(tok); err != nil {
				WriteError(w, r, http.StatusUnauthorized, "invalid token", nil)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		WriteError(w, r, http.StatusUnauthorized, "missing api key", nil)
	})
}

func (a BoundaryAuth) verifyToken(tokenStr string) error {
	var claims jwt.RegisteredClaims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(a.JWTSecret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return errors.New("invalid token")
	}

	if a.Issuer != "" && claims.Issuer != "" && claims.Issuer != a.Issuer {
		return errors.New("invalid issuer")
	}
	return nil
}
