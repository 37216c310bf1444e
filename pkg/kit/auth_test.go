package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
}

func signHS256(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "agent",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func serve(h http.Handler, headers map[string]string) int {
	req := httptest.NewRequest(http.MethodPost, "/product-catalog/rpc", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr.Code
}

func TestBoundaryAuth_DisabledPassesEverything(t *testing.T) {
	h := BoundaryAuth{}.Middleware(okHandler())
	if code := serve(h, nil); code != http.StatusOK {
		t.Fatalf("status=%d want=200", code)
	}
}

func TestBoundaryAuth_JWT(t *testing.T) {
	h := BoundaryAuth{JWTSecret: testSecret}.Middleware(okHandler())

	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"missing", nil, http.StatusUnauthorized},
		{"garbage", map[string]string{"Authorization": "Bearer nope"}, http.StatusUnauthorized},
		{"wrong secret", map[string]string{"Authorization": "Bearer " + signHS256(t, "other-secret-other-secret-other-se", time.Minute)}, http.StatusUnauthorized},
		{"expired", map[string]string{"Authorization": "Bearer " + signHS256(t, testSecret, -time.Minute)}, http.StatusUnauthorized},
		{"valid", map[string]string{"Authorization": "Bearer " + signHS256(t, testSecret, time.Minute)}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code := serve(h, tt.headers); code != tt.want {
				t.Fatalf("status=%d want=%d", code, tt.want)
			}
		})
	}
}

func TestBoundaryAuth_APIKey(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sub-key-1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h := BoundaryAuth{APIKeyHash: string(hash)}.Middleware(okHandler())

	if code := serve(h, nil); code != http.StatusUnauthorized {
		t.Fatalf("no key: status=%d", code)
	}
	if code := serve(h, map[string]string{APIKeyHeader: "wrong"}); code != http.StatusUnauthorized {
		t.Fatalf("wrong key: status=%d", code)
	}
	if code := serve(h, map[string]string{APIKeyHeader: "sub-key-1"}); code != http.StatusOK {
		t.Fatalf("good key: status=%d", code)
	}
}

func TestBoundaryAuth_EitherCredential(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sub-key-1"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	h := BoundaryAuth{JWTSecret: testSecret, APIKeyHash: string(hash)}.Middleware(okHandler())

	if code := serve(h, map[string]string{APIKeyHeader: "sub-key-1"}); code != http.StatusOK {
		t.Fatalf("api key: status=%d", code)
	}
	if code := serve(h, map[string]string{"Authorization": "Bearer " + signHS256(t, testSecret, time.Minute)}); code != http.StatusOK {
		t.Fatalf("bearer: status=%d", code)
	}
}

func TestMetricsAuth(t *testing.T) {
	if code := serve(MetricsAuth("")(okHandler()), map[string]string{"Authorization": "Bearer x"}); code != http.StatusForbidden {
		t.Fatalf("empty token: status=%d", code)
	}

	h := MetricsAuth("scrape")(okHandler())
	if code := serve(h, map[string]string{"Authorization": "Bearer wrong"}); code != http.StatusForbidden {
		t.Fatalf("wrong token: status=%d", code)
	}
	if code := serve(h, map[string]string{"Authorization": "Bearer scrape"}); code != http.StatusOK {
		t.Fatalf("good token: status=%d", code)
	}
}
