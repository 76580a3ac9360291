package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string, roles []string, expiresIn time.Duration) string {
	t.Helper()
	claims := CatalogClaims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestProperty_ProtectedEndpointsRejectMissingTokens(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("requests without authorization header are rejected", prop.ForAll(
		func(pathSuffix string, method string) bool {
			handler := AuthMiddleware(testSecret, zap.NewNop())(okHandler())

			path := "/products/" + pathSuffix
			req := httptest.NewRequest(method, path, nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AlphaString(),
		gen.OneConstOf("POST", "PUT", "PATCH", "DELETE"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ExpiredTokensAreRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("expired tokens are rejected with 401", prop.ForAll(
		func(subject string, role string) bool {
			handler := AuthMiddleware(testSecret, zap.NewNop())(okHandler())

			req := httptest.NewRequest("POST", "/products", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, subject, []string{role}, -time.Hour))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.Identifier(),
		gen.OneConstOf(RoleSeller, RoleAdmin),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_ValidTokensCarrySubjectAndRoles(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("valid tokens expose subject and roles to the handler", prop.ForAll(
		func(subject string, role string) bool {
			var gotSubject string
			var gotRoles []string

			handler := AuthMiddleware(testSecret, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotSubject, _ = GetSubject(r.Context())
				gotRoles, _ = GetRoles(r.Context())
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest("GET", "/products", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, subject, []string{role}, time.Hour))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Code == http.StatusOK &&
				gotSubject == subject &&
				len(gotRoles) == 1 && gotRoles[0] == role
		},
		gen.Identifier(),
		gen.OneConstOf(RoleSeller, RoleAdmin, "CUSTOMER"),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_InvalidTokenFormatRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("arbitrary strings are not accepted as tokens", prop.ForAll(
		func(invalidToken string) bool {
			handler := AuthMiddleware(testSecret, zap.NewNop())(okHandler())

			req := httptest.NewRequest("POST", "/products", nil)
			req.Header.Set("Authorization", "Bearer "+invalidToken)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			return w.Code == http.StatusUnauthorized
		},
		gen.AnyString(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAuthMiddleware_RejectsForeignSignature(t *testing.T) {
	handler := AuthMiddleware(testSecret, zap.NewNop())(okHandler())

	req := httptest.NewRequest("POST", "/products", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "seller-1", []string{RoleSeller}, time.Hour))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), CodeInvalidToken)
}

func TestAuthMiddleware_RequiresSubject(t *testing.T) {
	handler := AuthMiddleware(testSecret, zap.NewNop())(okHandler())

	req := httptest.NewRequest("POST", "/products", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "", []string{RoleSeller}, time.Hour))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MissingBearerPrefix(t *testing.T) {
	handler := AuthMiddleware(testSecret, zap.NewNop())(okHandler())

	req := httptest.NewRequest("POST", "/products", nil)
	req.Header.Set("Authorization", signToken(t, testSecret, "seller-1", []string{RoleSeller}, time.Hour))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
