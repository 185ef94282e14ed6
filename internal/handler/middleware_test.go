package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/segyhp/debt-ledger/internal/domain"
	"github.com/segyhp/debt-ledger/internal/mocks"
	"github.com/segyhp/debt-ledger/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    "ledger-tests",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedBody   string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Bearer {token}"},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized, "Invalid token"},
		{"wrong secret", "Bearer " + signToken(t, "other", "acc-1", time.Hour), http.StatusUnauthorized, "Invalid token"},
		{"expired", "Bearer " + signToken(t, testSecret, "acc-1", -time.Hour), http.StatusUnauthorized, "Token has expired"},
		{"no subject", "Bearer " + signToken(t, testSecret, "", time.Hour), http.StatusUnauthorized, "Invalid token claims"},
		{"valid", "Bearer " + signToken(t, testSecret, "acc-1", time.Hour), http.StatusOK, "acc-1"},
	}

	handler := AuthMiddleware(testSecret, "ledger-tests")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, _ := AccountFromContext(r.Context())
		_, _ = w.Write([]byte(account))
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/debtors", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
		})
	}
}

func TestAuthMiddleware_RejectsWrongIssuer(t *testing.T) {
	handler := AuthMiddleware(testSecret, "identity.example")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "acc-1", time.Hour))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AuthGuardsAPIOnly(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	svc := &mocks.MockLedgerService{}
	svc.On("Metrics", mock.Anything).Return(&domain.Metrics{}, nil).Once()

	health := NewHealthHandler(repository.NewLedgerStore(repository.NewMemoryBlob()), time.Second)
	router := NewRouter(NewDebtorHandler(svc, &mocks.MockExporter{}), health, RouterOptions{
		Logger:    logger,
		JWTSecret: testSecret,
		Issuer:    "ledger-tests",
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "acc-42", time.Hour))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// last log line is the completed authenticated request
	lines := bytes.Split(bytes.TrimSpace(logs.Bytes()), []byte("\n"))
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	assert.Equal(t, "Request completed", entry["msg"])
	assert.Equal(t, "acc-42", entry["account"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])

	svc.AssertExpectations(t)
}
