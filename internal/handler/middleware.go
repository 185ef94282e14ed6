package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/segyhp/debt-ledger/pkg/response"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	loggerCtxKey  = contextKey("logger")
	requestCtxKey = contextKey("request")
	accountCtxKey = contextKey("account")
)

// requestInfo is filled while the request travels down the chain
type requestInfo struct {
	account string
}

// RequestLogger injects a request scoped logger and logs every completed request
func RequestLogger(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := uuid.NewString()

			logger := baseLogger.With(
				slog.String("request_id", requestID),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			info := &requestInfo{}

			w.Header().Set("X-Request-ID", requestID)
			ctx := context.WithValue(r.Context(), loggerCtxKey, logger)
			ctx = context.WithValue(ctx, requestCtxKey, info)

			recorder := response.NewStatusRecorder(w)
			next.ServeHTTP(recorder, r.WithContext(ctx))

			attrs := []any{
				slog.Int("status", recorder.StatusCode),
				slog.Duration("latency", time.Since(start)),
			}
			if info.account != "" {
				attrs = append(attrs, slog.String("account", info.account))
			}
			logger.Info("Request completed", attrs...)
		})
	}
}

// LoggerFromContext returns the request scoped logger, or the default one
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerCtxKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// AccountFromContext returns the account handle of an authenticated request
func AccountFromContext(ctx context.Context) (string, bool) {
	account, ok := ctx.Value(accountCtxKey).(string)
	return account, ok && account != ""
}

// AuthMiddleware only lets through requests carrying a valid HS256 bearer
// token; the token subject becomes the account handle
func AuthMiddleware(jwtSecret, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := LoggerFromContext(r.Context())

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Authorization header missing")
				response.Unauthorized(w, "Authorization header required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				logger.Warn("Authorization header format invalid")
				response.Unauthorized(w, "Authorization header format must be Bearer {token}")
				return
			}

			opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
			if issuer != "" {
				opts = append(opts, jwt.WithIssuer(issuer))
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			}, opts...)
			if err != nil || !token.Valid {
				logger.Warn("Invalid token", slog.Any("error", err))
				msg := "Invalid token"
				if errors.Is(err, jwt.ErrTokenExpired) {
					msg = "Token has expired"
				}
				response.Unauthorized(w, msg)
				return
			}

			if claims.Subject == "" {
				logger.Warn("Subject missing from valid token")
				response.Unauthorized(w, "Invalid token claims")
				return
			}

			if info, ok := r.Context().Value(requestCtxKey).(*requestInfo); ok {
				info.account = claims.Subject
			}
			ctx := context.WithValue(r.Context(), accountCtxKey, claims.Subject)
			ctx = context.WithValue(ctx, loggerCtxKey, logger.With(slog.String("account", claims.Subject)))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
