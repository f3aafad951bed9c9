package appMiddleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const ClientIDKey contextKey = "clientID"

const (
	ClientCookieName  = "stp_client"
	ClientTokenHeader = "X-Client-Token"
	clientIssuer      = "smart-travel-planner"
)

var ErrInvalidClientToken = errors.New("invalid client token")

// ClientClaims identifies one browser. The subject is the client UUID that
// scopes its session and its saved plan.
type ClientClaims struct {
	jwt.RegisteredClaims
}

// ClientScope gives every browser a stable anonymous identity carried in a
// signed cookie.
type ClientScope struct {
	secret []byte
	ttl    time.Duration
	secure bool
	logger *slog.Logger
}

func NewClientScope(secret string, ttl time.Duration, secure bool, logger *slog.Logger) *ClientScope {
	if ttl <= 0 {
		ttl = 365 * 24 * time.Hour
	}
	return &ClientScope{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
		logger: logger,
	}
}

// Issue signs a token for clientID.
func (c *ClientScope) Issue(clientID uuid.UUID) (string, error) {
	now := time.Now()
	claims := ClientClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   clientID.String(),
			Issuer:    clientIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign client token: %w", err)
	}
	return signed, nil
}

// Parse validates tokenString and returns the client id it carries.
func (c *ClientScope) Parse(tokenString string) (uuid.UUID, error) {
	claims := &ClientClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithIssuer(clientIssuer))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidClientToken, err)
	}
	if !token.Valid {
		return uuid.Nil, ErrInvalidClientToken
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: bad subject: %v", ErrInvalidClientToken, err)
	}
	return id, nil
}

// Handler resolves the client id from the X-Client-Token header or the
// stp_client cookie. Requests without a valid token get a fresh id, and the
// new token is returned both as cookie and header.
func (c *ClientScope) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID, ok := c.fromRequest(r)
		if !ok {
			clientID = uuid.New()
			token, err := c.Issue(clientID)
			if err != nil {
				c.logger.ErrorContext(r.Context(), "Failed to issue client token", slog.Any("error", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     ClientCookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(c.ttl.Seconds()),
				HttpOnly: true,
				Secure:   c.secure,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set(ClientTokenHeader, token)
			c.logger.DebugContext(r.Context(), "Issued new client id", slog.String("client_id", clientID.String()))
		}

		next.ServeHTTP(w, r.WithContext(WithClientID(r.Context(), clientID)))
	})
}

func (c *ClientScope) fromRequest(r *http.Request) (uuid.UUID, bool) {
	token := r.Header.Get(ClientTokenHeader)
	if token == "" {
		if cookie, err := r.Cookie(ClientCookieName); err == nil {
			token = cookie.Value
		}
	}
	if token == "" {
		return uuid.Nil, false
	}
	id, err := c.Parse(token)
	if err != nil {
		c.logger.DebugContext(r.Context(), "Rejected client token", slog.Any("error", err))
		return uuid.Nil, false
	}
	return id, true
}

func WithClientID(ctx context.Context, clientID uuid.UUID) context.Context {
	return context.WithValue(ctx, ClientIDKey, clientID)
}

func ClientIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ClientIDKey).(uuid.UUID)
	return id, ok
}
