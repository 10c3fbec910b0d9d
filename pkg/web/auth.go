package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/protei/gtp/pkg/config"
)

const tokenLifetime = 12 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// Auth issues and validates JWT bearer tokens against the configured
// user table of bcrypt password hashes.
type Auth struct {
	enabled bool
	secret  []byte
	users   map[string]string
}

// Claims is the JWT claim set carried by gtpmon tokens.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// NewAuth builds the authenticator from the web configuration.
func NewAuth(cfg *config.Config) (*Auth, error) {
	if cfg.Web.AuthEnabled && len(cfg.Web.Users) == 0 {
		return nil, fmt.Errorf("auth enabled but no users configured")
	}
	return &Auth{
		enabled: cfg.Web.AuthEnabled,
		secret:  []byte(cfg.Web.JWTSecret),
		users:   cfg.Web.Users,
	}, nil
}

// Login verifies the password and returns a signed token.
func (a *Auth) Login(username, password string) (string, error) {
	hash, ok := a.users[username]
	if !ok {
		// Burn comparable time for unknown users.
		bcrypt.CompareHashAndPassword([]byte("$2a$10$0000000000000000000000"), []byte(password))
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
			Issuer:    "gtpmon",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authorize validates the bearer token of an incoming request.
func (a *Auth) Authorize(r *http.Request) error {
	if !a.enabled {
		return nil
	}
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		// Websocket clients cannot always set headers.
		raw = r.URL.Query().Get("token")
	}
	if raw == "" {
		return ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for the users table in
// the configuration file.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
