package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linkboard-dev/linkboard/internal/domain"
	internal_errors "github.com/linkboard-dev/linkboard/internal/errors"
	"github.com/linkboard-dev/linkboard/internal/logger"
)

// Service carries the identity resolved by the external identity provider
// across requests as a signed token. The handshake itself (OAuth) happens
// outside this process; we only transport its verified result.
type Service interface {
	NewToken(identity domain.Identity) (string, error)
	Identity(tokenStr string) (domain.Identity, error)
}

type Session struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) Service {
	return &Session{secretKey, ttl}
}

func (s *Session) NewToken(identity domain.Identity) (string, error) {
	claims := jwt.MapClaims{}
	claims["kind"] = string(identity.Kind)
	claims["email"] = identity.Email
	claims["exp"] = time.Now().Add(s.ttl).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign session token", "error", err)
		return "", errors.New("Can't create token")
	}

	return tokenString, nil
}

func (s *Session) Identity(tokenStr string) (domain.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &internal_errors.ErrorWithStatusCode{Message: fmt.Sprintf("Unexpected signing method: %v", token.Header["alg"]), StatusCode: http.StatusUnauthorized}
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		return domain.Identity{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid token signature", StatusCode: http.StatusUnauthorized}
	}
	if !token.Valid {
		return domain.Identity{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid session token", StatusCode: http.StatusUnauthorized}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
	}

	kind, _ := claims["kind"].(string)
	email, _ := claims["email"].(string)

	identity := domain.Identity{Kind: domain.IdentityKind(kind), Email: email}
	if identity.Kind != domain.IdentityInternal || identity.Email == "" {
		// Tokens for external visitors carry no email; normalize.
		identity = domain.External()
	}
	return identity, nil
}
