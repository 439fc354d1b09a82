// Package identity resolves bearer credentials issued by the external
// identity provider. This service never creates or mutates users; it
// only verifies tokens and extracts the user id.
package identity

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/apexwear/motionstudio-backend/internal/platform/logger"
)

type Verifier interface {
	// UserIDFromToken validates tokenString and returns the user id it
	// was issued for.
	UserIDFromToken(tokenString string) (uuid.UUID, error)
}

type verifier struct {
	log       *logger.Logger
	secretKey []byte
}

func NewVerifier(log *logger.Logger, secretKey string) (Verifier, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if strings.TrimSpace(secretKey) == "" {
		return nil, fmt.Errorf("missing identity secret key")
	}
	return &verifier{
		log:       log.With("service", "IdentityVerifier"),
		secretKey: []byte(secretKey),
	}, nil
}

func (v *verifier) UserIDFromToken(tokenString string) (uuid.UUID, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return uuid.Nil, fmt.Errorf("missing token")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secretKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil || strings.TrimSpace(sub) == "" {
		return uuid.Nil, fmt.Errorf("token missing subject")
	}
	userID, err := uuid.Parse(strings.TrimSpace(sub))
	if err != nil {
		return uuid.Nil, fmt.Errorf("token subject is not a user id: %w", err)
	}
	return userID, nil
}
