package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"referral-server/internal/observability"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "referral-server"

var (
	ErrExpiredToken    = errors.New("token expired")
	ErrParseJWTToken   = errors.New("failed to parse token")
	ErrInvalidJWTToken = errors.New("invalid token")
	ErrMissingSubject  = errors.New("token has no subject")
)

type AuthProcessor struct {
	secret []byte
	logger *observability.Logger
}

func New(jwtSecret string, logger *observability.Logger) AuthProcessor {
	return AuthProcessor{secret: []byte(jwtSecret), logger: logger}
}

// IssueToken signs an HS256 token whose subject is userID.
func (p *AuthProcessor) IssueToken(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenIssuer},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		p.logger.Error(ctx, "failed to sign token", err)
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateJWTToken returns the user id carried in a valid token.
func (p *AuthProcessor) ValidateJWTToken(ctx context.Context, token string) (string, error) {
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenIssuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			p.logger.InfoWithError(ctx, "token expired", err)
			return "", ErrExpiredToken
		}
		p.logger.InfoWithError(ctx, "failed to parse token", err)
		return "", ErrParseJWTToken
	}
	if !t.Valid {
		return "", ErrInvalidJWTToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrMissingSubject
	}
	return sub, nil
}
