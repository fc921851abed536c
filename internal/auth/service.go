package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/employee-directory/internal"
)

// TokenGenerator issues and verifies bearer tokens.
type TokenGenerator interface {
	GenerateAccessToken(subject string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims carries the token subject and expiry; nothing else is trusted.
type Claims struct {
	jwt.RegisteredClaims
}

// Service authenticates the single configured credential and delegates
// token work to the generator.
type Service struct {
	username       string
	passwordHash   []byte
	tokenGenerator TokenGenerator
}

// NewService wires the configured credential. A plain configured password
// is hashed once here so every comparison goes through bcrypt.
func NewService(cfg internal.SecurityConfig, tokenGen TokenGenerator) (*Service, error) {
	hash := cfg.AdminPasswordHash
	if hash == "" {
		generated, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		hash = string(generated)
	}

	return &Service{
		username:       cfg.AdminUsername,
		passwordHash:   []byte(hash),
		tokenGenerator: tokenGen,
	}, nil
}

// Authenticate checks the credential pair and issues a token. Failures are
// indistinguishable: callers never learn which field was wrong.
func (s *Service) Authenticate(dto LoginDTO) (AuthToken, error) {
	if err := dto.Validate(); err != nil {
		return AuthToken{}, err
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(dto.Username), []byte(s.username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(dto.Password))
	if !usernameOK || passwordErr != nil {
		return AuthToken{}, internal.ErrInvalidCredentials
	}

	accessToken, err := s.tokenGenerator.GenerateAccessToken(dto.Username)
	if err != nil {
		return AuthToken{}, internal.NewInternalError("failed to issue token", err)
	}

	return AuthToken{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

// ValidateAccessToken verifies signature and expiry.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}

// JWTTokenGenerator signs HS256 tokens with a shared secret.
type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

func NewJWTTokenGenerator(secret string, ttl time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		Secret:         []byte(secret),
		AccessTokenTTL: ttl,
	}
}

// GenerateAccessToken encodes the subject with an expiry a fixed duration
// in the future.
func (j *JWTTokenGenerator) GenerateAccessToken(subject string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

// ValidateToken checks signature and expiry. Missing, malformed, mis-signed
// and expired tokens are all rejected identically.
func (j *JWTTokenGenerator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.Secret, nil
	})
	if err != nil {
		return nil, internal.ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, internal.ErrInvalidToken
	}

	return claims, nil
}
