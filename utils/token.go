package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTokenType  = "access"
	RefreshTokenType = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

// TokenClaims is the JWT payload. Access tokens carry the id of the refresh
// record they were issued with in RefreshID.
type TokenClaims struct {
	UserID    uint   `json:"user_id"`
	TokenType string `json:"token_type"`
	RefreshID string `json:"rti,omitempty"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// IssuedPair is a token pair plus the refresh identity the caller must persist.
type IssuedPair struct {
	Tokens           TokenPair
	RefreshID        string
	RefreshExpiresAt time.Time
}

// TokenIssuer signs and verifies HS256 tokens.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock replaces the time source; used by tests.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

func (i *TokenIssuer) Now() time.Time {
	return i.now()
}

func (i *TokenIssuer) IssuePair(userID uint) (*IssuedPair, error) {
	now := i.now()
	refreshID := uuid.New().String()
	refreshExp := now.Add(i.refreshTTL)

	refresh, err := i.sign(TokenClaims{
		UserID:           userID,
		TokenType:        RefreshTokenType,
		RegisteredClaims: i.registered(userID, refreshID, now, refreshExp),
	})
	if err != nil {
		return nil, err
	}
	access, err := i.IssueAccess(userID, refreshID)
	if err != nil {
		return nil, err
	}
	return &IssuedPair{
		Tokens:           TokenPair{Access: access, Refresh: refresh},
		RefreshID:        refreshID,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (i *TokenIssuer) IssueAccess(userID uint, refreshID string) (string, error) {
	now := i.now()
	return i.sign(TokenClaims{
		UserID:           userID,
		TokenType:        AccessTokenType,
		RefreshID:        refreshID,
		RegisteredClaims: i.registered(userID, uuid.New().String(), now, now.Add(i.accessTTL)),
	})
}

func (i *TokenIssuer) registered(userID uint, id string, now, exp time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        id,
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
}

func (i *TokenIssuer) sign(claims TokenClaims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, expiry and token type.
func (i *TokenIssuer) Parse(raw, tokenType string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
