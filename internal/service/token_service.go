package service

import (
	"fmt"
	"time"

	"auction-ledger/internal/core/ports"
	"auction-ledger/pkg/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// callbackClaims is the signed claim set handed to the payment provider. The
// provider echoes the token back on its callback, which proves the callback
// targets the payment we opened with it.
type callbackClaims struct {
	ProviderRef string `json:"ref"`
	jwt.RegisteredClaims
}

// CallbackTokenServiceImpl implements ports.CallbackTokenService with HS256.
type CallbackTokenServiceImpl struct {
	secret []byte
	expiry time.Duration
	issuer string
}

// NewCallbackTokenService creates a new CallbackTokenServiceImpl.
func NewCallbackTokenService(secret string, expiry time.Duration, issuer string) *CallbackTokenServiceImpl {
	return &CallbackTokenServiceImpl{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
	}
}

// Generate signs a callback token bound to the payment and provider reference.
func (s *CallbackTokenServiceImpl) Generate(paymentID uuid.UUID, providerRef string) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(s.expiry)

	claims := callbackClaims{
		ProviderRef: providerRef,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   paymentID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign callback token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate verifies signature, expiry and issuer, and extracts the claims.
func (s *CallbackTokenServiceImpl) Validate(tokenString string) (*ports.CallbackClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &callbackClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, apperror.ErrInvalidCallbackToken()
	}

	claims, ok := token.Claims.(*callbackClaims)
	if !ok || !token.Valid {
		return nil, apperror.ErrInvalidCallbackToken()
	}

	paymentID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, apperror.ErrInvalidCallbackToken()
	}

	return &ports.CallbackClaims{
		PaymentID:   paymentID,
		ProviderRef: claims.ProviderRef,
	}, nil
}
