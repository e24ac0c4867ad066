package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionTokenPurpose = "unlock"
	DefaultSessionTTL   = 12 * time.Hour
)

var (
	ErrSessionTokenMissing         = errors.New("missing session token")
	ErrSessionTokenInvalid         = errors.New("invalid session token")
	ErrSessionTokenInvalidPurpose  = errors.New("invalid session token purpose")
	ErrSessionTokenExpired         = errors.New("expired session token")
	ErrSessionTokenInvalidPinState = errors.New("invalid session token pin state")
)

// SessionClaims are issued after a successful PIN unlock. PinState binds the
// token to the PIN hash it was issued for.
type SessionClaims struct {
	Purpose  string `json:"purpose"`
	PinState string `json:"pin_state"`
	jwt.RegisteredClaims
}

func BuildSessionToken(secretKey []byte, pinHash string, ttl time.Duration, now time.Time) (string, error) {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if now.IsZero() {
		now = time.Now()
	}

	pinState := PinStateFingerprint(pinHash)
	if pinState == "" {
		return "", ErrSessionTokenInvalidPinState
	}

	claims := SessionClaims{
		Purpose:  sessionTokenPurpose,
		PinState: pinState,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

func ParseSessionToken(secretKey []byte, rawToken string, now time.Time) (*SessionClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrSessionTokenMissing
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secretKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionTokenExpired
		}
		return nil, ErrSessionTokenInvalid
	}
	if !token.Valid {
		return nil, ErrSessionTokenInvalid
	}
	if claims.Purpose != sessionTokenPurpose {
		return nil, ErrSessionTokenInvalidPurpose
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(now) {
		return nil, ErrSessionTokenExpired
	}
	if strings.TrimSpace(claims.PinState) == "" {
		return nil, ErrSessionTokenInvalidPinState
	}
	return claims, nil
}

func PinStateFingerprint(pinHash string) string {
	normalizedHash := strings.TrimSpace(pinHash)
	if normalizedHash == "" {
		return ""
	}

	sum := sha256.Sum256([]byte("cyclecast.session.pin-state.v1:" + normalizedHash))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func IsPinStateFingerprintMatch(expected string, pinHash string) bool {
	actual := PinStateFingerprint(pinHash)
	if strings.TrimSpace(expected) == "" || strings.TrimSpace(actual) == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
