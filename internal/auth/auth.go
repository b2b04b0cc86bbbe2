// package auth issues and verifies the HS256 tokens used for API sessions and
// for the calendar OAuth state, and hashes account passwords.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/YusovID/campus-prep/internal/apperrors"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	audienceSession = "campus-prep"
	audienceOAuth   = "calendar-oauth"
)

// Claims is the payload of a session token.
type Claims struct {
	Handle string `json:"handle,omitempty"`
	jwt.RegisteredClaims
}

// Identity is the authenticated caller extracted from a token.
type Identity struct {
	UserID string
	Handle string
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue returns a session token for the user.
func (m *TokenManager) Issue(userID, handle string) (string, error) {
	return m.sign(userID, handle, audienceSession, m.ttl)
}

// Verify parses a session token.
func (m *TokenManager) Verify(token string) (Identity, error) {
	claims, err := m.parse(token, audienceSession)
	if err != nil {
		return Identity{}, err
	}

	return Identity{UserID: claims.Subject, Handle: claims.Handle}, nil
}

// IssueState returns a short-lived token binding an OAuth round trip to userID.
func (m *TokenManager) IssueState(userID string, ttl time.Duration) (string, error) {
	return m.sign(userID, "", audienceOAuth, ttl)
}

// VerifyState returns the user the OAuth round trip was started for.
func (m *TokenManager) VerifyState(state string) (string, error) {
	claims, err := m.parse(state, audienceOAuth)
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}

func (m *TokenManager) sign(subject, handle, audience string, ttl time.Duration) (string, error) {
	now := m.now()

	claims := Claims{
		Handle: handle,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (m *TokenManager) parse(token, audience string) (*Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", apperrors.ErrUnauthorized)
		}

		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}

	if !parsed.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("%w: invalid token", apperrors.ErrUnauthorized)
	}

	return &claims, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// CheckPassword returns apperrors.ErrInvalidCredentials on mismatch.
func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return apperrors.ErrInvalidCredentials
	}

	return nil
}
