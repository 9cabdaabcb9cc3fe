package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/you/laborhub/domain"
)

// accessTokenClaims is the wire form of domain.AccessClaims
type accessTokenClaims struct {
	Role  string `json:"role"`
	Phone string `json:"phone,omitempty"`
	jwt.RegisteredClaims
}

// JWTServiceImpl implements domain.TokenSigner with HS256 and separate
// secrets for access and refresh tokens
type JWTServiceImpl struct {
	accessSecret    []byte
	refreshSecret   []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	now             func() time.Time
}

// NewJWTService creates a new JWT service
func NewJWTService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) *JWTServiceImpl {
	return &JWTServiceImpl{
		accessSecret:    []byte(accessSecret),
		refreshSecret:   []byte(refreshSecret),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
		now:             time.Now,
	}
}

// WithClock replaces the time source, used by tests to mint tokens in the past
func (j *JWTServiceImpl) WithClock(now func() time.Time) *JWTServiceImpl {
	j.now = now
	return j
}

// AccessTTL implements domain.TokenSigner
func (j *JWTServiceImpl) AccessTTL() time.Duration { return j.accessTokenTTL }

// RefreshTTL implements domain.TokenSigner
func (j *JWTServiceImpl) RefreshTTL() time.Duration { return j.refreshTokenTTL }

// SignAccessToken implements domain.TokenSigner
func (j *JWTServiceImpl) SignAccessToken(claims domain.AccessClaims) (string, error) {
	if len(j.accessSecret) == 0 {
		return "", fmt.Errorf("%w: access secret not configured", domain.ErrSigning)
	}

	issuedAt := claims.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = j.now()
	}
	expiresAt := claims.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = issuedAt.Add(j.accessTokenTTL)
	}

	wire := accessTokenClaims{
		Role:  claims.Role,
		Phone: claims.Phone,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(j.accessSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSigning, err)
	}
	return signed, nil
}

// ParseAccessToken implements domain.TokenSigner. Expired tokens yield
// domain.ErrTokenExpired; every other failure yields domain.ErrTokenInvalid,
// except a verified token without a usable subject (domain.ErrTokenMalformed).
func (j *JWTServiceImpl) ParseAccessToken(tokenString string) (*domain.AccessClaims, error) {
	var wire accessTokenClaims
	_, err := jwt.ParseWithClaims(tokenString, &wire, j.keyFunc(j.accessSecret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if wire.Subject == "" {
		return nil, domain.ErrTokenMalformed
	}
	userID, err := strconv.ParseUint(wire.Subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, domain.ErrTokenMalformed
	}

	claims := &domain.AccessClaims{
		UserID: uint(userID),
		Role:   wire.Role,
		Phone:  wire.Phone,
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.Time
	}
	if wire.ExpiresAt != nil {
		claims.ExpiresAt = wire.ExpiresAt.Time
	}
	return claims, nil
}

// SignRefreshToken implements domain.TokenSigner. The token carries only the
// record identifier; the user it belongs to lives in the store.
func (j *JWTServiceImpl) SignRefreshToken(tokenID string, issuedAt, expiresAt time.Time) (string, error) {
	if len(j.refreshSecret) == 0 {
		return "", fmt.Errorf("%w: refresh secret not configured", domain.ErrSigning)
	}

	wire := jwt.RegisteredClaims{
		ID:        tokenID,
		Issuer:    j.issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, wire).SignedString(j.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSigning, err)
	}
	return signed, nil
}

// ParseRefreshToken implements domain.TokenSigner. Only the signature and the
// token identifier are checked here; expiry is decided by the stored record so
// that expired records can be revoked on sight.
func (j *JWTServiceImpl) ParseRefreshToken(tokenString string) (string, error) {
	var wire jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &wire, j.keyFunc(j.refreshSecret),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return "", domain.ErrRefreshTokenInvalid
	}
	if wire.ID == "" || wire.Issuer != j.issuer {
		return "", domain.ErrRefreshTokenInvalid
	}
	return wire.ID, nil
}

func (j *JWTServiceImpl) keyFunc(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		if len(secret) == 0 {
			return nil, domain.ErrSigning
		}
		return secret, nil
	}
}

var _ domain.TokenSigner = (*JWTServiceImpl)(nil)
