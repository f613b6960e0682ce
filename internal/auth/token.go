package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/user-service/pkg/util"
)

// TokenManager issues and verifies the signed identity tokens. Tokens are
// stateless: validity is decided purely by signature and expiry, there is no
// server-side session table and no revocation list.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenManager builds a new manager. The secret is loaded once at boot
// and read-only afterwards.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Claims describes the token payload: the subject id plus issued-at/expiry.
type Claims struct {
	jwt.RegisteredClaims
}

// Issue builds and signs a token for the subject. A signing failure fails
// the whole operation; callers never receive an empty token to carry on with.
func (tm *TokenManager) Issue(subjectID string) (string, time.Time, error) {
	issuedAt := tm.now()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, util.NewUnknown(err)
	}
	return tokenString, expiresAt, nil
}

// Validate verifies signature, expiry and shape, and returns the subject id.
// Resolution of the subject to an account is the caller's job.
func (tm *TokenManager) Validate(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, util.NewInvalidToken("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now), jwt.WithExpirationRequired(), jwt.WithIssuedAt())
	if err != nil {
		return "", util.NewInvalidToken("")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" || claims.IssuedAt == nil {
		return "", util.NewInvalidToken("")
	}
	return claims.Subject, nil
}
