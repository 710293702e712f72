package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

// ErrInvalidSession is returned for tokens that are malformed, carry a bad
// signature, or do not describe a valid session.
var ErrInvalidSession = errors.New("invalid session")

// Session identifies a signed-in admin. It lives only in the signed cookie.
type Session struct {
	UserID   string     `json:"userId"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	IssuedAt int64      `json:"issuedAt"` // Unix milliseconds
}

// IsSuperadmin reports whether the session may manage admin users.
func (s *Session) IsSuperadmin() bool {
	return s.Role == model.RoleSuperadmin
}

type sessionClaims struct {
	Session
	jwt.RegisteredClaims
}

// SessionCodec signs and verifies session tokens as HS256 JWTs.
type SessionCodec struct {
	secret []byte
}

// NewSessionCodec returns a codec keyed by secret.
func NewSessionCodec(secret string) *SessionCodec {
	return &SessionCodec{secret: []byte(secret)}
}

// Encode signs sess. A zero IssuedAt is set to the current time.
func (c *SessionCodec) Encode(sess Session) (string, error) {
	if sess.IssuedAt == 0 {
		sess.IssuedAt = time.Now().UnixMilli()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{Session: sess})
	return token.SignedString(c.secret)
}

// Decode verifies the token's signature and returns its session. Segments
// must be canonical base64url, so unused trailing bits cannot be altered.
func (c *SessionCodec) Decode(tokenStr string) (*Session, error) {
	if tokenStr == "" {
		return nil, ErrInvalidSession
	}
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithStrictDecoding())
	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}
	if claims.UserID == "" || claims.Username == "" || !claims.Role.Valid() {
		return nil, ErrInvalidSession
	}
	sess := claims.Session
	return &sess, nil
}
