package service

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retshidi-radebe/bzfitness/internal/model"
)

func TestSessionRoundTrip(t *testing.T) {
	codec := NewSessionCodec("test-secret")
	in := Session{UserID: "u1", Username: "coach", Role: model.RoleAdmin, IssuedAt: 1700000000123}

	token, err := codec.Encode(in)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."), "token should be header.claims.signature")

	out, err := codec.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, in, *out)
	assert.False(t, out.IsSuperadmin())
}

func TestSessionEncodeStampsIssuedAt(t *testing.T) {
	codec := NewSessionCodec("test-secret")
	token, err := codec.Encode(Session{UserID: "u1", Username: "coach", Role: model.RoleSuperadmin})
	require.NoError(t, err)

	out, err := codec.Decode(token)
	require.NoError(t, err)
	assert.NotZero(t, out.IssuedAt)
	assert.True(t, out.IsSuperadmin())
}

func TestSessionClaimNames(t *testing.T) {
	codec := NewSessionCodec("test-secret")
	token, err := codec.Encode(Session{UserID: "u1", Username: "coach", Role: model.RoleAdmin, IssuedAt: 42})
	require.NoError(t, err)

	payload, err := base64.RawURLEncoding.DecodeString(strings.Split(token, ".")[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":"u1","username":"coach","role":"admin","issuedAt":42}`, string(payload))
}

func TestSessionRejectsForgeries(t *testing.T) {
	codec := NewSessionCodec("test-secret")
	valid, err := codec.Encode(Session{UserID: "u1", Username: "coach", Role: model.RoleAdmin})
	require.NoError(t, err)

	otherKey, err := NewSessionCodec("other-secret").Encode(Session{UserID: "u1", Username: "coach", Role: model.RoleSuperadmin})
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	elevated := base64.RawURLEncoding.EncodeToString([]byte(`{"userId":"u1","username":"coach","role":"superadmin","issuedAt":1}`))
	tampered := parts[0] + "." + elevated + "." + parts[2]

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, sessionClaims{
		Session: Session{UserID: "u1", Username: "coach", Role: model.RoleSuperadmin},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, sessionClaims{
		Session: Session{UserID: "u1", Username: "coach", Role: model.RoleAdmin},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	badRole, err := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Session: Session{UserID: "u1", Username: "coach", Role: "owner"},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	tests := map[string]string{
		"empty":            "",
		"garbage":          "not-a-token",
		"two parts":        parts[0] + "." + parts[1],
		"wrong key":        otherKey,
		"tampered payload": tampered,
		"alg none":         none,
		"other algorithm":  hs512,
		"unknown role":     badRole,
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := codec.Decode(token)
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}
}

func TestSessionRejectsAnySignatureBitFlip(t *testing.T) {
	codec := NewSessionCodec("test-secret")
	token, err := codec.Encode(Session{UserID: "u1", Username: "coach", Role: model.RoleAdmin, IssuedAt: 1700000000123})
	require.NoError(t, err)

	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	sigStart := strings.LastIndex(token, ".") + 1
	for pos := sigStart; pos < len(token); pos++ {
		idx := strings.IndexByte(alphabet, token[pos])
		require.GreaterOrEqual(t, idx, 0, "signature char %q is not base64url", token[pos])
		for bit := 0; bit < 6; bit++ {
			flipped := []byte(token)
			flipped[pos] = alphabet[idx^(1<<bit)]
			_, err := codec.Decode(string(flipped))
			assert.ErrorIs(t, err, ErrInvalidSession, "flip at %d bit %d: %q -> %q", pos, bit, token[pos], flipped[pos])
		}
	}
}

func TestHashPassword(t *testing.T) {
	// sha256("admin123")
	const digest = "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9"
	assert.Equal(t, digest, HashPassword("admin123"))
	assert.True(t, VerifyPassword("admin123", digest))
	assert.True(t, VerifyPassword("admin123", strings.ToUpper(digest)))
	assert.False(t, VerifyPassword("admin124", digest))
	assert.False(t, VerifyPassword("", ""))
}
