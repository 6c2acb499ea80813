package jwtx

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("test-secret", "studytrack", time.Minute, time.Hour)

	token, err := iss.IssueAccessToken("a@b.com", "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.NoError(t, err)

	claims, err := iss.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", claims.Subject)
	require.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", claims.UID)
	require.Equal(t, TokenUseAccess, claims.TokenUse)
	require.NoError(t, claims.RequireUse(TokenUseAccess))

	subject, err := iss.ExtractSubject(token)
	require.NoError(t, err)
	require.Equal(t, "a@b.com", subject)
}

func TestRefreshTokenCarriesNoUID(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("test-secret", "studytrack", time.Minute, time.Hour)

	token, err := iss.IssueRefreshToken("a@b.com")
	require.NoError(t, err)

	claims, err := iss.Verify(token)
	require.NoError(t, err)
	require.Empty(t, claims.UID)
	require.Equal(t, TokenUseRefresh, claims.TokenUse)
	require.ErrorIs(t, claims.RequireUse(TokenUseAccess), ErrTokenUse)
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("test-secret", "studytrack", time.Minute, time.Hour)

	token, err := iss.IssueAccessToken("a@b.com", "uid")
	require.NoError(t, err)

	// Flip one byte of the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = iss.Verify(tampered)
	require.Error(t, err)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	t.Parallel()

	a := NewIssuer("secret-a", "studytrack", time.Minute, time.Hour)
	b := NewIssuer("secret-b", "studytrack", time.Minute, time.Hour)

	token, err := a.IssueAccessToken("a@b.com", "uid")
	require.NoError(t, err)

	_, err = b.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("test-secret", "studytrack", time.Minute, time.Hour)

	now := time.Now().UTC()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "studytrack",
			Subject:   "a@b.com",
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
		TokenUse: TokenUseAccess,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString(KeyFromSecret("test-secret"))
	require.NoError(t, err)

	_, err = iss.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	iss := NewIssuer("test-secret", "studytrack", time.Minute, time.Hour)

	_, err := iss.Verify("not-a-token")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestKeyFromSecret(t *testing.T) {
	t.Parallel()

	t.Run("base64 secrets are decoded", func(t *testing.T) {
		raw := []byte("0123456789abcdef0123456789abcdef")
		encoded := base64.StdEncoding.EncodeToString(raw)
		require.Equal(t, raw, KeyFromSecret(encoded))
	})

	t.Run("plain text secrets are used as raw bytes", func(t *testing.T) {
		require.Equal(t, []byte("not base64!"), KeyFromSecret("not base64!"))
	})

	t.Run("derivation is deterministic", func(t *testing.T) {
		require.Equal(t, KeyFromSecret("some-secret"), KeyFromSecret("some-secret"))
	})
}
