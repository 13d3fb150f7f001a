package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssuer_Issue_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	iss := Issuer{Secret: []byte("test-secret"), TTL: 7 * 24 * time.Hour}
	userID := uuid.New()

	token, exp, err := iss.Issue(userID, "ann@example.com", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, iss.Secret)
	require.NoError(t, err)

	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, "ann@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessClaimsFromToken_Rejects(t *testing.T) {
	t.Parallel()

	iss := Issuer{Secret: []byte("test-secret"), TTL: time.Hour}
	token, _, err := iss.Issue(uuid.New(), "a@b.c", "user")
	require.NoError(t, err)

	expired := Issuer{
		Secret: iss.Secret,
		TTL:    time.Minute,
		Now:    func() time.Time { return time.Now().Add(-time.Hour) },
	}
	expiredToken, _, err := expired.Issue(uuid.New(), "a@b.c", "user")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret []byte
	}{
		{name: "wrong secret", token: token, secret: []byte("other")},
		{name: "expired", token: expiredToken, secret: iss.Secret},
		{name: "alg none", token: none, secret: iss.Secret},
		{name: "garbage", token: "not.a.jwt", secret: iss.Secret},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := AccessClaimsFromToken(tt.token, tt.secret)
			require.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
