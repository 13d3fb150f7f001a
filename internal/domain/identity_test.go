package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCartOwner(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	p := &Principal{UserID: uid, Role: "user"}

	_, err := NewCartOwner(nil, "  ")
	require.ErrorIs(t, err, ErrNoIdentity)

	o, err := NewCartOwner(nil, "sess-1")
	require.NoError(t, err)
	assert.False(t, o.IsUser())
	assert.Equal(t, "session:sess-1", o.Key())

	o, err = NewCartOwner(p, "sess-1")
	require.NoError(t, err)
	assert.True(t, o.IsUser())
	assert.Equal(t, uid, *o.UserID)
	assert.Equal(t, "sess-1", o.SessionID)
	assert.Equal(t, "user:"+uid.String(), o.Key())

	o, err = NewCartOwner(nil, strings.Repeat("x", MaxSessionIDLen))
	require.NoError(t, err)
	assert.Len(t, o.SessionID, MaxSessionIDLen)

	_, err = NewCartOwner(nil, strings.Repeat("x", MaxSessionIDLen+1))
	require.ErrorIs(t, err, ErrSessionIDTooLong)
	_, err = NewCartOwner(p, strings.Repeat("é", 100))
	require.ErrorIs(t, err, ErrSessionIDTooLong)
}

func TestPrincipal_IsAdmin(t *testing.T) {
	t.Parallel()

	var nilP *Principal
	assert.False(t, nilP.IsAdmin())
	assert.False(t, (&Principal{Role: "user"}).IsAdmin())
	assert.True(t, (&Principal{Role: "admin"}).IsAdmin())
}
