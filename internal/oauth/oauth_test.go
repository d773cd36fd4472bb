package oauth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomToken(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 16; i++ {
		tok, err := RandomToken()
		require.NoError(t, err)

		raw, err := base64.URLEncoding.DecodeString(tok)
		require.NoError(t, err)
		assert.Len(t, raw, 32)

		assert.False(t, seen[tok], "token repeated")
		seen[tok] = true
	}
}

func TestRegistry_Lookup(t *testing.T) {
	g := NewGoogleProvider(configForTest())
	r := NewRegistry(g)

	p, err := r.Lookup("google")
	require.NoError(t, err)
	assert.Same(t, g, p)

	_, err = r.Lookup("github")
	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.Contains(t, err.Error(), "github")
}

func TestUserInfo_Normalize(t *testing.T) {
	tests := []struct {
		name      string
		in        UserInfo
		wantEmail string
		wantName  string
	}{
		{"keeps name", UserInfo{Email: "a@b.c", Name: " Ana "}, "a@b.c", "Ana"},
		{"lowercases email", UserInfo{Email: "Ana@Shop.TEST", Name: "Ana"}, "ana@shop.test", "Ana"},
		{"falls back to mailbox", UserInfo{Email: "print.room@shop.test"}, "print.room@shop.test", "print.room"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.in
			info.normalize()
			assert.Equal(t, tt.wantEmail, info.Email)
			assert.Equal(t, tt.wantName, info.Name)
		})
	}
}
