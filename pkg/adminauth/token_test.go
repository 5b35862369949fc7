package adminauth

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestInspect(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		token       string
		state       TokenState
		expiresSoon bool
	}{
		{name: "Missing", token: "", state: TokenMissing},
		{name: "Garbage", token: "not-a-jwt", state: TokenInvalid},
		{name: "Bad payload", token: "a." + base64.RawURLEncoding.EncodeToString([]byte("{oops")) + ".c", state: TokenInvalid},
		{name: "Long lived", token: signedToken(t, jwt.MapClaims{"exp": now.Add(2 * time.Hour).Unix()}), state: TokenValid},
		{name: "Exactly five minutes", token: signedToken(t, jwt.MapClaims{"exp": now.Add(300 * time.Second).Unix()}), state: TokenValid, expiresSoon: true},
		{name: "Two minutes", token: signedToken(t, jwt.MapClaims{"exp": now.Add(2 * time.Minute).Unix()}), state: TokenValid, expiresSoon: true},
		{name: "Expired", token: signedToken(t, jwt.MapClaims{"exp": now.Add(-time.Minute).Unix()}), state: TokenExpired},
		{name: "No exp", token: signedToken(t, jwt.MapClaims{"sub": "admin"}), state: TokenValid},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			info := Inspect(test.token, now)
			assert.Equal(t, test.state, info.State, info.State.String())
			assert.Equal(t, test.expiresSoon, info.ExpiresSoon())
		})
	}
}

func TestInspectIgnoresSignature(t *testing.T) {
	now := time.Now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}).
		SignedString([]byte("some other secret"))
	require.NoError(t, err)

	assert.Equal(t, TokenValid, Inspect(token, now).State)
}
