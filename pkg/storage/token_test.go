package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)

	token, expiresAt, err := signer.Mint("2026-08-28/timetable.csv")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	relPath, err := signer.Check(token)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28/timetable.csv", relPath)
}

func TestTokenRejectsTampering(t *testing.T) {
	signer := NewTokenSigner("secret", time.Hour)

	token, _, err := signer.Mint("a/b.csv")
	require.NoError(t, err)

	_, err = signer.Check(token + "x")
	assert.Error(t, err)
}

func TestTokenRejectsForeignSecret(t *testing.T) {
	minter := NewTokenSigner("one", time.Hour)
	checker := NewTokenSigner("two", time.Hour)

	token, _, err := minter.Mint("a/b.csv")
	require.NoError(t, err)

	_, err = checker.Check(token)
	assert.Error(t, err)
}

func TestTokenExpires(t *testing.T) {
	signer := &TokenSigner{secret: []byte("secret"), ttl: -time.Hour}

	token, _, err := signer.Mint("a/b.csv")
	require.NoError(t, err)

	_, err = signer.Check(token)
	assert.Error(t, err)
}
