package services

import (
	"testing"
	"time"

	"conduit-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueTokenPairChainedByID(t *testing.T) {
	svc := NewTokenService(newFakeTokenRepo(), 15*time.Minute, 7*24*time.Hour)

	access, err := svc.IssueAccessToken(42)
	require.NoError(t, err)
	assert.Equal(t, uint(42), access.UserID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), access.ExpiresAt, time.Second)

	refresh, err := svc.IssueRefreshToken(access.ID)
	require.NoError(t, err)
	assert.Equal(t, access.ID, refresh.AccessTokenID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), refresh.ExpiresAt, time.Second)
}

func TestTokenValidity(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		revoked   bool
		expiresAt time.Time
		want      bool
	}{
		{"fresh token", false, now.Add(time.Hour), true},
		{"expired but not revoked", false, now.Add(-time.Hour), false},
		{"revoked but not expired", true, now.Add(time.Hour), false},
		{"revoked and expired", true, now.Add(-time.Hour), false},
		{"expires exactly now", false, now, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			access := &models.AccessToken{Revoked: tt.revoked, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, access.Valid(now))

			refresh := &models.RefreshToken{Revoked: tt.revoked, ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, refresh.Valid(now))
		})
	}
}

func TestRevokeTokens(t *testing.T) {
	repo := newFakeTokenRepo()
	svc := NewTokenService(repo, 15*time.Minute, 7*24*time.Hour)

	access, err := svc.IssueAccessToken(1)
	require.NoError(t, err)
	refresh, err := svc.IssueRefreshToken(access.ID)
	require.NoError(t, err)

	require.NoError(t, svc.RevokeAccessToken(access.ID))
	require.NoError(t, svc.RevokeRefreshToken(refresh.ID))

	storedAccess, err := svc.GetAccessToken(access.ID)
	require.NoError(t, err)
	assert.False(t, storedAccess.Valid(time.Now()))

	storedRefresh, err := svc.GetRefreshToken(refresh.ID)
	require.NoError(t, err)
	assert.False(t, storedRefresh.Valid(time.Now()))
}
