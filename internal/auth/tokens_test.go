package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialhub/internal/domain"
)

func TestTokens_IssueAndVerify(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	signed, err := tokens.Issue("user1")
	require.NoError(t, err)

	userID, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user1", userID)
}

func TestTokens_VerifyWrongSecret(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	other := NewTokens("other-secret", time.Hour)

	signed, err := tokens.Issue("user1")
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.Error(t, err)
}

func TestTokens_VerifyExpired(t *testing.T) {
	tokens := NewTokens("test-secret", -time.Minute)

	signed, err := tokens.Issue("user1")
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.Error(t, err)
}

func TestTokens_VerifyGarbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	_, err := tokens.Verify("not.a.token")
	assert.Error(t, err)
}

func TestTokens_Resolve(t *testing.T) {
	secured := NewTokens("test-secret", time.Hour)
	dev := NewTokens("", time.Hour)

	signed, err := secured.Issue("user1")
	require.NoError(t, err)

	tests := []struct {
		name    string
		tokens  *Tokens
		payload domain.AuthenticatePayload
		want    string
		wantErr bool
	}{
		{
			name:    "valid token",
			tokens:  secured,
			payload: domain.AuthenticatePayload{Token: signed},
			want:    "user1",
		},
		{
			name:    "token wins over user id",
			tokens:  secured,
			payload: domain.AuthenticatePayload{Token: signed, UserID: "someone-else"},
			want:    "user1",
		},
		{
			name:    "bare user id rejected when secret configured",
			tokens:  secured,
			payload: domain.AuthenticatePayload{UserID: "user1"},
			wantErr: true,
		},
		{
			name:    "bare user id trusted without secret",
			tokens:  dev,
			payload: domain.AuthenticatePayload{UserID: "user1"},
			want:    "user1",
		},
		{
			name:    "empty payload",
			tokens:  secured,
			payload: domain.AuthenticatePayload{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tokens.Resolve(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
