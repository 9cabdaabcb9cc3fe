package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPinService_HashAndVerify(t *testing.T) {
	svc := NewPinServiceWithCost(bcrypt.MinCost)

	hash, err := svc.Hash("445566")
	require.NoError(t, err)
	assert.NotEqual(t, "445566", hash)

	tests := []struct {
		name string
		hash string
		pin  string
		want bool
	}{
		{"correct pin", hash, "445566", true},
		{"wrong pin", hash, "000000", false},
		{"empty pin", hash, "", false},
		{"pin never set", "", "445566", false},
		{"corrupt hash", "not-a-bcrypt-hash", "445566", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Verify(tt.hash, tt.pin))
		})
	}
}

func TestPinService_SaltedHashes(t *testing.T) {
	svc := NewPinServiceWithCost(bcrypt.MinCost)

	first, err := svc.Hash("123456")
	require.NoError(t, err)
	second, err := svc.Hash("123456")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, svc.Verify(first, "123456"))
	assert.True(t, svc.Verify(second, "123456"))
}
