package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCasbinService_Enforce(t *testing.T) {
	cas, err := NewMemoryCasbinService()
	require.NoError(t, err)

	_, err = cas.E.AddPolicy("role_client", "/api/client/*", "(GET|POST|PUT|DELETE)")
	require.NoError(t, err)
	_, err = cas.E.AddPolicy("role_contractor", "/api/contractor/*", "GET")
	require.NoError(t, err)

	tests := []struct {
		sub, obj, act string
		want          bool
	}{
		{"role_client", "/api/client/whoami", "GET", true},
		{"role_client", "/api/client/jobs/12", "DELETE", true},
		{"role_client", "/api/contractor/whoami", "GET", false},
		{"role_contractor", "/api/contractor/whoami", "GET", true},
		{"role_contractor", "/api/contractor/whoami", "POST", false},
	}

	for _, tt := range tests {
		t.Run(tt.sub+" "+tt.act+" "+tt.obj, func(t *testing.T) {
			ok, err := cas.E.Enforce(tt.sub, tt.obj, tt.act)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}
