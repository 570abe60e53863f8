package session_test

import (
	"testing"

	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   session.Credentials
		wantErr bool
	}{
		{"valid", session.Credentials{Username: "maria", Password: "s3cret", TenantID: 1}, false},
		{"missing username", session.Credentials{Password: "s3cret", TenantID: 1}, true},
		{"missing password", session.Credentials{Username: "maria", TenantID: 1}, true},
		{"missing tenant", session.Credentials{Username: "maria", Password: "s3cret"}, true},
		{"negative tenant", session.Credentials{Username: "maria", Password: "s3cret", TenantID: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDeviceIdentifier(t *testing.T) {
	first := session.DeviceIdentifier()
	require.NotEmpty(t, first)

	second := session.DeviceIdentifier()
	assert.Equal(t, first, second, "the identifier is stable for a given host")
}
