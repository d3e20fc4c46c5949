package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{name: "valid", password: "Abcdef1!", wantErr: ""},
		{name: "too short", password: "Ab1!", wantErr: "at least 8 characters"},
		{name: "no uppercase reported first", password: "abcdefgh", wantErr: "uppercase letter"},
		{name: "no lowercase", password: "ABCDEFG1!", wantErr: "lowercase letter"},
		{name: "no digit", password: "Abcdefg!", wantErr: "digit"},
		{name: "no special", password: "Abcdefg1", wantErr: "special character"},
		{name: "length violation wins over missing classes", password: "abc", wantErr: "at least 8 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Password(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		wantErr    bool
	}{
		{name: "username", identifier: "jsmith", wantErr: false},
		{name: "email", identifier: "j.smith@example.com", wantErr: false},
		{name: "empty", identifier: "", wantErr: true},
		{name: "whitespace only", identifier: "   ", wantErr: true},
		{name: "email missing local part", identifier: "@example.com", wantErr: true},
		{name: "email missing domain", identifier: "jsmith@", wantErr: true},
		{name: "email domain without dot", identifier: "jsmith@example", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Identifier(tt.identifier)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOTPCode(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "valid", code: "123456", wantErr: false},
		{name: "valid with surrounding spaces", code: " 123456 ", wantErr: false},
		{name: "too short", code: "12345", wantErr: true},
		{name: "too long", code: "1234567", wantErr: true},
		{name: "letters", code: "12a456", wantErr: true},
		{name: "empty", code: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := OTPCode(tt.code)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
