package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInviteCode(t *testing.T) {
	assert.Equal(t, "X7Z9P2", NormalizeInviteCode("  x7z9p2 "))
	assert.Equal(t, "ABC123", NormalizeInviteCode("abc123"))
}

func TestValidateInviteCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"X7Z9P2", true},
		{"ABC1234", true},
		{"abc123", false}, // lowercase not accepted, normalize first
		{"X7Z9P", false},  // too short
		{"X7Z9P234", false},
		{"", false},
		{"X7Z9P!", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidateInviteCode(tt.code), tt.code)
	}
}
