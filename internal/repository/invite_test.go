package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInviteCode(t *testing.T) {
	seen := map[string]bool{}

	for i := 0; i < 200; i++ {
		code, err := NewInviteCode()
		require.NoError(t, err)
		assert.Len(t, code, inviteCodeLength)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(inviteCodeAlphabet, ch),
				"unexpected character %q in invite code %s", ch, code)
		}
		seen[code] = true
	}

	// 200 draws from a 36^6 space should not collide into a handful of values
	assert.Greater(t, len(seen), 190)
}
