package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateInviteCodeShape(t *testing.T) {
	t.Parallel()

	for range 1000 {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		require.Len(t, code, InviteCodeLength)
		for _, r := range code {
			require.True(t, strings.ContainsRune(InviteCodeAlphabet, r),
				"code %q contains %q outside the alphabet", code, r)
		}
	}
}

func TestGenerateInviteCodeExcludesConfusableGlyphs(t *testing.T) {
	t.Parallel()

	require.NotContains(t, InviteCodeAlphabet, "0")
	require.NotContains(t, InviteCodeAlphabet, "O")
	require.NotContains(t, InviteCodeAlphabet, "1")
	require.NotContains(t, InviteCodeAlphabet, "I")
}

func TestGenerateInviteCodeIsNotConstant(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})
	for range 50 {
		code, err := GenerateInviteCode()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	require.Greater(t, len(seen), 1)
}
