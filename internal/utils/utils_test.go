package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-admin-client/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestToStringSlice(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, utils.ToStringSlice([]any{"a", 1, nil, "b"}))
	require.Empty(t, utils.ToStringSlice(nil))
}

func TestFirstString(t *testing.T) {
	require.Equal(t, "Name is required", utils.FirstString([]any{map[string]any{}, "Name is required", "x"}, "fallback"))
	require.Equal(t, "fallback", utils.FirstString([]any{42}, "fallback"))
}

func TestPointerHelpers(t *testing.T) {
	require.Equal(t, "", utils.Value[string](nil))
	require.Equal(t, "token", utils.Value(utils.Ptr("token")))
}

func TestEmpty(t *testing.T) {
	require.True(t, utils.Empty(nil))
	require.True(t, utils.Empty(utils.Ptr("")))
	require.False(t, utils.Empty(utils.Ptr("refresh-1")))
}
