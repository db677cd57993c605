//go:build linux

package clipboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectBackendPrefersWaylandWhenAvailable(t *testing.T) {
	resetForTest(t)
	getenv = func(key string) string {
		if key == "WAYLAND_DISPLAY" {
			return "1"
		}
		return ""
	}
	lookPath = func(prog string) (string, error) {
		if prog == "wl-copy" {
			return "/bin/" + prog, nil
		}
		return "", errors.New("not found")
	}

	b, err := selectBackend()
	require.NoError(t, err)

	cb, ok := b.(cmdBackend)
	require.True(t, ok)
	require.Equal(t, "wl-copy", cb.copyCmd)
	require.Empty(t, cb.copyArgs)
}

func TestSelectBackendFallsBackToXclipWhenWaylandMissing(t *testing.T) {
	resetForTest(t)
	getenv = func(string) string { return "" }
	lookPath = func(prog string) (string, error) {
		if prog == "xclip" {
			return "/bin/" + prog, nil
		}
		return "", errors.New("not found")
	}

	b, err := selectBackend()
	require.NoError(t, err)

	cb, ok := b.(cmdBackend)
	require.True(t, ok)
	require.Equal(t, "xclip", cb.copyCmd)
	require.Equal(t, []string{"-in", "-selection", "clipboard"}, cb.copyArgs)
}

func TestSelectBackendUsesXselIfXclipMissing(t *testing.T) {
	resetForTest(t)
	getenv = func(string) string { return "" }
	lookPath = func(prog string) (string, error) {
		if prog == "xsel" {
			return "/bin/" + prog, nil
		}
		return "", errors.New("not found")
	}

	b, err := selectBackend()
	require.NoError(t, err)

	cb, ok := b.(cmdBackend)
	require.True(t, ok)
	require.Equal(t, "xsel", cb.copyCmd)
	require.Equal(t, []string{"--input", "--clipboard"}, cb.copyArgs)
}

func TestBackendUnavailableWhenNoTools(t *testing.T) {
	resetForTest(t)
	getenv = func(string) string { return "" }
	lookPath = func(string) (string, error) {
		return "", errors.New("not found")
	}

	_, err := getBackend()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestCopyFalseWhenUnavailable(t *testing.T) {
	resetForTest(t)
	getenv = func(string) string { return "" }
	lookPath = func(string) (string, error) {
		return "", errors.New("not found")
	}

	require.False(t, Copy("hello"))
}
