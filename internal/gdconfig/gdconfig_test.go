package gdconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesWidthOverride(t *testing.T) {
	cases := []struct {
		name string
		env  string
		want int
	}{
		{"unset", "", 0},
		{"valid", "120", 120},
		{"zero is ignored", "0", 0},
		{"negative is ignored", "-5", 0},
		{"garbage is ignored", "wide", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("GD_WIDTH", tc.env)
			cfg := Load("/repo", nil)
			assert.Equal(t, tc.want, cfg.WidthOverride)
		})
	}
}

func TestLoadCarriesRepoRootAndDiffArgs(t *testing.T) {
	cfg := Load("/repo", []string{"HEAD~1", "--", "foo.go"})
	assert.Equal(t, "/repo", cfg.RepoRoot)
	require.Len(t, cfg.DiffArgs, 3)
	assert.Equal(t, "HEAD~1", cfg.DiffArgs[0])
	assert.Equal(t, "--", cfg.DiffArgs[1])
	assert.Equal(t, "foo.go", cfg.DiffArgs[2])
}

func TestLoadReadsLogFile(t *testing.T) {
	t.Setenv("GD_LOG_FILE", "/tmp/gd.log")
	cfg := Load("/repo", nil)
	assert.Equal(t, "/tmp/gd.log", cfg.LogFile)
}
