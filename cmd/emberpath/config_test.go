// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/invowk/emberpath/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShow(t *testing.T) {
	t.Parallel()

	stub := defaultStub()
	stub.cfg.Source = "/etc/emberpath.cue"
	stub.cfg.Ignore = []config.IgnorePattern{"**/dist/**"}

	stdout, _, err := execute(t, stub, "", "--passthrough", "--root", "/srv/ws", "config", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Current Configuration")
	assert.Contains(t, stdout, "/etc/emberpath.cue")
	assert.Contains(t, stdout, "root: /srv/ws")
	assert.Contains(t, stdout, "ignore: **/dist/**")
	assert.Contains(t, stdout, "fallback: passthrough")
	assert.Contains(t, stdout, "addon_keyword: ember-addon")
}

func TestConfigShow_Defaults(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, defaultStub(), "", "--verbose", "config", "show")
	require.NoError(t, err)

	assert.Contains(t, stdout, "(using defaults)")
	assert.Contains(t, stdout, "(working directory)")
	assert.Contains(t, stdout, "log_level: debug")
	assert.Contains(t, stdout, "fallback: none")
}

func TestConfigDump(t *testing.T) {
	t.Parallel()

	cueOut, _, err := execute(t, defaultStub(), "", "config", "dump")
	require.NoError(t, err)
	assert.Contains(t, cueOut, `fallback: "none"`)
	assert.Contains(t, cueOut, `addon_keyword: "ember-addon"`)

	tomlOut, _, err := execute(t, defaultStub(), "", "config", "dump", "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, tomlOut, "fallback =")
	assert.Contains(t, tomlOut, "cache_size = 256")

	_, _, err = execute(t, defaultStub(), "", "config", "dump", "--format", "yaml")
	require.Error(t, err)
}

func TestConfigInitAndPath(t *testing.T) {
	// Not parallel: overrides the package-level config directory.
	t.Cleanup(config.Reset)
	dir := filepath.Join(t.TempDir(), "emberpath")
	config.SetConfigDirOverride(dir)

	want := filepath.Join(dir, "emberpath.cue")

	stdout, _, err := execute(t, defaultStub(), "", "config", "path")
	require.NoError(t, err)
	assert.Equal(t, []string{want}, lines(stdout))

	stdout, _, err = execute(t, defaultStub(), "", "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, want)
	assert.FileExists(t, want)
}
