package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("BOXES_CONFIG", "")
	for _, k := range []string{"BOXES_SCRIPTS_DIR", "BOXES_RENDER_PLAIN", "BOXES_LOG_LEVEL", "BOXES_PREVIEW_ALT_SCREEN", "BOXES_CACHE_SIZE"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestDirHonoursXDG(t *testing.T) {
	if os.PathSeparator != '/' {
		t.Skip("unix layout only")
	}
	base := isolate(t)
	assert.Equal(t, filepath.Join(base, "boxes"), Dir())
}

func TestLoadDefaults(t *testing.T) {
	base := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "boxes", "scripts"), cfg.Scripts.Dir)
	assert.False(t, cfg.Render.Plain)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.True(t, cfg.Preview.AltScreen)
	assert.Equal(t, 64, cfg.Cache.Size)
}

func TestLoadFromImplicitFile(t *testing.T) {
	base := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(base, "boxes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, "boxes", "config.toml"), []byte(`
[log]
level = "debug"
`), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadExplicitFile(t *testing.T) {
	base := isolate(t)
	path := filepath.Join(base, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[scripts]
dir = "/srv/boxes"

[render]
plain = true

[preview]
alt_screen = false

[cache]
size = 8
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/boxes", cfg.Scripts.Dir)
	assert.True(t, cfg.Render.Plain)
	assert.False(t, cfg.Preview.AltScreen)
	assert.Equal(t, 8, cfg.Cache.Size)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("BOXES_RENDER_PLAIN", "true")
	t.Setenv("BOXES_LOG_LEVEL", "info")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Render.Plain)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	base := isolate(t)

	_, err := Load(filepath.Join(base, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(base, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[log\nlevel ="), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	zero := filepath.Join(base, "zero.toml")
	require.NoError(t, os.WriteFile(zero, []byte("[cache]\nsize = 0\n"), 0o644))
	_, err = Load(zero)
	assert.ErrorContains(t, err, "cache.size")
}

func TestResolveScript(t *testing.T) {
	dir := t.TempDir()
	demo := filepath.Join(dir, "demo.lua")
	require.NoError(t, os.WriteFile(demo, []byte("return boxes.text('x')"), 0o644))
	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte(""), 0o644))

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"existing path", demo, demo},
		{"name in dir", "demo.lua", demo},
		{"name without suffix", "demo", demo},
		{"suffixless file", "plain", plain},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveScript(dir, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ResolveScript(dir, "nope")
	assert.ErrorIs(t, err, ErrScriptNotFound)

	_, err = ResolveScript(dir, dir)
	assert.ErrorIs(t, err, ErrScriptNotFound)
}
