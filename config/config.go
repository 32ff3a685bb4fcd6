package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// ErrScriptNotFound is returned by ResolveScript when no candidate exists.
var ErrScriptNotFound = errors.New("script not found")

// Config holds application configuration.
type Config struct {
	Scripts ScriptsConfig
	Render  RenderConfig
	Log     LogConfig
	Preview PreviewConfig
	Cache   CacheConfig
}

// ScriptsConfig locates named document scripts.
type ScriptsConfig struct {
	Dir string
}

// RenderConfig controls stdout rendering.
type RenderConfig struct {
	Plain bool // strip bold and other escape sequences
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
}

// PreviewConfig holds interactive preview settings.
type PreviewConfig struct {
	AltScreen bool `mapstructure:"alt_screen"`
}

// CacheConfig sizes the compiled script cache.
type CacheConfig struct {
	Size int
}

// Dir returns the boxes configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "boxes")
}

// Load reads configuration from file and env. Env var overrides use prefix BOXES_.
// An empty path falls back to BOXES_CONFIG, then config.toml in Dir().
// Only the implicit config.toml may be absent.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("scripts.dir", filepath.Join(Dir(), "scripts"))
	v.SetDefault("render.plain", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("preview.alt_screen", true)
	v.SetDefault("cache.size", 64)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("BOXES_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(Dir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("BOXES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// read config file if present; an explicit path must exist
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Cache.Size < 1 {
		return Config{}, fmt.Errorf("cache.size must be positive, got %d", c.Cache.Size)
	}
	c.Scripts.Dir = expandTilde(c.Scripts.Dir)
	return c, nil
}

// ResolveScript finds the script named by name. An existing path wins;
// otherwise name is looked up in dir, with and without a .lua suffix.
func ResolveScript(dir, name string) (string, error) {
	candidates := []string{expandTilde(name)}
	if dir != "" && !filepath.IsAbs(name) {
		candidates = append(candidates, filepath.Join(dir, name))
		if filepath.Ext(name) != ".lua" {
			candidates = append(candidates, filepath.Join(dir, name+".lua"))
		}
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrScriptNotFound, name)
}

// expandTilde expands ~ to home directory.
func expandTilde(path string) string {
	if len(path) > 0 && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
