// Package scripts embeds the example document scripts shipped with boxes.
package scripts

import (
	"embed"
	"io/fs"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

//go:embed *.lua
var Examples embed.FS

// Names lists the embedded scripts without their .lua suffix.
func Names() []string {
	entries, _ := fs.ReadDir(Examples, ".")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			names = append(names, strings.TrimSuffix(e.Name(), ".lua"))
		}
	}
	sort.Strings(names)
	return names
}

// Read returns the source of an embedded script by name.
func Read(name string) (string, error) {
	if !strings.HasSuffix(name, ".lua") {
		name += ".lua"
	}
	b, err := Examples.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Suggest returns the embedded script name closest to name, or "" when
// nothing is within two edits.
func Suggest(name string) string {
	name = strings.TrimSuffix(name, ".lua")
	best, bestDist := "", 3
	for _, candidate := range Names() {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
