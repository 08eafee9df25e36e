// Package prefabs holds the YAML specs and tengo scripts that tune the
// simulation. Embedded copies ship in the binary; files under Dir win.
package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Dir is the on-disk override directory. Hot reload watches it.
var Dir = "prefabs"

var (
	//go:embed *.yaml
	PrefabsFS embed.FS

	//go:embed scripts/*.tengo
	ScriptsFS embed.FS
)

// Load reads a spec such as "bubble.yaml" or "prefabs/bubble.yaml".
func Load(name string) ([]byte, error) {
	return read(PrefabsFS, cleanPrefabPath(name))
}

// LoadScript reads a script by bare name ("spawn.tengo") or any prefixed
// form of it.
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, cleanScriptPath(name))
}

// FromDisk reports whether Load(name) would be served from Dir.
func FromDisk(name string) bool {
	info, err := os.Stat(diskPrefabPath(cleanPrefabPath(name)))
	return err == nil && !info.IsDir()
}

// ModTime is the modification time of the on-disk override, if any.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPrefabPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func read(embedded fs.FS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return fs.ReadFile(embedded, clean)
}

func cleanPrefabPath(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
}

func cleanScriptPath(name string) string {
	if name == "" {
		return ""
	}
	s := filepath.ToSlash(name)
	for _, prefix := range []string{"prefabs/", "scripts/"} {
		s = strings.TrimPrefix(s, prefix)
	}
	return path.Join("scripts", s)
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
