package prefabs

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// diskRoot is where edited prefabs are looked up before the embedded copy.
// Tests point it at a temp dir.
var diskRoot = "prefabs"

// Load returns a prefab, preferring an on-disk copy so edits show up without
// a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript returns a tengo script by bare name or prefab-relative path.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// BodyNames lists the embedded body prefabs, sorted.
func BodyNames() []string {
	entries, err := fs.ReadDir(PrefabsFS, ".")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || e.Name() == "physics.yaml" || !isSpecFile(e.Name()) {
			continue
		}
		out = append(out, e.Name())
	}
	slices.Sort(out)
	return out
}

// DiskDir returns the directory Load checks before the embedded files.
func DiskDir() string {
	return diskRoot
}

// SetDiskDir changes the override directory. An empty dir is ignored.
func SetDiskDir(dir string) {
	if dir = strings.TrimSpace(dir); dir != "" {
		diskRoot = filepath.Clean(dir)
	}
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, diskRoot+"/"); ok {
		return after
	}
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := cleanPrefabPath(p)
	s = strings.TrimPrefix(s, "scripts/")
	return path.Join("scripts", s)
}

func diskPath(clean string) string {
	return filepath.Join(diskRoot, filepath.FromSlash(clean))
}
