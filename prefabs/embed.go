package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ContentDir is where on-disk overrides of the embedded content live,
// relative to the working directory.
const ContentDir = "prefabs"

//go:embed *.yaml scripts/*.tengo
var contentFS embed.FS

// Load returns a content file by name. An on-disk copy under ContentDir
// wins over the embedded one so tuning edits need no rebuild.
func Load(name string) ([]byte, error) {
	return read(contentPath(name))
}

// LoadScript returns a tengo script from the scripts directory.
func LoadScript(name string) ([]byte, error) {
	return read(cleanScriptPath(name))
}

func read(clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(ContentDir, filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return contentFS.ReadFile(clean)
}

// contentPath normalizes a name to a slash path relative to ContentDir.
func contentPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "./")
	s = strings.TrimPrefix(s, ContentDir+"/")
	return s
}

func cleanScriptPath(name string) string {
	return path.Join("scripts", strings.TrimPrefix(contentPath(name), "scripts/"))
}
