package configloader

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/yaklabco/gomobiledoc/pkg/config"
)

// Configuration layers, lowest precedence first.
const (
	LayerSystem   = "system"
	LayerUser     = "user"
	LayerProject  = "project"
	LayerExplicit = "explicit"
	LayerEnv      = "env"
	LayerFlags    = "flags"
)

// Source is one layer that contributed to the effective configuration.
type Source struct {
	Layer string

	// Path is the file that was read. For the env layer it lists the
	// variables that were applied; for flags it is empty.
	Path string
}

// appName names the per-system and per-user config directories.
const appName = "gomobiledoc"

var (
	// projectConfigFiles are searched for in each directory, first match wins.
	projectConfigFiles = []string{config.ProjectFileName, ".gomobiledoc.yaml", "gomobiledoc.yml", "gomobiledoc.yaml"}

	// dirConfigFiles are the file names inside the system and user directories.
	dirConfigFiles = []string{"config.yaml", "config.yml"}

	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

// systemConfigFile returns the machine-wide config file, or "".
func systemConfigFile() string {
	dir := filepath.Join("/etc", appName)
	if runtime.GOOS == "windows" {
		dir = filepath.Join(cmp.Or(os.Getenv("ProgramData"), `C:\ProgramData`), appName)
	}
	return firstFile(dir, dirConfigFiles)
}

// userConfigFile returns the per-user config file under os.UserConfigDir
// ($XDG_CONFIG_HOME or ~/.config on Unix), or "".
func userConfigFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return firstFile(filepath.Join(dir, appName), dirConfigFiles)
}

// FindProjectConfig looks for a project config file in startDir and then
// each parent, stopping after a VCS root, the home directory or the
// filesystem root. It returns "" when none is found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
