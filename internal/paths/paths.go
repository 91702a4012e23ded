package paths

import (
	"os"
	"path/filepath"
)

const (
	AppDirName       = "favicon"
	ConfigFileName   = "favicon.config.json"
	ConfigYAMLName   = "favicon.config.yaml"
	LogFileName      = "history.log"
	DBFileName       = "history.db"
	CooldownFileName = "cooldown.json"
	GuideFileName    = "favicon-integration.txt"
	DefaultStaticDir = "public"
	DefaultAccent    = "#5bbad5"
	DirPerm          = 0755
	FilePerm         = 0644
)

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Exists reports whether path can be stat'ed.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// Abs resolves p against root unless p is already absolute.
func Abs(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// DataDir returns the platform-specific data directory for favicon:
//   - Windows: %APPDATA%\favicon
//   - Unix:    ~/.config/favicon
//
// Falls back to os.TempDir()/favicon if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}
