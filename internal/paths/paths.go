package paths

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// AppName names the per-user configuration directory.
const AppName = "usersrc2xml"

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// AppConfigDir returns <ConfigHome>/usersrc2xml.
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigSearchPaths lists the directories searched for config.yaml, in
// order of precedence.
func ConfigSearchPaths() []string {
	return []string{".", AppConfigDir()}
}
