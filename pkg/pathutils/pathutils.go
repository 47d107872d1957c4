package pathutils

import (
	"os/user"
	"path/filepath"
	"strings"
)

// HomeDir returns the home directory of the current user.
func HomeDir() string {
	usr, err := user.Current()
	if err != nil {
		return ""
	}
	return usr.HomeDir
}

// ExpandHome takes a path and converts a leading '~' to the current users home
// directory. Used for the --key-file and --config flags.
func ExpandHome(path string) string {
	if path == "~" {
		return HomeDir()
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(HomeDir(), path[2:])
	}
	return path
}
