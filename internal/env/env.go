package env

import (
	"os"
	"path/filepath"
)

// PrefixEnv overrides the work directory when set.
const PrefixEnv = "EASYBLOCK_PREFIX"

// WorkDir returns the root of the local software tree: $EASYBLOCK_PREFIX if
// set, otherwise <UserCacheDir>/.easyblock.
func WorkDir() (string, error) {
	if dir := os.Getenv(PrefixEnv); dir != "" {
		return dir, nil
	}
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, ".easyblock"), nil
}

// InstallDir returns the default installation directory of a package:
// <WorkDir>/software/<name>/<version>.
func InstallDir(name, version string) (string, error) {
	workDir, err := WorkDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(workDir, "software", name, version), nil
}
