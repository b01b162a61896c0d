// Package systemtools answers questions about the host system.
package systemtools

import (
	"fmt"
	"runtime"
)

// OS types as reported by uname.
const (
	Linux   = "Linux"
	Darwin  = "Darwin"
	FreeBSD = "FreeBSD"
	Windows = "Windows"
)

var sharedLibExts = map[string]string{
	Linux:   "so",
	FreeBSD: "so",
	Darwin:  "dylib",
	Windows: "dll",
}

// OSType returns the kernel name of the host, e.g. "Linux".
func OSType() string {
	if name := unameSysname(); name != "" {
		return name
	}
	return osTypeFromGOOS(runtime.GOOS)
}

// SharedLibExt returns the extension of shared libraries on the host,
// without the leading dot.
func SharedLibExt() (string, error) {
	return SharedLibExtFor(OSType())
}

// SharedLibExtFor returns the shared library extension for the given OS type.
func SharedLibExtFor(osType string) (string, error) {
	ext, ok := sharedLibExts[osType]
	if !ok {
		return "", fmt.Errorf("unable to determine shared library extension for OS type %q", osType)
	}
	return ext, nil
}

func osTypeFromGOOS(goos string) string {
	switch goos {
	case "linux", "android":
		return Linux
	case "darwin", "ios":
		return Darwin
	case "freebsd":
		return FreeBSD
	case "windows":
		return Windows
	}
	return goos
}
