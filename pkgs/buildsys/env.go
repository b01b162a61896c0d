package buildsys

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Environ holds environment overrides applied to every command of a build.
// Lookups fall back to the process environment, which is never modified.
type Environ map[string]string

// Lookup returns the overridden value of key, or the process value.
func (e Environ) Lookup(key string) string {
	if v, ok := e[key]; ok {
		return v
	}
	return os.Getenv(key)
}

// Set overrides key.
func (e Environ) Set(key, value string) {
	e[key] = value
}

// Prepend prepends value to a path list variable.
func (e Environ) Prepend(key, value string) {
	if cur := e.Lookup(key); cur != "" {
		value += string(os.PathListSeparator) + cur
	}
	e[key] = value
}

// AppendFlag appends a space separated flag to a variable.
func (e Environ) AppendFlag(key, flag string) {
	if cur := e.Lookup(key); cur != "" {
		flag = strings.TrimSpace(cur + " " + flag)
	}
	e[key] = flag
}

// Use makes the dependency installed at root visible to CMake, pkg-config
// and the compilers: headers, libraries and pkg-config files.
func (e Environ) Use(root string) {
	includeDir := filepath.Join(root, "include")
	libDir := filepath.Join(root, "lib")
	pkgconfigDir := filepath.Join(libDir, "pkgconfig")

	if isDir(pkgconfigDir) {
		e.Prepend("PKG_CONFIG_PATH", pkgconfigDir)
	}
	if isDir(root) {
		e.Prepend("CMAKE_PREFIX_PATH", root)
	}
	if isDir(includeDir) {
		e.Prepend("CMAKE_INCLUDE_PATH", includeDir)
	}
	if isDir(libDir) {
		e.Prepend("CMAKE_LIBRARY_PATH", libDir)
	}

	if runtime.GOOS == "windows" {
		if isDir(includeDir) {
			e.Prepend("INCLUDE", includeDir)
		}
		if isDir(libDir) {
			e.Prepend("LIB", libDir)
		}
	} else {
		if isDir(includeDir) {
			e.AppendFlag("CPPFLAGS", "-I"+includeDir)
		}
		if isDir(libDir) {
			e.AppendFlag("LDFLAGS", "-L"+libDir)
		}
	}
}

// With returns a copy of e overlaid with extra.
func (e Environ) With(extra map[string]string) map[string]string {
	out := make(map[string]string, len(e)+len(extra))
	for k, v := range e {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
