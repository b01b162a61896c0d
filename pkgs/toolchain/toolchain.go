// Package toolchain describes the compiler toolchain a package is built with.
package toolchain

import "sort"

// SystemName is the name of the toolchain that uses the compilers found on PATH.
const SystemName = "system"

// Known toolchain options and their defaults.
var defaultOptions = map[string]bool{
	"pic":        false,
	"optarch":    true,
	"debug":      false,
	"opt":        false,
	"noopt":      false,
	"lowopt":     false,
	"openmp":     false,
	"usempi":     false,
	"shared":     false,
	"static":     false,
	"32bit":      false,
	"cstd":       false,
	"verbose":    false,
	"unroll":     false,
	"precise":    false,
	"strict":     false,
	"loose":      false,
	"veryloose":  false,
	"defaultopt": false,
}

// Toolchain is the compiler toolchain of a build.
type Toolchain struct {
	Name    string
	Version string
	Options map[string]bool
}

// System returns the system toolchain with default options.
func System() *Toolchain {
	return New(SystemName, "")
}

// New returns a toolchain with all options set to their defaults.
func New(name, version string) *Toolchain {
	opts := make(map[string]bool, len(defaultOptions))
	for k, v := range defaultOptions {
		opts[k] = v
	}
	return &Toolchain{Name: name, Version: version, Options: opts}
}

// Option reports whether the named option is enabled.
// Unknown options are disabled.
func (tc *Toolchain) Option(name string) bool {
	if tc == nil {
		return false
	}
	return tc.Options[name]
}

// SetOption sets the named option.
func (tc *Toolchain) SetOption(name string, value bool) {
	if tc.Options == nil {
		tc.Options = map[string]bool{}
	}
	tc.Options[name] = value
}

// IsKnownOption reports whether name is a recognised toolchain option.
func IsKnownOption(name string) bool {
	_, ok := defaultOptions[name]
	return ok
}

// KnownOptions returns the recognised toolchain option names, sorted.
func KnownOptions() []string {
	names := make([]string, 0, len(defaultOptions))
	for k := range defaultOptions {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// IsSystem reports whether tc is the system toolchain.
func (tc *Toolchain) IsSystem() bool {
	return tc == nil || tc.Name == "" || tc.Name == SystemName
}

func (tc *Toolchain) String() string {
	if tc.IsSystem() {
		return SystemName
	}
	if tc.Version == "" {
		return tc.Name
	}
	return tc.Name + "-" + tc.Version
}
