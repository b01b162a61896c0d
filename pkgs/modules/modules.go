// Package modules looks up software made available by loaded environment
// modules. A loaded module exports its installation root as EBROOT<NAME>.
package modules

import (
	"os"
	"strings"
)

const rootEnvPrefix = "EBROOT"

// Probe maps a software name to its installation root.
// It reports false when the software is not available.
type Probe func(name string) (string, bool)

var nameReplacer = strings.NewReplacer("+", "plus", "-", "min", ".", "")

// ConvertName turns a software name into the form used in environment
// variable names, e.g. "Python-bundle" -> "PYTHONMINBUNDLE".
func ConvertName(name string) string {
	return strings.ToUpper(nameReplacer.Replace(name))
}

// RootEnvVar returns the name of the environment variable holding the
// installation root of name.
func RootEnvVar(name string) string {
	return rootEnvPrefix + ConvertName(name)
}

// SoftwareRoot returns the installation root of name, if it is loaded.
func SoftwareRoot(name string) (string, bool) {
	return lookup(RootEnvVar(name))
}

func lookup(key string) (string, bool) {
	v := os.Getenv(key)
	if v == "" {
		return "", false
	}
	return v, true
}
