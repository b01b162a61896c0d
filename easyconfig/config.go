// Package easyconfig holds the build configuration of a single package.
//
// A Config is a mutable mapping from parameter name to value. Easyblocks read
// it to decide how to build and append to string parameters such as
// configopts while doing so.
package easyconfig

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goplus/easyblocks/pkgs/toolchain"
)

// Config is the configuration of one build invocation.
type Config struct {
	values map[string]any

	// Toolchain the package is built with.
	Toolchain *toolchain.Toolchain
}

// New returns a Config for name and version seeded with the defaults of
// Base merged with opts.
func New(name, version string, opts Options) *Config {
	all := Base().Merge(opts)
	c := &Config{
		values:    make(map[string]any, len(all)),
		Toolchain: toolchain.System(),
	}
	for k, o := range all {
		c.values[k] = cloneDefault(o.Default)
	}
	c.values["name"] = name
	c.values["version"] = version
	return c
}

func cloneDefault(v any) any {
	if l, ok := v.([]string); ok {
		return append([]string(nil), l...)
	}
	return v
}

// Set assigns value to key.
func (c *Config) Set(key string, value any) {
	c.values[key] = value
}

// Update appends value to the parameter key. String parameters are joined
// with a single space; list parameters get value appended as a new element.
func (c *Config) Update(key, value string) {
	switch cur := c.values[key].(type) {
	case nil:
		c.values[key] = value
	case string:
		if cur = strings.TrimSpace(cur); cur == "" {
			c.values[key] = value
		} else {
			c.values[key] = cur + " " + value
		}
	case []string:
		c.values[key] = append(cur, value)
	case []any:
		c.values[key] = append(cur, value)
	default:
		panic(fmt.Sprintf("easyconfig: cannot update parameter %s of type %T", key, cur))
	}
}

// Str returns key as a string. Non-string values are formatted.
func (c *Config) Str(key string) string {
	switch v := c.values[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Bool returns key as a bool. Strings are parsed with strconv.ParseBool.
func (c *Config) Bool(key string) bool {
	switch v := c.values[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	}
	return false
}

// Int returns key as an int.
func (c *Config) Int(key string) int {
	switch v := c.values[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	}
	return 0
}

// Name returns the software name.
func (c *Config) Name() string { return c.Str("name") }

// Version returns the software version.
func (c *Config) Version() string { return c.Str("version") }

// FullVersion returns the version followed by the toolchain and versionsuffix,
// e.g. "5.2.1-foss-2016b".
func (c *Config) FullVersion() string {
	v := c.Version()
	if !c.Toolchain.IsSystem() {
		v += "-" + c.Toolchain.String()
	}
	return v + c.Str("versionsuffix")
}
