package easyconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goplus/easyblocks/pkgs/toolchain"
	"github.com/pelletier/go-toml/v2"
	"github.com/qiniu/x/log"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// Load reads an easyconfig file. The format is chosen by extension:
// .yaml/.yml or .toml. opts declares the parameters of the easyblock that
// will consume the config; parameters outside Base and opts are rejected.
func Load(path string, opts Options) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw, err := decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse easyconfig %s: %w", path, err)
	}
	cfg, err := FromMap(raw, opts)
	if err != nil {
		return nil, fmt.Errorf("invalid easyconfig %s: %w", path, err)
	}
	return cfg, nil
}

// PeekEasyblock returns the easyblock and name parameters of an easyconfig
// file without validating the rest. It is used to pick the easyblock whose
// options are then needed for Load.
func PeekEasyblock(path string) (easyblock, name string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	raw, err := decode(filepath.Ext(path), data)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse easyconfig %s: %w", path, err)
	}
	easyblock, _ = raw["easyblock"].(string)
	name, _ = raw["name"].(string)
	return easyblock, name, nil
}

func decode(ext string, data []byte) (map[string]any, error) {
	raw := map[string]any{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported easyconfig format %q", ext)
	}
	return raw, nil
}

// FromMap builds a Config from decoded easyconfig parameters.
func FromMap(raw map[string]any, opts Options) (*Config, error) {
	all := Base().Merge(opts)

	var unknown []string
	for k := range raw {
		if _, ok := all[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown easyconfig parameters: %s", strings.Join(unknown, ", "))
	}

	name, err := scalarString("name", raw["name"])
	if err != nil {
		return nil, err
	}
	version, err := scalarString("version", raw["version"])
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("mandatory parameter name is not set")
	}
	if version == "" {
		return nil, fmt.Errorf("mandatory parameter version is not set")
	}

	cfg := New(name, version, opts)
	for k, v := range raw {
		switch k {
		case "name", "version", "toolchain", "toolchainopts":
			continue
		}
		v, err := coerce(k, v, all[k].Default)
		if err != nil {
			return nil, err
		}
		cfg.Set(k, v)
	}

	tc, err := decodeToolchain(raw["toolchain"], raw["toolchainopts"])
	if err != nil {
		return nil, err
	}
	cfg.Toolchain = tc

	if !semver.IsValid("v" + version) {
		log.Warnf("version %q of %s is not a semantic version, comparisons may be unreliable", version, name)
	}
	return cfg, nil
}

// scalarString formats a decoded string parameter. Integers are exact, but
// floats are not: YAML and TOML read an unquoted 5.10 as 5.1.
func scalarString(key string, v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case int, int64:
		return fmt.Sprint(v), nil
	case float64:
		return "", fmt.Errorf("parameter %s: %v must be written as a quoted string", key, v)
	}
	return "", fmt.Errorf("parameter %s: expected a quoted string, got %T", key, v)
}

func coerce(key string, v, def any) (any, error) {
	switch def.(type) {
	case bool:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		return nil, fmt.Errorf("parameter %s: expected a boolean, got %T", key, v)
	case string:
		return scalarString(key, v)
	case int:
		switch v := v.(type) {
		case int:
			return v, nil
		case int64:
			return int(v), nil
		}
		return nil, fmt.Errorf("parameter %s: expected an integer, got %T", key, v)
	case []string:
		list, ok := v.([]any)
		if !ok {
			return nil, fmt.Errorf("parameter %s: expected a list, got %T", key, v)
		}
		out := make([]string, 0, len(list))
		for _, e := range list {
			str, err := scalarString(key, e)
			if err != nil {
				return nil, err
			}
			out = append(out, str)
		}
		return out, nil
	}
	return v, nil
}

func decodeToolchain(raw, opts any) (*toolchain.Toolchain, error) {
	tc := toolchain.System()
	if raw != nil {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("parameter toolchain: expected a mapping with name and version, got %T", raw)
		}
		name, err := scalarString("toolchain name", m["name"])
		if err != nil {
			return nil, err
		}
		version, err := scalarString("toolchain version", m["version"])
		if err != nil {
			return nil, err
		}
		tc = toolchain.New(name, version)
	}
	if opts == nil {
		return tc, nil
	}
	m, ok := opts.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parameter toolchainopts: expected a mapping, got %T", opts)
	}
	for k, v := range m {
		if !toolchain.IsKnownOption(k) {
			return nil, fmt.Errorf("parameter toolchainopts: unknown toolchain option %s, known options are: %s",
				k, strings.Join(toolchain.KnownOptions(), ", "))
		}
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("parameter toolchainopts: option %s must be a boolean, got %T", k, v)
		}
		tc.SetOption(k, b)
	}
	return tc, nil
}
