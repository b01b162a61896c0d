package easyconfig

import (
	"reflect"
	"testing"
)

var testOptions = Options{
	"configopts":         {Default: "", Help: "Extra options passed to configure", Category: Build},
	"separate_build_dir": {Default: false, Help: "Build in a separate directory", Category: Build},
	"parallel":           {Default: 0, Help: "Build parallelism", Category: Build},
	"sanity_dirs":        {Default: []string{}, Help: "Directories to check", Category: Custom},
}

func TestNewSeedsDefaults(t *testing.T) {
	cfg := New("SuperLU", "5.2.1", testOptions)
	if cfg.Name() != "SuperLU" || cfg.Version() != "5.2.1" {
		t.Errorf("name/version = %q/%q", cfg.Name(), cfg.Version())
	}
	if cfg.Bool("separate_build_dir") {
		t.Error("separate_build_dir should default to false")
	}
	if cfg.Str("configopts") != "" {
		t.Errorf("configopts = %q, want empty", cfg.Str("configopts"))
	}
	if v, ok := cfg.values["versionsuffix"]; !ok || v != "" {
		t.Errorf("base parameter versionsuffix = %v, %v", v, ok)
	}
	if _, ok := cfg.values["nosuchparam"]; ok {
		t.Error("undeclared parameter was seeded")
	}
}

func TestUpdateString(t *testing.T) {
	cfg := New("SuperLU", "5.2.1", testOptions)
	cfg.Update("configopts", "-DBUILD_SHARED_LIBS=ON")
	cfg.Update("configopts", "-Denable_blaslib=OFF")
	if got, want := cfg.Str("configopts"), "-DBUILD_SHARED_LIBS=ON -Denable_blaslib=OFF"; got != want {
		t.Errorf("configopts = %q, want %q", got, want)
	}

	cfg.Set("configopts", "  ")
	cfg.Update("configopts", "-DX=1")
	if got := cfg.Str("configopts"); got != "-DX=1" {
		t.Errorf("configopts = %q, want %q", got, "-DX=1")
	}
}

func TestUpdateList(t *testing.T) {
	cfg := New("SuperLU", "5.2.1", testOptions)
	cfg.Update("sanity_dirs", "lib")
	cfg.Update("sanity_dirs", "include")
	if got, want := cfg.values["sanity_dirs"], []string{"lib", "include"}; !reflect.DeepEqual(got, want) {
		t.Errorf("sanity_dirs = %v, want %v", got, want)
	}
	if len(testOptions["sanity_dirs"].Default.([]string)) != 0 {
		t.Error("Update leaked into the declared default")
	}
}

func TestUpdateUnset(t *testing.T) {
	cfg := New("SuperLU", "5.2.1", nil)
	cfg.Update("buildopts", "VERBOSE=1")
	if got := cfg.Str("buildopts"); got != "VERBOSE=1" {
		t.Errorf("buildopts = %q", got)
	}
}

func TestAccessors(t *testing.T) {
	cfg := New("SuperLU", "5.2.1", testOptions)
	cfg.Set("parallel", int64(4))
	if cfg.Int("parallel") != 4 {
		t.Errorf("Int(parallel) = %d", cfg.Int("parallel"))
	}
	cfg.Set("separate_build_dir", "true")
	if !cfg.Bool("separate_build_dir") {
		t.Error("Bool should parse string values")
	}
	cfg.Set("version", 5.2)
	if cfg.Version() != "5.2" {
		t.Errorf("Version() = %q", cfg.Version())
	}
}

func TestFullVersion(t *testing.T) {
	cfg := New("SuperLU", "5.2.1", nil)
	if got := cfg.FullVersion(); got != "5.2.1" {
		t.Errorf("FullVersion() = %q", got)
	}
	cfg.Toolchain.Name, cfg.Toolchain.Version = "foss", "2016b"
	cfg.Set("versionsuffix", "-shared")
	if got, want := cfg.FullVersion(), "5.2.1-foss-2016b-shared"; got != want {
		t.Errorf("FullVersion() = %q, want %q", got, want)
	}
}

func TestMerge(t *testing.T) {
	base := Options{"a": {Default: 1}, "b": {Default: 2}}
	merged := base.Merge(Options{"b": {Default: 3}, "c": {Default: 4}})
	if merged["a"].Default != 1 || merged["b"].Default != 3 || merged["c"].Default != 4 {
		t.Errorf("Merge() = %v", merged)
	}
	if base["b"].Default != 2 {
		t.Error("Merge modified the receiver")
	}
	if got, want := merged.Names(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestCategoryString(t *testing.T) {
	if Custom.String() != "CUSTOM" || Mandatory.String() != "MANDATORY" {
		t.Errorf("unexpected category names %s %s", Custom, Mandatory)
	}
}
