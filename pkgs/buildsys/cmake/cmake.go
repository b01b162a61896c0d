// Package cmake implements the generic CMake build: configure with cmake,
// then build, test and install through "cmake --build" and "cmake --install".
package cmake

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/goplus/easyblocks/easyconfig"
	"github.com/goplus/easyblocks/pkgs/buildlog"
	"github.com/goplus/easyblocks/pkgs/buildsys"
	"github.com/qiniu/x/log"
)

// BuildDirName is the out-of-tree build directory created inside the
// source directory (including srcdir) when separate_build_dir is set.
const BuildDirName = "easybuild_obj"

var errNotConfigured = errors.New("configure step has not run")

// compiler and flag variables forwarded from the toolchain environment.
var toolchainVars = []struct{ env, define string }{
	{"CC", "CMAKE_C_COMPILER"},
	{"CXX", "CMAKE_CXX_COMPILER"},
	{"F90", "CMAKE_Fortran_COMPILER"},
	{"CFLAGS", "CMAKE_C_FLAGS"},
	{"CXXFLAGS", "CMAKE_CXX_FLAGS"},
	{"FFLAGS", "CMAKE_Fortran_FLAGS"},
}

type defineValue struct {
	value    string
	typeName string
}

// CMakeMake drives a CMake based build of one package.
type CMakeMake struct {
	cfg        *easyconfig.Config
	srcDir     string
	buildDir   string
	installDir string
	defines    map[string]defineValue

	// Env is applied to every command.
	Env buildsys.Environ
	// Runner executes the cmake commands. Defaults to buildsys.ExecRunner.
	Runner buildsys.Runner
}

var _ buildsys.EasyBlock = (*CMakeMake)(nil)

// ExtraOptions returns the base easyconfig parameters and those understood
// by CMakeMake, merged with extra.
func ExtraOptions(extra easyconfig.Options) easyconfig.Options {
	base := easyconfig.Options{
		"separate_build_dir": {Default: false, Help: "Perform build in a separate directory", Category: easyconfig.Build},
		"build_type":         {Default: "", Help: "Value of CMAKE_BUILD_TYPE", Category: easyconfig.Build},
	}
	return easyconfig.Base().Merge(base).Merge(extra)
}

// New returns a CMakeMake building the sources in srcDir into installDir.
func New(cfg *easyconfig.Config, srcDir, installDir string) *CMakeMake {
	return &CMakeMake{
		cfg:        cfg,
		srcDir:     srcDir,
		installDir: installDir,
		defines:    map[string]defineValue{},
		Env:        buildsys.Environ{},
		Runner:     buildsys.ExecRunner{},
	}
}

// Config returns the configuration being built.
func (c *CMakeMake) Config() *easyconfig.Config { return c.cfg }

// InstallDir returns the installation prefix.
func (c *CMakeMake) InstallDir() string { return c.installDir }

// SourceDir returns the directory holding the top-level CMakeLists.txt.
func (c *CMakeMake) SourceDir() string {
	if sub := c.cfg.Str("srcdir"); sub != "" {
		return filepath.Join(c.srcDir, sub)
	}
	return c.srcDir
}

// Define adds a -D<key>:STRING=<value> definition.
func (c *CMakeMake) Define(key, value string) *CMakeMake {
	c.defines[key] = defineValue{value: value, typeName: "STRING"}
	return c
}

// DefineBool adds a -D<key>:BOOL=ON/OFF definition.
func (c *CMakeMake) DefineBool(key string, value bool) *CMakeMake {
	if value {
		c.defines[key] = defineValue{value: "ON", typeName: "BOOL"}
		return c
	}
	c.defines[key] = defineValue{value: "OFF", typeName: "BOOL"}
	return c
}

// ConfigureStep runs cmake with the install prefix, toolchain compilers,
// definitions and configopts. build_type and the toolchain pic option
// become definitions.
func (c *CMakeMake) ConfigureStep(ctx context.Context) error {
	src := c.SourceDir()
	c.buildDir = src
	if c.cfg.Bool("separate_build_dir") {
		c.buildDir = filepath.Join(src, BuildDirName)
	}
	if err := os.MkdirAll(c.buildDir, 0o755); err != nil {
		return err
	}

	preEnv, err := buildsys.EnvAssignments(c.cfg.Str("preconfigopts"), c.Env.Lookup)
	if err != nil {
		return fmt.Errorf("invalid preconfigopts: %w", err)
	}
	configopts, err := c.opts("configopts")
	if err != nil {
		return err
	}

	if bt := c.cfg.Str("build_type"); bt != "" {
		c.Define("CMAKE_BUILD_TYPE", bt)
	}
	if c.cfg.Toolchain.Option("pic") {
		c.DefineBool("CMAKE_POSITION_INDEPENDENT_CODE", true)
	}

	args := []string{"-S", src, "-B", c.buildDir, "-DCMAKE_INSTALL_PREFIX=" + c.installDir}
	for _, v := range toolchainVars {
		if val := c.Env.Lookup(v.env); val != "" {
			args = append(args, "-D"+v.define+"="+val)
		}
	}
	args = append(args, c.definesArgs()...)
	args = append(args, configopts...)

	return c.run(ctx, args, preEnv)
}

// BuildStep compiles the configured tree.
func (c *CMakeMake) BuildStep(ctx context.Context) error {
	if c.buildDir == "" {
		return errNotConfigured
	}
	args := []string{"--build", c.buildDir}
	if bt := c.cfg.Str("build_type"); bt != "" {
		args = append(args, "--config", bt)
	}
	if n := c.cfg.Int("parallel"); n > 0 {
		args = append(args, "--parallel", strconv.Itoa(n))
	}
	buildopts, err := c.opts("buildopts")
	if err != nil {
		return err
	}
	if len(buildopts) > 0 {
		args = append(append(args, "--"), buildopts...)
	}
	return c.run(ctx, args, nil)
}

// TestStep builds the runtest target. It does nothing when runtest is unset.
func (c *CMakeMake) TestStep(ctx context.Context) error {
	target := c.cfg.Str("runtest")
	if target == "" {
		log.Debugf("no test target configured for %s, skipping tests", c.cfg.Name())
		return nil
	}
	if c.buildDir == "" {
		return errNotConfigured
	}
	args := []string{"--build", c.buildDir, "--target", target}
	testopts, err := c.opts("testopts")
	if err != nil {
		return err
	}
	if len(testopts) > 0 {
		args = append(append(args, "--"), testopts...)
	}
	return c.run(ctx, args, nil)
}

// InstallStep installs the built tree into the install dir.
func (c *CMakeMake) InstallStep(ctx context.Context) error {
	if c.buildDir == "" {
		return errNotConfigured
	}
	args := []string{"--install", c.buildDir, "--prefix", c.installDir}
	installopts, err := c.opts("installopts")
	if err != nil {
		return err
	}
	args = append(args, installopts...)
	return c.run(ctx, args, nil)
}

// SanityCheckStep checks for a non-empty bin and lib directory.
func (c *CMakeMake) SanityCheckStep(ctx context.Context) error {
	return c.SanityCheck(ctx, buildsys.SanityPaths{Dirs: []string{"bin", "lib"}})
}

// SanityCheck verifies paths in the install dir, see buildsys.CheckPaths.
func (c *CMakeMake) SanityCheck(ctx context.Context, paths buildsys.SanityPaths) error {
	if err := buildsys.CheckPaths(c.installDir, paths); err != nil {
		return err
	}
	log.Infof("sanity check for %s successful", c.cfg.Name())
	return nil
}

func (c *CMakeMake) run(ctx context.Context, args []string, extraEnv map[string]string) error {
	cmd := buildsys.Command{Dir: c.buildDir, Name: "cmake", Args: args, Env: c.Env.With(extraEnv)}
	if err := c.Runner.Run(ctx, cmd); err != nil {
		return buildlog.Errorf(err, "cmd \"%s\" failed", cmd)
	}
	return nil
}

func (c *CMakeMake) opts(key string) ([]string, error) {
	words, err := buildsys.SplitOpts(c.cfg.Str(key), c.Env.Lookup)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return words, nil
}

func (c *CMakeMake) definesArgs() []string {
	if len(c.defines) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.defines))
	for k := range c.defines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		def := c.defines[k]
		args = append(args, "-D"+k+":"+def.typeName+"="+def.value)
	}
	return args
}
