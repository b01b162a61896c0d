// Package superlu builds and installs the SuperLU sparse direct solver.
package superlu

import (
	"context"
	"os"
	"path/filepath"

	"github.com/goplus/easyblocks/easyblocks"
	"github.com/goplus/easyblocks/easyconfig"
	"github.com/goplus/easyblocks/pkgs/buildlog"
	"github.com/goplus/easyblocks/pkgs/buildsys"
	"github.com/goplus/easyblocks/pkgs/buildsys/cmake"
	"github.com/goplus/easyblocks/pkgs/modules"
	"github.com/goplus/easyblocks/pkgs/systemtools"
	"github.com/qiniu/x/log"
)

const libName = "libsuperlu"

func init() {
	easyblocks.Register("SuperLU", ExtraOptions(), func(cfg *easyconfig.Config, srcDir, installDir string) buildsys.EasyBlock {
		return New(cfg, srcDir, installDir)
	})
}

// blasRule selects BLAS when its software is loaded.
// flag returns the configure option for the software installed at root.
type blasRule struct {
	software string
	flag     func(root string) string
}

// BLAS providers in order of preference. CMake's FindBLAS does not know
// OpenBLAS, so its library is passed by hand.
var blasRules = []blasRule{
	{"imkl", vendor("Intel10_64lp")},
	{"ACML", vendor("ACML")},
	{"ATLAS", vendor("ATLAS")},
	{"OpenBLAS", func(root string) string {
		return `-DBLAS_LIBRARIES="` + filepath.Join(root, "lib", "libopenblas.a") + `;-pthread"`
	}},
}

// blasFallback lets FindBLAS try every vendor; configure fails if none is found.
const blasFallback = `-DBLA_VENDOR="All"`

func vendor(name string) func(string) string {
	return func(string) string { return `-DBLA_VENDOR="` + name + `"` }
}

// SuperLU customizes the generic CMake build for SuperLU.
type SuperLU struct {
	*cmake.CMakeMake

	// Probe finds loaded software. Defaults to modules.SoftwareRoot.
	Probe modules.Probe
	// SharedLibExt returns the platform shared library extension.
	// Defaults to systemtools.SharedLibExt.
	SharedLibExt func() (string, error)
}

var _ buildsys.EasyBlock = (*SuperLU)(nil)

// ExtraOptions returns the easyconfig parameters understood by SuperLU.
func ExtraOptions() easyconfig.Options {
	return cmake.ExtraOptions(easyconfig.Options{
		"build_shared_libs": {Default: false, Help: "Build shared library (instead of static library)", Category: easyconfig.Custom},
	})
}

// New returns a SuperLU block building srcDir into installDir.
func New(cfg *easyconfig.Config, srcDir, installDir string) *SuperLU {
	return &SuperLU{
		CMakeMake:    cmake.New(cfg, srcDir, installDir),
		Probe:        modules.SoftwareRoot,
		SharedLibExt: systemtools.SharedLibExt,
	}
}

// ConfigureStep sets the CMake options for SuperLU.
func (s *SuperLU) ConfigureStep(ctx context.Context) error {
	cfg := s.Config()
	cfg.Set("separate_build_dir", true)

	cfg.Update("configopts", onOff("BUILD_SHARED_LIBS", cfg.Bool("build_shared_libs")))
	cfg.Update("configopts", onOff("CMAKE_POSITION_INDEPENDENT_CODE", cfg.Toolchain.Option("pic")))

	// never build the slow reference BLAS shipped with SuperLU
	cfg.Update("configopts", "-Denable_blaslib=OFF")

	flag, root := s.blasFlag()
	cfg.Update("configopts", flag)
	if root != "" {
		s.Env.Use(root)
	}

	return s.CMakeMake.ConfigureStep(ctx)
}

// blasFlag returns the BLAS configure option and the root of the
// selected BLAS, or "" when FindBLAS is left to search.
func (s *SuperLU) blasFlag() (flag, root string) {
	for _, r := range blasRules {
		if root, ok := s.Probe(r.software); ok {
			log.Debugf("using BLAS from %s at %s", r.software, root)
			return r.flag(root), root
		}
	}
	log.Debugf("no known BLAS loaded, letting FindBLAS pick one")
	return blasFallback, ""
}

// TestStep runs the SuperLU test suite.
func (s *SuperLU) TestStep(ctx context.Context) error {
	s.Config().Set("runtest", "test")
	return s.CMakeMake.TestStep(ctx)
}

// InstallStep installs SuperLU, then links libsuperlu.<ext> to the
// version-suffixed library produced by the upstream build.
func (s *SuperLU) InstallStep(ctx context.Context) error {
	if err := s.CMakeMake.InstallStep(ctx); err != nil {
		return err
	}

	ext, err := s.LibExt()
	if err != nil {
		return err
	}
	libDir := filepath.Join(s.InstallDir(), "lib")
	expected := filepath.Join(libDir, libName+"."+ext)
	actual := filepath.Join(libDir, libName+"_"+s.Config().Version()+"."+ext)

	if _, err := os.Lstat(expected); err == nil {
		log.Debugf("%s already exists, not creating symlink", expected)
		return nil
	}
	if err := os.Symlink(actual, expected); err != nil {
		return buildlog.Errorf(err, "Failed to create symlink '%s' -> '%s'", expected, actual)
	}
	log.Infof("created symlink %s -> %s", expected, actual)
	return nil
}

// SanityCheckStep checks for the main header and library of SuperLU.
func (s *SuperLU) SanityCheckStep(ctx context.Context) error {
	ext, err := s.LibExt()
	if err != nil {
		return err
	}
	return s.SanityCheck(ctx, buildsys.SanityPaths{
		Files: []string{"include/supermatrix.h", "lib/" + libName + "." + ext},
	})
}

// LibExt returns the extension of the installed library: the shared
// library extension when build_shared_libs is set, "a" otherwise.
func (s *SuperLU) LibExt() (string, error) {
	if s.Config().Bool("build_shared_libs") {
		return s.SharedLibExt()
	}
	return "a", nil
}

func onOff(name string, on bool) string {
	if on {
		return "-D" + name + "=ON"
	}
	return "-D" + name + "=OFF"
}
