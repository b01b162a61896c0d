// Package generic registers the build blocks that need no package
// specific logic. An easyconfig selects one with its easyblock parameter.
package generic

import (
	"github.com/goplus/easyblocks/easyblocks"
	"github.com/goplus/easyblocks/easyconfig"
	"github.com/goplus/easyblocks/pkgs/buildsys"
	"github.com/goplus/easyblocks/pkgs/buildsys/cmake"
	"github.com/goplus/easyblocks/pkgs/buildsys/configuremake"
)

func init() {
	easyblocks.Register("CMakeMake", cmake.ExtraOptions(nil), func(cfg *easyconfig.Config, srcDir, installDir string) buildsys.EasyBlock {
		return cmake.New(cfg, srcDir, installDir)
	})
	easyblocks.Register("ConfigureMake", configuremake.ExtraOptions(nil), func(cfg *easyconfig.Config, srcDir, installDir string) buildsys.EasyBlock {
		return configuremake.New(cfg, srcDir, installDir)
	})
}
