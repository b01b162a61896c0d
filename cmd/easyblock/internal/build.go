package internal

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/goplus/easyblocks/easyblocks"
	"github.com/goplus/easyblocks/easyconfig"
	"github.com/goplus/easyblocks/internal/build"
	"github.com/goplus/easyblocks/internal/env"
	"github.com/goplus/easyblocks/pkgs/buildsys"
	"github.com/spf13/cobra"
)

var (
	buildSrcDir     string
	buildInstallDir string
	buildEasyblock  string
	buildSkipTest   bool
	buildStop       string
	buildForce      bool
)

var buildCmd = &cobra.Command{
	Use:   "build [easyconfig]",
	Short: "Build and install the package described by an easyconfig",
	Long:  `Build loads an easyconfig file (.yaml, .yml or .toml), picks its easyblock and runs the configure, build, test, install and sanity check steps.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildSrcDir, "srcdir", "s", ".", "Directory holding the unpacked sources")
	buildCmd.Flags().StringVarP(&buildInstallDir, "installdir", "i", "", "Installation prefix (default <workdir>/software/<name>/<version>)")
	buildCmd.Flags().StringVar(&buildEasyblock, "easyblock", "", "Easyblock to use, overrides the easyconfig")
	buildCmd.Flags().BoolVar(&buildSkipTest, "skip-test", false, "Skip the test step")
	buildCmd.Flags().StringVar(&buildStop, "stop", "", "Stop after the given step")
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "Rebuild even if already installed")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	block, err := loadBlock(args[0], buildEasyblock, buildSrcDir, buildInstallDir)
	if err != nil {
		return err
	}

	builder, err := build.NewBuilder(build.Options{
		SkipTest:  buildSkipTest,
		StopAfter: build.Step(buildStop),
		Force:     buildForce,
	})
	if err != nil {
		return err
	}

	cfg := block.Config()
	if err := builder.Build(ctx, block); err != nil {
		return fmt.Errorf("failed to build %s/%s: %w", cfg.Name(), cfg.FullVersion(), err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), block.InstallDir())
	return nil
}

// loadBlock reads the easyconfig at path and creates its easyblock. The
// block is chosen by override, then by the easyconfig's easyblock
// parameter, then by the software name.
func loadBlock(path, override, srcDir, installDir string) (buildsys.EasyBlock, error) {
	ebName, swName, err := easyconfig.PeekEasyblock(path)
	if err != nil {
		return nil, err
	}
	switch {
	case override != "":
		ebName = override
	case ebName == "":
		ebName = swName
	}
	entry, err := easyblocks.Lookup(ebName)
	if err != nil {
		return nil, err
	}

	cfg, err := easyconfig.Load(path, entry.Options)
	if err != nil {
		return nil, err
	}

	if installDir == "" {
		installDir = cfg.Str("installdir")
	}
	if installDir == "" {
		if installDir, err = env.InstallDir(cfg.Name(), cfg.FullVersion()); err != nil {
			return nil, fmt.Errorf("failed to get install dir: %w", err)
		}
	}
	if installDir, err = filepath.Abs(installDir); err != nil {
		return nil, err
	}
	if srcDir, err = filepath.Abs(srcDir); err != nil {
		return nil, err
	}
	return entry.New(cfg, srcDir, installDir), nil
}
