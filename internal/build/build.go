package build

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goplus/easyblocks/pkgs/buildsys"
	"github.com/qiniu/x/log"
)

// Step names a stage of the build lifecycle.
type Step string

const (
	Configure   Step = "configure"
	Compile     Step = "build"
	Test        Step = "test"
	Install     Step = "install"
	SanityCheck Step = "sanitycheck"
)

// Steps lists the lifecycle in execution order.
var Steps = []Step{Configure, Compile, Test, Install, SanityCheck}

// ParseStep returns the Step named s.
func ParseStep(s string) (Step, error) {
	for _, step := range Steps {
		if string(step) == s {
			return step, nil
		}
	}
	names := make([]string, len(Steps))
	for i, step := range Steps {
		names[i] = string(step)
	}
	return "", fmt.Errorf("unknown step %q, valid steps are: %s", s, strings.Join(names, ", "))
}

// Options control a Build.
type Options struct {
	// SkipTest skips the test step.
	SkipTest bool
	// StopAfter ends the build after the named step. Empty runs all steps.
	StopAfter Step
	// Force rebuilds even if the installation directory records a
	// previous successful build.
	Force bool
}

// Builder walks an EasyBlock through its lifecycle.
type Builder struct {
	opts Options
}

// NewBuilder returns a Builder with the given options.
func NewBuilder(opts Options) (*Builder, error) {
	if opts.StopAfter != "" {
		if _, err := ParseStep(string(opts.StopAfter)); err != nil {
			return nil, err
		}
	}
	return &Builder{opts: opts}, nil
}

// Build runs the lifecycle steps of block in order. The first failing step
// ends the build; its error is returned wrapped with the step name. A
// complete build is recorded in the installation directory, and a recorded
// installation is not built again unless Options.Force is set.
func (b *Builder) Build(ctx context.Context, block buildsys.EasyBlock) error {
	cfg := block.Config()
	installDir := block.InstallDir()
	label := cfg.Name() + "/" + cfg.FullVersion()

	if !b.opts.Force {
		if cache, err := loadBuildCache(installDir); err == nil {
			log.Infof("%s is already installed in %s (built %s), skipping", label, installDir, cache.BuildTime.Format(time.RFC3339))
			return nil
		}
	}

	for _, step := range Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if step == Test && b.opts.SkipTest {
			log.Infof("%s: skipping %s step", label, step)
			continue
		}
		if step == Install {
			if err := os.MkdirAll(installDir, 0o755); err != nil {
				return fmt.Errorf("failed to create installation directory: %w", err)
			}
		}

		log.Infof("%s: running %s step", label, step)
		start := time.Now()
		if err := runStep(ctx, block, step); err != nil {
			return fmt.Errorf("%s: %s step failed: %w", label, step, err)
		}
		log.Debugf("%s: %s step took %s", label, step, time.Since(start).Round(time.Millisecond))

		if step == b.opts.StopAfter {
			log.Infof("%s: stopping after %s step", label, step)
			return nil
		}
	}

	cache := buildCache{
		Name:       cfg.Name(),
		Version:    cfg.Version(),
		Toolchain:  cfg.Toolchain.String(),
		EasyBlock:  cfg.Str("easyblock"),
		Configopts: cfg.Str("configopts"),
		BuildTime:  time.Now(),
	}
	if err := saveBuildCache(installDir, &cache); err != nil {
		return err
	}
	log.Infof("%s: installed in %s", label, installDir)
	return nil
}

func runStep(ctx context.Context, block buildsys.EasyBlock, step Step) error {
	switch step {
	case Configure:
		return block.ConfigureStep(ctx)
	case Compile:
		return block.BuildStep(ctx)
	case Test:
		return block.TestStep(ctx)
	case Install:
		return block.InstallStep(ctx)
	case SanityCheck:
		return block.SanityCheckStep(ctx)
	}
	panic("build: unknown step " + string(step))
}
