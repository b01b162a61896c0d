// Package configuremake implements the generic configure/make/make install build.
package configuremake

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/goplus/easyblocks/easyconfig"
	"github.com/goplus/easyblocks/pkgs/buildlog"
	"github.com/goplus/easyblocks/pkgs/buildsys"
	"github.com/qiniu/x/log"
)

var errNotConfigured = errors.New("configure step has not run")

// ConfigureMake drives an Autotools style build of one package.
type ConfigureMake struct {
	cfg        *easyconfig.Config
	srcDir     string
	installDir string
	configured bool

	// Env is applied to every command.
	Env buildsys.Environ
	// Runner executes the commands. Defaults to buildsys.ExecRunner.
	Runner buildsys.Runner
}

var _ buildsys.EasyBlock = (*ConfigureMake)(nil)

// ExtraOptions returns the base easyconfig parameters and those understood
// by ConfigureMake, merged with extra.
func ExtraOptions(extra easyconfig.Options) easyconfig.Options {
	base := easyconfig.Options{
		"configure_cmd": {Default: "./configure", Help: "Configure command to run", Category: easyconfig.Build},
		"prefix_opt":    {Default: "--prefix=", Help: "Option used to pass the install prefix to configure", Category: easyconfig.Build},
	}
	return easyconfig.Base().Merge(base).Merge(extra)
}

// New returns a ConfigureMake building the sources in srcDir into installDir.
func New(cfg *easyconfig.Config, srcDir, installDir string) *ConfigureMake {
	return &ConfigureMake{
		cfg:        cfg,
		srcDir:     srcDir,
		installDir: installDir,
		Env:        buildsys.Environ{},
		Runner:     buildsys.ExecRunner{},
	}
}

// Config returns the configuration being built.
func (m *ConfigureMake) Config() *easyconfig.Config { return m.cfg }

// InstallDir returns the installation prefix.
func (m *ConfigureMake) InstallDir() string { return m.installDir }

// SourceDir returns the directory configure and make run in.
func (m *ConfigureMake) SourceDir() string {
	if sub := m.cfg.Str("srcdir"); sub != "" {
		return filepath.Join(m.srcDir, sub)
	}
	return m.srcDir
}

// ConfigureStep runs the configure command with the install prefix and configopts.
func (m *ConfigureMake) ConfigureStep(ctx context.Context) error {
	preEnv, err := buildsys.EnvAssignments(m.cfg.Str("preconfigopts"), m.Env.Lookup)
	if err != nil {
		return fmt.Errorf("invalid preconfigopts: %w", err)
	}
	cmdWords, err := m.opts("configure_cmd")
	if err != nil {
		return err
	}
	if len(cmdWords) == 0 {
		return fmt.Errorf("configure_cmd is empty")
	}
	configopts, err := m.opts("configopts")
	if err != nil {
		return err
	}

	args := append([]string(nil), cmdWords[1:]...)
	args = append(args, m.cfg.Str("prefix_opt")+m.installDir)
	args = append(args, configopts...)
	if err := m.run(ctx, cmdWords[0], args, preEnv); err != nil {
		return err
	}
	m.configured = true
	return nil
}

// BuildStep runs make.
func (m *ConfigureMake) BuildStep(ctx context.Context) error {
	if !m.configured {
		return errNotConfigured
	}
	var args []string
	if n := m.cfg.Int("parallel"); n > 0 {
		args = append(args, "-j", strconv.Itoa(n))
	}
	buildopts, err := m.opts("buildopts")
	if err != nil {
		return err
	}
	return m.run(ctx, "make", append(args, buildopts...), nil)
}

// TestStep runs "make <runtest>". It does nothing when runtest is unset.
func (m *ConfigureMake) TestStep(ctx context.Context) error {
	target := m.cfg.Str("runtest")
	if target == "" {
		log.Debugf("no test target configured for %s, skipping tests", m.cfg.Name())
		return nil
	}
	if !m.configured {
		return errNotConfigured
	}
	testopts, err := m.opts("testopts")
	if err != nil {
		return err
	}
	return m.run(ctx, "make", append([]string{target}, testopts...), nil)
}

// InstallStep runs make install.
func (m *ConfigureMake) InstallStep(ctx context.Context) error {
	if !m.configured {
		return errNotConfigured
	}
	installopts, err := m.opts("installopts")
	if err != nil {
		return err
	}
	return m.run(ctx, "make", append([]string{"install"}, installopts...), nil)
}

// SanityCheckStep checks for a non-empty bin and lib directory.
func (m *ConfigureMake) SanityCheckStep(ctx context.Context) error {
	if err := buildsys.CheckPaths(m.installDir, buildsys.SanityPaths{Dirs: []string{"bin", "lib"}}); err != nil {
		return err
	}
	log.Infof("sanity check for %s successful", m.cfg.Name())
	return nil
}

func (m *ConfigureMake) run(ctx context.Context, name string, args []string, extraEnv map[string]string) error {
	cmd := buildsys.Command{Dir: m.SourceDir(), Name: name, Args: args, Env: m.Env.With(extraEnv)}
	if err := m.Runner.Run(ctx, cmd); err != nil {
		return buildlog.Errorf(err, "cmd \"%s\" failed", cmd)
	}
	return nil
}

func (m *ConfigureMake) opts(key string) ([]string, error) {
	words, err := buildsys.SplitOpts(m.cfg.Str(key), m.Env.Lookup)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return words, nil
}
