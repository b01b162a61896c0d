package configuremake

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"runtime"
	"testing"

	"github.com/goplus/easyblocks/easyconfig"
	"github.com/goplus/easyblocks/pkgs/buildsys"
)

// recordRunner implements buildsys.Runner for testing.
type recordRunner struct {
	cmds []buildsys.Command
	err  error
}

func (r *recordRunner) Run(ctx context.Context, cmd buildsys.Command) error {
	r.cmds = append(r.cmds, cmd)
	return r.err
}

func newTestMake(t *testing.T) (*ConfigureMake, *recordRunner) {
	cfg := easyconfig.New("zlib", "1.2.8", ExtraOptions(nil))
	m := New(cfg, t.TempDir(), filepath.Join(t.TempDir(), "install"))
	r := &recordRunner{}
	m.Runner = r
	return m, r
}

func TestLifecycleCommands(t *testing.T) {
	m, r := newTestMake(t)
	cfg := m.Config()
	cfg.Set("configopts", "--enable-shared --with-x='a b'")
	cfg.Set("preconfigopts", "CFLAGS=-O3")
	cfg.Set("parallel", 8)
	cfg.Set("buildopts", "V=1")
	cfg.Set("runtest", "check")
	cfg.Set("installopts", "DESTDIR=")
	ctx := context.Background()

	for _, step := range []func(context.Context) error{m.ConfigureStep, m.BuildStep, m.TestStep, m.InstallStep} {
		if err := step(ctx); err != nil {
			t.Fatal(err)
		}
	}

	want := []buildsys.Command{
		{Name: "./configure", Args: []string{"--prefix=" + m.InstallDir(), "--enable-shared", "--with-x=a b"}},
		{Name: "make", Args: []string{"-j", "8", "V=1"}},
		{Name: "make", Args: []string{"check"}},
		{Name: "make", Args: []string{"install", "DESTDIR="}},
	}
	if len(r.cmds) != len(want) {
		t.Fatalf("ran %d commands, want %d: %v", len(r.cmds), len(want), r.cmds)
	}
	for i, got := range r.cmds {
		if got.Name != want[i].Name || !reflect.DeepEqual(got.Args, want[i].Args) {
			t.Errorf("command %d = %s, want %s", i, got, want[i])
		}
		if got.Dir != m.SourceDir() {
			t.Errorf("command %d ran in %q, want %q", i, got.Dir, m.SourceDir())
		}
	}
	if r.cmds[0].Env["CFLAGS"] != "-O3" {
		t.Errorf("configure env = %v", r.cmds[0].Env)
	}
	if _, ok := r.cmds[1].Env["CFLAGS"]; ok {
		t.Error("preconfigopts should only apply to configure")
	}
}

func TestCustomConfigureCommand(t *testing.T) {
	m, r := newTestMake(t)
	m.Config().Set("configure_cmd", "sh ./Configure")
	m.Config().Set("prefix_opt", "-prefix ")
	m.Config().Set("srcdir", "src")
	if err := m.ConfigureStep(context.Background()); err != nil {
		t.Fatal(err)
	}
	got := r.cmds[0]
	if got.Name != "sh" || !reflect.DeepEqual(got.Args, []string{"./Configure", "-prefix " + m.InstallDir()}) {
		t.Errorf("configure command = %s", got)
	}
	if want := filepath.Join(m.srcDir, "src"); got.Dir != want {
		t.Errorf("command dir = %q, want %q", got.Dir, want)
	}

	m.Config().Set("configure_cmd", " ")
	if err := m.ConfigureStep(context.Background()); err == nil {
		t.Error("empty configure_cmd should fail")
	}
}

func TestStepsRequireConfigure(t *testing.T) {
	m, _ := newTestMake(t)
	m.Config().Set("runtest", "check")
	for name, step := range map[string]func(context.Context) error{
		"build":   m.BuildStep,
		"test":    m.TestStep,
		"install": m.InstallStep,
	} {
		if err := step(context.Background()); !errors.Is(err, errNotConfigured) {
			t.Errorf("%s before configure: error = %v", name, err)
		}
	}
}

func TestConfigureFailure(t *testing.T) {
	m, r := newTestMake(t)
	r.err = errors.New("exit status 77")
	if err := m.ConfigureStep(context.Background()); !errors.Is(err, r.err) {
		t.Fatalf("ConfigureStep() error = %v", err)
	}
	if err := m.BuildStep(context.Background()); !errors.Is(err, errNotConfigured) {
		t.Errorf("failed configure should leave the build unconfigured, got %v", err)
	}
}

func TestSanityCheckStep(t *testing.T) {
	m, _ := newTestMake(t)
	if err := m.SanityCheckStep(context.Background()); err == nil {
		t.Error("empty install should fail the sanity check")
	}
	for _, f := range []string{"bin/tool", "lib/libz.a"} {
		p := filepath.Join(m.InstallDir(), f)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := m.SanityCheckStep(context.Background()); err != nil {
		t.Errorf("SanityCheckStep() = %v", err)
	}
}

func TestBuildE2E(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	for _, tool := range []string{"sh", "make"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not found in PATH", tool)
		}
	}

	src := t.TempDir()
	configure := `#!/bin/sh
prefix=
for arg in "$@"; do
  case "$arg" in
    --prefix=*) prefix="${arg#--prefix=}" ;;
  esac
done
printf 'PREFIX = %s\n' "$prefix" > Makefile.inc
`
	makefile := "include Makefile.inc\n\nall:\n\techo built > tool\n\ninstall:\n\tmkdir -p $(PREFIX)/bin $(PREFIX)/lib\n\tcp tool $(PREFIX)/bin/tool\n\tcp tool $(PREFIX)/lib/libtool.a\n"
	if err := os.WriteFile(filepath.Join(src, "configure"), []byte(configure), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "Makefile"), []byte(makefile), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := easyconfig.New("tool", "1.0", ExtraOptions(nil))
	m := New(cfg, src, filepath.Join(t.TempDir(), "install"))
	ctx := context.Background()
	for _, step := range []func(context.Context) error{m.ConfigureStep, m.BuildStep, m.TestStep, m.InstallStep, m.SanityCheckStep} {
		if err := step(ctx); err != nil {
			t.Fatal(err)
		}
	}
}
