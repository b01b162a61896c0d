package buildsys

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goplus/easyblocks/pkgs/buildlog"
)

func TestCheckPaths(t *testing.T) {
	install := t.TempDir()
	paths := SanityPaths{
		Files: []string{"include/supermatrix.h"},
		Dirs:  []string{"lib"},
	}

	err := CheckPaths(install, paths)
	var be *buildlog.Error
	if !errors.As(err, &be) {
		t.Fatalf("CheckPaths() error = %v, want *buildlog.Error", err)
	}
	for _, want := range []string{
		"no file found at " + filepath.Join(install, "include", "supermatrix.h"),
		"no (non-empty) directory found at " + filepath.Join(install, "lib"),
	} {
		if !strings.Contains(be.Msg, want) {
			t.Errorf("Msg %q should contain %q", be.Msg, want)
		}
	}

	// An empty directory is not enough.
	if err := os.MkdirAll(filepath.Join(install, "lib"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := CheckPaths(install, SanityPaths{Dirs: []string{"lib"}}); err == nil {
		t.Error("empty lib dir should fail the check")
	}

	for _, f := range []string{"include/supermatrix.h", "lib/libsuperlu.a"} {
		p := filepath.Join(install, f)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := CheckPaths(install, paths); err != nil {
		t.Errorf("CheckPaths() = %v", err)
	}
}

func TestCheckPathsEmpty(t *testing.T) {
	if err := CheckPaths(filepath.Join(t.TempDir(), "missing"), SanityPaths{}); err != nil {
		t.Errorf("CheckPaths() with nothing to check = %v", err)
	}
}
