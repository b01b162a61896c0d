package buildlog

import (
	"errors"
	"os"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := Errorf(nil, "missing %d files", 2)
	if got, want := err.Error(), "missing 2 files"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err = Errorf(os.ErrExist, "Failed to create symlink '%s' -> '%s'", "a", "b")
	if got, want := err.Error(), "Failed to create symlink 'a' -> 'b': file already exists"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	var wrapped error = Errorf(os.ErrPermission, "install failed")
	if !errors.Is(wrapped, os.ErrPermission) {
		t.Error("errors.Is should see the cause")
	}
	var be *Error
	if !errors.As(wrapped, &be) {
		t.Fatal("errors.As should find *Error")
	}
	if be.Msg != "install failed" {
		t.Errorf("Msg = %q", be.Msg)
	}
}
