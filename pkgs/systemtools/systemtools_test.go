package systemtools

import (
	"runtime"
	"testing"
)

func TestSharedLibExtFor(t *testing.T) {
	tests := []struct {
		osType  string
		want    string
		wantErr bool
	}{
		{Linux, "so", false},
		{FreeBSD, "so", false},
		{Darwin, "dylib", false},
		{Windows, "dll", false},
		{"Plan9", "", true},
	}
	for _, tt := range tests {
		got, err := SharedLibExtFor(tt.osType)
		if (err != nil) != tt.wantErr {
			t.Errorf("SharedLibExtFor(%q) error = %v, wantErr %v", tt.osType, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("SharedLibExtFor(%q) = %q, want %q", tt.osType, got, tt.want)
		}
	}
}

func TestOSTypeMatchesGOOS(t *testing.T) {
	want := osTypeFromGOOS(runtime.GOOS)
	if got := OSType(); got != want {
		t.Errorf("OSType() = %q, want %q", got, want)
	}
}

func TestSharedLibExtHost(t *testing.T) {
	ext, err := SharedLibExt()
	switch runtime.GOOS {
	case "linux":
		if err != nil || ext != "so" {
			t.Errorf("SharedLibExt() = %q, %v; want so", ext, err)
		}
	case "darwin":
		if err != nil || ext != "dylib" {
			t.Errorf("SharedLibExt() = %q, %v; want dylib", ext, err)
		}
	}
}
