package buildsys

import (
	"context"

	"github.com/goplus/easyblocks/easyconfig"
)

// EasyBlock is the lifecycle a build driver walks through for one package.
// Generic implementations (CMake, etc) provide every step; package specific
// blocks embed one and override the steps they need to customize.
type EasyBlock interface {
	// Config returns the mutable configuration of this build.
	Config() *easyconfig.Config

	// Where the package ends up.
	InstallDir() string

	// Lifecycle.
	ConfigureStep(ctx context.Context) error
	BuildStep(ctx context.Context) error
	TestStep(ctx context.Context) error
	InstallStep(ctx context.Context) error
	SanityCheckStep(ctx context.Context) error
}

// SanityPaths lists what must be present in the installation directory
// after a successful install. Paths are relative to the install dir.
type SanityPaths struct {
	Files []string
	Dirs  []string
}
