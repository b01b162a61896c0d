package build

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Installation directory layout:
//
//	installDir/
//	  easybuild/
//	    .cache.json   # record of the build that produced this installation
//	  include/
//	  lib/
//	  ...
const (
	recordDir = "easybuild"
	cacheFile = ".cache.json"
)

// buildCache records a successful build in its installation directory.
type buildCache struct {
	Name       string    `json:"name"`
	Version    string    `json:"version"`
	Toolchain  string    `json:"toolchain"`
	EasyBlock  string    `json:"easyblock,omitempty"`
	Configopts string    `json:"configopts,omitempty"`
	BuildTime  time.Time `json:"build_time"`
}

func cachePath(installDir string) string {
	return filepath.Join(installDir, recordDir, cacheFile)
}

// loadBuildCache reads the build record of installDir.
func loadBuildCache(installDir string) (*buildCache, error) {
	data, err := os.ReadFile(cachePath(installDir))
	if err != nil {
		return nil, err
	}
	var cache buildCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}
	return &cache, nil
}

// saveBuildCache writes the build record of installDir.
func saveBuildCache(installDir string, cache *buildCache) error {
	path := cachePath(installDir)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
