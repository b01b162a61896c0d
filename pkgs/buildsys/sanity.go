package buildsys

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goplus/easyblocks/pkgs/buildlog"
	"github.com/qiniu/x/log"
)

// CheckPaths verifies that every file in paths exists under installDir as a
// file (symlinks are followed) and every dir exists and is not empty. All
// problems are reported together in one *buildlog.Error.
func CheckPaths(installDir string, paths SanityPaths) error {
	var missing []string
	for _, f := range paths.Files {
		p := filepath.Join(installDir, f)
		if fi, err := os.Stat(p); err != nil || fi.IsDir() {
			missing = append(missing, "no file found at "+p)
			continue
		}
		log.Debugf("sanity check: found file %s", p)
	}
	for _, d := range paths.Dirs {
		p := filepath.Join(installDir, d)
		entries, err := os.ReadDir(p)
		if err != nil || len(entries) == 0 {
			missing = append(missing, "no (non-empty) directory found at "+p)
			continue
		}
		log.Debugf("sanity check: found non-empty directory %s", p)
	}
	if len(missing) > 0 {
		return buildlog.Errorf(nil, "Sanity check failed: %s", strings.Join(missing, ", "))
	}
	return nil
}
