package buildsys

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/shlex"
)

// SplitOpts expands $VAR references in s using lookup and splits the
// result into words the way a POSIX shell would.
func SplitOpts(s string, lookup func(string) string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	return shlex.Split(os.Expand(s, lookup))
}

// EnvAssignments parses "KEY=VAL ..." words, as found in preconfigopts,
// into an environment map.
func EnvAssignments(s string, lookup func(string) string) (map[string]string, error) {
	words, err := SplitOpts(s, lookup)
	if err != nil {
		return nil, err
	}
	env := make(map[string]string, len(words))
	for _, w := range words {
		k, v, ok := strings.Cut(w, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%q is not a KEY=VALUE assignment", w)
		}
		env[k] = v
	}
	return env, nil
}
