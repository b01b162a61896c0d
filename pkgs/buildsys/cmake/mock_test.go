package cmake

import (
	"context"
	"testing"

	"github.com/goplus/easyblocks/pkgs/buildsys"
)

// recordRunner implements buildsys.Runner for testing. It records every command
// instead of running it.
type recordRunner struct {
	cmds []buildsys.Command
	err  error
}

func (r *recordRunner) Run(ctx context.Context, cmd buildsys.Command) error {
	r.cmds = append(r.cmds, cmd)
	return r.err
}

func (r *recordRunner) last(t *testing.T) buildsys.Command {
	t.Helper()
	if len(r.cmds) == 0 {
		t.Fatal("no command was run")
	}
	return r.cmds[len(r.cmds)-1]
}
