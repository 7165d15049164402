package engine

import (
	"bytes"
	"errors"

	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/melih-ucgun/ospack/internal/system"

	_ "github.com/melih-ucgun/ospack/internal/adapters/pkg"
)

// newTestDispatcher builds a dispatcher for a platform id with the given
// commands injected into the sysenv and a mock runner.
func newTestDispatcher(id string, commands ...string) (*Dispatcher, *core.MockRunner) {
	ctx := core.NewSystemContext(false)
	for _, c := range commands {
		ctx.Sysenv.SetCommand(c, "/usr/bin/"+c)
	}
	mock := core.NewMockRunner()
	ctx.Runner = mock
	ctx.Stdout = &bytes.Buffer{}
	ctx.Stderr = &bytes.Buffer{}

	p := system.Resolve(system.OSInfo{Kernel: "linux", ID: id})
	return NewDispatcher(ctx, p), mock
}

// fakeFallback records what it was asked to install.
type fakeFallback struct {
	ready     func() bool
	loadable  map[string]bool
	fail      map[string]error
	installed []string
	probed    []string
}

func (f *fakeFallback) Ready(*core.SystemContext) bool {
	if f.ready == nil {
		return true
	}
	return f.ready()
}

func (f *fakeFallback) Installed(_ *core.SystemContext, module string) bool {
	f.probed = append(f.probed, module)
	return f.loadable[module]
}

func (f *fakeFallback) Install(_ *core.SystemContext, module string) error {
	f.installed = append(f.installed, module)
	return f.fail[module]
}

type fakeRecorder struct {
	platform string
	results  []core.Result
	err      error
}

func (r *fakeRecorder) Record(platform string, results []core.Result) error {
	r.platform = platform
	r.results = results
	return r.err
}

var errBoom = errors.New("boom")
