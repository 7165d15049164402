package engine

import (
	"errors"
	"fmt"

	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/melih-ucgun/ospack/internal/system"
	"github.com/melih-ucgun/ospack/internal/utils"
	"github.com/mitchellh/mapstructure"
)

// Operation names a dispatchable driver operation.
type Operation string

const (
	// OpImplemented answers from the platform alone and never reaches a driver.
	OpImplemented Operation = "implemented"
	OpPkgCmd      Operation = "pkgcmd"
	OpModPkg      Operation = "modpkg"
	OpFind        Operation = "find"
	OpInstall     Operation = "install"
	// OpPing is the identity probe.
	OpPing    Operation = "ping"
	OpRefresh Operation = "refresh"
)

// Operations lists every operation the dispatcher understands.
var Operations = []Operation{OpImplemented, OpPkgCmd, OpModPkg, OpFind, OpInstall, OpPing, OpRefresh}

// Args is the decoded argument bag. "pkg" may be a single name or a list.
type Args struct {
	Module   string   `mapstructure:"module"`
	ModParts []string `mapstructure:"mod_parts"`
	Pkg      []string `mapstructure:"pkg"`
}

// Reply is the outcome of a dispatched operation. OK false with a nil
// error means "not found" or "no".
type Reply struct {
	Value string
	OK    bool
}

// Overrider maps a computed package name to the literal one to use.
type Overrider interface {
	Override(name string) (string, bool)
}

// OverrideFunc adapts a function to Overrider.
type OverrideFunc func(name string) (string, bool)

func (f OverrideFunc) Override(name string) (string, bool) { return f(name) }

// Dispatcher routes operations to the driver selected for the platform.
type Dispatcher struct {
	ctx       *core.SystemContext
	platform  system.Platform
	overrides []Overrider
}

// NewDispatcher builds a dispatcher for a resolved platform. User
// overrides are consulted before the platform table.
func NewDispatcher(ctx *core.SystemContext, platform system.Platform, overrides ...Overrider) *Dispatcher {
	all := make([]Overrider, 0, len(overrides)+1)
	for _, o := range overrides {
		if o != nil {
			all = append(all, o)
		}
	}
	all = append(all, platform)
	return &Dispatcher{ctx: ctx, platform: platform, overrides: all}
}

// Platform returns the platform the dispatcher was built for.
func (d *Dispatcher) Platform() system.Platform { return d.platform }

// Implemented reports whether a platform id and a driver mapping both
// exist. It does not call into the driver.
func (d *Dispatcher) Implemented() bool {
	if d.platform.ID == "" || !d.platform.Supported() {
		return false
	}
	_, ok := core.LookupDriver(d.platform.Driver)
	return ok
}

// Dispatch runs op with the given argument bag.
func (d *Dispatcher) Dispatch(op Operation, bag map[string]any) (Reply, error) {
	if op == OpImplemented {
		return Reply{OK: d.Implemented()}, nil
	}

	args, err := decodeArgs(bag)
	if err != nil {
		return Reply{}, err
	}
	for i, p := range args.Pkg {
		args.Pkg[i] = d.override(p)
	}
	if args.Module != "" {
		args.ModParts = core.ParseModule(args.Module).Parts
	}

	drv, err := d.driver()
	if err != nil {
		return Reply{}, err
	}

	log := d.ctx.Log().With("driver", drv.Name(), "op", string(op))
	log.Trace("dispatch", "module", args.Module, "pkg", args.Pkg)

	switch op {
	case OpPing:
		return Reply{Value: drv.Name(), OK: true}, nil

	case OpPkgCmd:
		return Reply{OK: drv.Available(d.ctx)}, nil

	case OpModPkg:
		if !utils.IsValidModuleName(args.Module) {
			return Reply{}, fmt.Errorf("%s: invalid module name %q", op, args.Module)
		}
		mod := core.Module{Name: args.Module, Parts: args.ModParts}
		name, err := drv.PackageForModule(d.ctx, mod, d.findFunc(drv))
		return reply(name, err)

	case OpFind:
		if len(args.Pkg) != 1 {
			return Reply{}, fmt.Errorf("%s: exactly one package expected, got %d", op, len(args.Pkg))
		}
		name, err := drv.Find(d.ctx, args.Pkg[0])
		return reply(name, err)

	case OpInstall:
		if err := drv.Install(d.ctx, args.Pkg); err != nil {
			return Reply{}, err
		}
		return Reply{OK: true}, nil

	case OpRefresh:
		r, ok := drv.(core.Refresher)
		if !ok {
			return Reply{}, fmt.Errorf("%s on %s: %w", op, drv.Name(), core.ErrNotImplemented)
		}
		if err := r.Refresh(d.ctx); err != nil {
			return Reply{}, err
		}
		return Reply{OK: true}, nil
	}

	return Reply{}, fmt.Errorf("%s: %w", op, core.ErrNotImplemented)
}

// driver resolves the active driver and checks it answers to its id.
func (d *Dispatcher) driver() (core.Driver, error) {
	if !d.Implemented() {
		return nil, fmt.Errorf("platform %q: %w", d.platform.ID, core.ErrUnsupportedPlatform)
	}
	drv, _ := core.LookupDriver(d.platform.Driver)
	if got := drv.Name(); got != d.platform.Driver {
		return nil, fmt.Errorf("driver %q answered as %q: %w", d.platform.Driver, got, core.ErrNotUsable)
	}
	return drv, nil
}

func (d *Dispatcher) override(name string) string {
	for _, o := range d.overrides {
		if got, ok := o.Override(name); ok {
			d.ctx.Log().Debug("package override", "from", name, "to", got)
			return got
		}
	}
	return name
}

// findFunc lets drivers confirm names they construct themselves with
// overrides applied. Only an exact name match counts.
func (d *Dispatcher) findFunc(drv core.Driver) core.FindFunc {
	return func(pkg string) (string, error) {
		return core.FindExact(d.ctx, drv, d.override(pkg))
	}
}

func reply(value string, err error) (Reply, error) {
	if errors.Is(err, core.ErrNotFound) {
		return Reply{}, nil
	}
	if err != nil {
		return Reply{}, err
	}
	return Reply{Value: value, OK: true}, nil
}

func decodeArgs(bag map[string]any) (Args, error) {
	var args Args
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &args,
		WeaklyTypedInput: true, // "pkg": "vim" -> []string{"vim"}
		ErrorUnused:      true,
	})
	if err != nil {
		return args, err
	}
	if err := decoder.Decode(bag); err != nil {
		return args, fmt.Errorf("argument bag: %w", err)
	}
	return args, nil
}

// Typed helpers for the common operations.

// ModPkg returns the OS package for a module. ok is false when none exists.
func (d *Dispatcher) ModPkg(module string) (string, bool, error) {
	r, err := d.Dispatch(OpModPkg, map[string]any{"module": module})
	return r.Value, r.OK, err
}

// Find returns the last matching package name.
func (d *Dispatcher) Find(pkg string) (string, bool, error) {
	r, err := d.Dispatch(OpFind, map[string]any{"pkg": pkg})
	return r.Value, r.OK, err
}

// Install installs packages through the active driver.
func (d *Dispatcher) Install(pkgs ...string) error {
	_, err := d.Dispatch(OpInstall, map[string]any{"pkg": pkgs})
	return err
}

// Refresh updates the package index. Drivers without the capability
// return core.ErrNotImplemented.
func (d *Dispatcher) Refresh() error {
	_, err := d.Dispatch(OpRefresh, nil)
	return err
}

// Ping returns the active driver id.
func (d *Dispatcher) Ping() (string, error) {
	r, err := d.Dispatch(OpPing, nil)
	return r.Value, err
}
