package engine

import (
	"errors"
	"fmt"

	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/melih-ucgun/ospack/internal/utils"
)

// BootstrapModule is the module whose OS package provides the fallback
// installer.
const BootstrapModule = "App::cpanminus"

// Fallback is the ecosystem installer used when no OS package serves a
// module.
type Fallback interface {
	// Ready reports whether the installer itself is available.
	Ready(ctx *core.SystemContext) bool
	// Installed reports whether a module is already loadable.
	Installed(ctx *core.SystemContext, module string) bool
	Install(ctx *core.SystemContext, module string) error
}

// Recorder persists the results of a batch run.
type Recorder interface {
	Record(platform string, results []core.Result) error
}

type InstallerOptions struct {
	// Probe asks the fallback whether a module is already loadable
	// before installing anything.
	Probe    bool
	Recorder Recorder
}

// Installer satisfies modules from OS packages where possible and from
// the fallback otherwise.
type Installer struct {
	ctx        *core.SystemContext
	dispatcher *Dispatcher
	fallback   Fallback
	opts       InstallerOptions

	// known holds modules satisfied during this run.
	known map[string]bool
}

func NewInstaller(ctx *core.SystemContext, d *Dispatcher, fb Fallback, opts InstallerOptions) *Installer {
	return &Installer{
		ctx:        ctx,
		dispatcher: d,
		fallback:   fb,
		opts:       opts,
		known:      make(map[string]bool),
	}
}

// InstallModule makes one module available. Calling it again for a module
// it already satisfied runs no subprocess.
func (i *Installer) InstallModule(name string) core.Result {
	mod := core.ParseModule(name)
	if !utils.IsValidModuleName(mod.Name) {
		res := core.Failure(fmt.Errorf("invalid module name %q", name), "invalid module name")
		res.Module = name
		return res
	}

	log := i.ctx.Log().With("module", mod.Name)

	if i.known[mod.Name] {
		log.Trace("already satisfied in this run")
		return i.done(core.SuccessNoChange("already installed"), mod, "", core.MethodCached)
	}

	if i.opts.Probe && i.fallback.Installed(i.ctx, mod.Name) {
		log.Debug("module already loadable")
		return i.done(core.SuccessNoChange("already installed"), mod, "", core.MethodPresent)
	}

	if i.ctx.Privileged {
		if pkg, ok := i.viaOS(mod, log); ok {
			return i.done(core.SuccessChange("installed OS package "+pkg), mod, pkg, core.MethodOS)
		}
	} else {
		log.Debug("not privileged, skipping OS packages")
	}

	if err := i.fallback.Install(i.ctx, mod.Name); err != nil {
		log.Error("installation failed", "error", err)
		res := core.Failure(err, "fallback installer failed")
		res.Module = mod.Name
		res.Method = core.MethodFallback
		return res
	}
	return i.done(core.SuccessChange("installed with fallback installer"), mod, "", core.MethodFallback)
}

// viaOS tries implemented -> modpkg -> install. Any miss falls through.
func (i *Installer) viaOS(mod core.Module, log core.Logger) (string, bool) {
	if !i.dispatcher.Implemented() {
		log.Debug("no driver for platform", "platform", i.dispatcher.Platform().ID)
		return "", false
	}

	pkg, ok, err := i.dispatcher.ModPkg(mod.Name)
	if err != nil {
		log.Debug("package lookup failed", "error", err)
		return "", false
	}
	if !ok {
		log.Debug("no OS package")
		return "", false
	}

	if err := i.dispatcher.Install(pkg); err != nil {
		log.Warn("OS package install failed, falling back", "package", pkg, "error", err)
		return "", false
	}
	return pkg, true
}

func (i *Installer) done(res core.Result, mod core.Module, pkg string, method core.InstallMethod) core.Result {
	i.known[mod.Name] = true
	res.Module = mod.Name
	res.Package = pkg
	res.Method = method
	return res
}

// InstallAll installs every module, continuing past failures. ok is true
// only when all of them succeeded.
func (i *Installer) InstallAll(names []string) (results []core.Result, ok bool) {
	ok = true
	for _, n := range names {
		res := i.InstallModule(n)
		if res.Failed {
			ok = false
		}
		results = append(results, res)
	}

	if i.opts.Recorder != nil && len(results) > 0 && !i.ctx.DryRun {
		if err := i.opts.Recorder.Record(i.dispatcher.Platform().ID, results); err != nil {
			i.ctx.Log().Warn("could not record install history", "error", err)
		}
	}
	return results, ok
}

// Bootstrap makes the fallback installer available by installing the
// platform prerequisites and the OS package that ships it. Requires
// privilege and a supported platform.
func (i *Installer) Bootstrap() error {
	if i.fallback.Ready(i.ctx) {
		i.ctx.Log().Debug("fallback installer already available")
		return nil
	}
	if !i.ctx.Privileged {
		return fmt.Errorf("fallback installer missing and not running as root: %w", core.ErrNotUsable)
	}
	if !i.dispatcher.Implemented() {
		return fmt.Errorf("cannot bootstrap on %q: %w", i.dispatcher.Platform().ID, core.ErrUnsupportedPlatform)
	}

	if err := i.dispatcher.Refresh(); err != nil && !errors.Is(err, core.ErrNotImplemented) {
		i.ctx.Log().Warn("package index refresh failed", "error", err)
	}

	pkg, ok, err := i.dispatcher.ModPkg(BootstrapModule)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if !ok {
		return fmt.Errorf("bootstrap: no OS package provides %s: %w", BootstrapModule, core.ErrNotFound)
	}

	pkgs := append(append([]string{}, i.dispatcher.Platform().Prereqs()...), pkg)
	if err := i.dispatcher.Install(pkgs...); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	if i.ctx.Locator != nil {
		i.ctx.Locator.Invalidate()
	}
	if !i.ctx.DryRun && !i.fallback.Ready(i.ctx) {
		return fmt.Errorf("bootstrap: installed %v but the fallback installer is still missing", pkgs)
	}
	return nil
}
