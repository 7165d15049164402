package pkg

import (
	"regexp"

	"github.com/melih-ucgun/ospack/internal/core"
)

// Debian drives apt on Debian and its derivatives.
type Debian struct{}

func init() {
	core.RegisterDriver(Debian{})
}

func (Debian) Name() string { return "debian" }

func (Debian) Available(ctx *core.SystemContext) bool {
	return ctx.HasCommand("apt-get")
}

// PackageForModule maps Term::ANSIColor to libterm-ansicolor-perl.
func (d Debian) PackageForModule(ctx *core.SystemContext, mod core.Module, find core.FindFunc) (string, error) {
	if !d.Available(ctx) {
		return "", core.ErrNotUsable
	}
	return confirm(debianName(mod), find)
}

func debianName(mod core.Module) string {
	return hyphenName("lib", mod.LowerParts(), "-perl")
}

// Find searches package names for pkg as a literal substring.
func (d Debian) Find(ctx *core.SystemContext, pkg string) (string, error) {
	lines, err := d.search(ctx, regexp.QuoteMeta(pkg))
	if err != nil {
		return "", err
	}
	return latest(lines)
}

// FindExact anchors the search and keeps only the exact name.
func (d Debian) FindExact(ctx *core.SystemContext, pkg string) (string, error) {
	lines, err := d.search(ctx, "^"+regexp.QuoteMeta(pkg)+"$")
	if err != nil {
		return "", err
	}
	return exactMatch(lines, pkg)
}

func (d Debian) search(ctx *core.SystemContext, pattern string) ([]string, error) {
	if !d.Available(ctx) {
		return nil, core.ErrNotUsable
	}
	aptCache, err := requireCommand(ctx, "apt-cache")
	if err != nil {
		return nil, err
	}
	lines, err := queryLines(ctx, aptCache, "search", "--names-only", pattern)
	if err != nil {
		return nil, err
	}
	return firstFields(lines), nil
}

func (Debian) Install(ctx *core.SystemContext, pkgs []string) error {
	aptGet, err := requireCommand(ctx, "apt-get")
	if err != nil {
		return err
	}
	env := []string{"DEBIAN_FRONTEND=noninteractive"}
	return runInstall(ctx, env, aptGet, []string{"install", "--yes"}, pkgs)
}

func (Debian) Refresh(ctx *core.SystemContext) error {
	aptGet, err := requireCommand(ctx, "apt-get")
	if err != nil {
		return err
	}
	if ctx.DryRun {
		ctx.Log().Info("[DryRun] apt-get update")
		return nil
	}
	return ctx.Exec([]string{"DEBIAN_FRONTEND=noninteractive"}, aptGet, "update")
}
