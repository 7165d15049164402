package pkg

import (
	"regexp"

	"github.com/melih-ucgun/ospack/internal/core"
)

// apkVersion matches the "-<version>-r<release>" tail apk appends to names.
var apkVersion = regexp.MustCompile(`-[0-9][^-]*-r[0-9]+$`)

// Alpine drives apk.
type Alpine struct{}

func init() {
	core.RegisterDriver(Alpine{})
}

func (Alpine) Name() string { return "alpine" }

func (Alpine) Available(ctx *core.SystemContext) bool {
	return ctx.HasCommand("apk")
}

// PackageForModule maps Term::ANSIColor to perl-term-ansicolor.
func (a Alpine) PackageForModule(ctx *core.SystemContext, mod core.Module, find core.FindFunc) (string, error) {
	if !a.Available(ctx) {
		return "", core.ErrNotUsable
	}
	return confirm(hyphenName("perl-", mod.LowerParts(), ""), find)
}

// Find reduces each result line to its package name before sorting:
// "perl-yaml-1.30-r1 x86_64 {perl-yaml} ..." becomes perl-yaml.
func (Alpine) Find(ctx *core.SystemContext, pkg string) (string, error) {
	apk, err := requireCommand(ctx, "apk")
	if err != nil {
		return "", err
	}
	lines, err := queryLines(ctx, apk, "list", "--available", "--quiet", pkg)
	if err != nil {
		return "", err
	}
	names := firstFields(lines)
	for i, n := range names {
		names[i] = stripVersion(n)
	}
	return latest(names)
}

// stripVersion turns perl-yaml-1.30-r1 into perl-yaml.
func stripVersion(name string) string {
	return apkVersion.ReplaceAllString(name, "")
}

func (Alpine) Install(ctx *core.SystemContext, pkgs []string) error {
	apk, err := requireCommand(ctx, "apk")
	if err != nil {
		return err
	}
	return runInstall(ctx, nil, apk, []string{"add"}, pkgs)
}

func (Alpine) Refresh(ctx *core.SystemContext) error {
	apk, err := requireCommand(ctx, "apk")
	if err != nil {
		return err
	}
	if ctx.DryRun {
		ctx.Log().Info("[DryRun] apk update")
		return nil
	}
	return ctx.Exec(nil, apk, "update")
}
