package pkg

import (
	"regexp"

	"github.com/melih-ucgun/ospack/internal/core"
)

// Arch drives pacman.
type Arch struct{}

func init() {
	core.RegisterDriver(Arch{})
}

func (Arch) Name() string { return "arch" }

func (Arch) Available(ctx *core.SystemContext) bool {
	return ctx.HasCommand("pacman")
}

// PackageForModule maps Term::ANSIColor to perl-term-ansicolor.
func (a Arch) PackageForModule(ctx *core.SystemContext, mod core.Module, find core.FindFunc) (string, error) {
	if !a.Available(ctx) {
		return "", core.ErrNotUsable
	}
	return confirm(hyphenName("perl-", mod.LowerParts(), ""), find)
}

// Find uses pacman's regex search, so it matches substrings.
func (a Arch) Find(ctx *core.SystemContext, pkg string) (string, error) {
	lines, err := a.search(ctx, pkg)
	if err != nil {
		return "", err
	}
	return latest(lines)
}

// FindExact anchors the search and keeps only the exact name.
func (a Arch) FindExact(ctx *core.SystemContext, pkg string) (string, error) {
	lines, err := a.search(ctx, "^"+regexp.QuoteMeta(pkg)+"$")
	if err != nil {
		return "", err
	}
	return exactMatch(lines, pkg)
}

func (Arch) search(ctx *core.SystemContext, pattern string) ([]string, error) {
	pacman, err := requireCommand(ctx, "pacman")
	if err != nil {
		return nil, err
	}
	return queryLines(ctx, pacman, "--sync", "--search", "--quiet", pattern)
}

func (Arch) Install(ctx *core.SystemContext, pkgs []string) error {
	pacman, err := requireCommand(ctx, "pacman")
	if err != nil {
		return err
	}
	return runInstall(ctx, nil, pacman, []string{"--sync", "--needed", "--noconfirm"}, pkgs)
}
