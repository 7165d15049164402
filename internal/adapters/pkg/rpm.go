package pkg

import (
	"fmt"

	"github.com/melih-ucgun/ospack/internal/core"
)

const rpmNameFormat = "%{name}\n"

// RPM drives dnf, or yum with repoquery from yum-utils on older systems.
type RPM struct{}

func init() {
	core.RegisterDriver(RPM{})
}

func (RPM) Name() string { return "rpm" }

func (RPM) Available(ctx *core.SystemContext) bool {
	return ctx.HasCommand("dnf") || ctx.HasCommand("yum")
}

// repoquery returns the command prefix used for queries.
func (RPM) repoquery(ctx *core.SystemContext) (string, []string, error) {
	if dnf := ctx.Command("dnf"); dnf != "" {
		return dnf, []string{"repoquery"}, nil
	}
	if !ctx.HasCommand("yum") {
		return "", nil, core.ErrNotUsable
	}
	rq, err := requireCommand(ctx, "repoquery")
	if err != nil {
		return "", nil, err
	}
	return rq, nil, nil
}

func (r RPM) query(ctx *core.SystemContext, args ...string) (string, error) {
	name, prefix, err := r.repoquery(ctx)
	if err != nil {
		return "", err
	}
	full := append(append(prefix, "--available", "--quiet", "--queryformat", rpmNameFormat), args...)
	lines, err := queryLines(ctx, name, full...)
	if err != nil {
		return "", err
	}
	return latest(lines)
}

// PackageForModule asks the repositories which package provides
// perl(Module::Name). The name is taken from the query, not constructed.
func (r RPM) PackageForModule(ctx *core.SystemContext, mod core.Module, _ core.FindFunc) (string, error) {
	return r.query(ctx, "--whatprovides", fmt.Sprintf("perl(%s)", mod.Name))
}

func (r RPM) Find(ctx *core.SystemContext, pkg string) (string, error) {
	return r.query(ctx, pkg)
}

func (RPM) Install(ctx *core.SystemContext, pkgs []string) error {
	if dnf := ctx.Command("dnf"); dnf != "" {
		return runInstall(ctx, nil, dnf, []string{"install", "--assumeyes", "--setopt=install_weak_deps=false"}, pkgs)
	}
	yum, err := requireCommand(ctx, "yum")
	if err != nil {
		return err
	}
	return runInstall(ctx, nil, yum, []string{"install", "--assumeyes"}, pkgs)
}
