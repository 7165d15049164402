package pkg

import (
	"strings"

	"github.com/melih-ucgun/ospack/internal/core"
)

// SUSE drives zypper. Package names keep the module's case: perl-YAML-LibYAML.
type SUSE struct{}

func init() {
	core.RegisterDriver(SUSE{})
}

func (SUSE) Name() string { return "suse" }

func (SUSE) Available(ctx *core.SystemContext) bool {
	return ctx.HasCommand("zypper")
}

func (s SUSE) PackageForModule(ctx *core.SystemContext, mod core.Module, find core.FindFunc) (string, error) {
	if !s.Available(ctx) {
		return "", core.ErrNotUsable
	}
	return confirm(hyphenName("perl-", mod.Parts, ""), find)
}

func (SUSE) Find(ctx *core.SystemContext, pkg string) (string, error) {
	zypper, err := requireCommand(ctx, "zypper")
	if err != nil {
		return "", err
	}
	lines, err := queryLines(ctx, zypper, "--non-interactive", "--quiet", "search", "--match-exact", "--type", "package", pkg)
	if err != nil {
		return "", err
	}
	return latest(zypperNames(lines))
}

// zypperNames extracts the Name column from zypper's search table:
//
//	S | Name      | Summary         | Type
//	--+-----------+-----------------+--------
//	  | perl-YAML | YAML Ain't M... | package
func zypperNames(lines []string) []string {
	var names []string
	for _, l := range lines {
		cols := strings.Split(l, "|")
		if len(cols) < 2 || strings.HasPrefix(strings.TrimSpace(l), "--") {
			continue
		}
		name := strings.TrimSpace(cols[1])
		if name == "" || name == "Name" {
			continue
		}
		names = append(names, name)
	}
	return names
}

func (SUSE) Install(ctx *core.SystemContext, pkgs []string) error {
	zypper, err := requireCommand(ctx, "zypper")
	if err != nil {
		return err
	}
	return runInstall(ctx, nil, zypper, []string{"--non-interactive", "install", "--auto-agree-with-licenses"}, pkgs)
}

func (SUSE) Refresh(ctx *core.SystemContext) error {
	zypper, err := requireCommand(ctx, "zypper")
	if err != nil {
		return err
	}
	if ctx.DryRun {
		ctx.Log().Info("[DryRun] zypper refresh")
		return nil
	}
	return ctx.Exec(nil, zypper, "--non-interactive", "refresh")
}
