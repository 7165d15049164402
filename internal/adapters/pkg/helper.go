package pkg

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/melih-ucgun/ospack/internal/core"
)

// requireCommand returns the located path of a packager command.
func requireCommand(ctx *core.SystemContext, name string) (string, error) {
	p := ctx.Command(name)
	if p == "" {
		return "", fmt.Errorf("%s not found: %w", name, core.ErrNotUsable)
	}
	return p, nil
}

// queryLines runs a package query. Packagers signal "no match" with a
// non-zero exit, so an exit error yields an empty result. A command that
// could not be started is still an error.
func queryLines(ctx *core.SystemContext, name string, args ...string) ([]string, error) {
	lines, err := ctx.CaptureLines(name, args...)
	if err != nil {
		if core.IsExitError(err) {
			return nil, nil
		}
		return nil, err
	}
	return lines, nil
}

// latest returns the lexicographically last line. Version ordering is not
// attempted: "perl-foo-10" sorts before "perl-foo-9".
func latest(lines []string) (string, error) {
	if len(lines) == 0 {
		return "", core.ErrNotFound
	}
	sorted := append([]string(nil), lines...)
	sort.Strings(sorted)
	return sorted[len(sorted)-1], nil
}

// firstFields keeps the first whitespace-separated field of every line.
func firstFields(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if f := strings.Fields(l); len(f) > 0 {
			out = append(out, f[0])
		}
	}
	return out
}

// hyphenName joins module segments with "-" and glues prefix and suffix
// on verbatim: hyphenName("lib", parts, "-perl") gives libterm-ansicolor-perl.
func hyphenName(prefix string, parts []string, suffix string) string {
	return prefix + strings.Join(parts, "-") + suffix
}

// exactMatch returns pkg when it appears verbatim among names.
func exactMatch(names []string, pkg string) (string, error) {
	for _, n := range names {
		if n == pkg {
			return pkg, nil
		}
	}
	return "", core.ErrNotFound
}

// confirm returns a constructed name once find reports a package with
// exactly that name (after overrides).
func confirm(name string, find core.FindFunc) (string, error) {
	if _, err := find(name); err != nil {
		return "", err
	}
	return name, nil
}

// normalizePackages flattens the package argument: entries may carry
// several whitespace separated names, blanks are dropped.
func normalizePackages(pkgs []string) []string {
	var out []string
	for _, p := range pkgs {
		out = append(out, strings.Fields(p)...)
	}
	return out
}

// runInstall executes an install command with the packages appended.
// In dry-run mode the command line is logged and nothing is run.
func runInstall(ctx *core.SystemContext, env []string, path string, args []string, pkgs []string) error {
	pkgs = normalizePackages(pkgs)
	if len(pkgs) == 0 {
		return fmt.Errorf("install: no packages given")
	}

	full := make([]string, 0, len(args)+len(pkgs))
	full = append(full, args...)
	full = append(full, pkgs...)

	if ctx.DryRun {
		ctx.Log().Info(fmt.Sprintf("[DryRun] %s %s", filepath.Base(path), strings.Join(full, " ")))
		return nil
	}
	return ctx.Exec(env, path, full...)
}
