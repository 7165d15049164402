package system

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/melih-ucgun/ospack/internal/core"
)

// geteuid is swapped in tests.
var geteuid = os.Geteuid

func detectUser(ctx *core.SystemContext) {
	uid := geteuid()
	ctx.UID = strconv.Itoa(uid)
	ctx.Privileged = uid == 0

	if u, err := user.Current(); err == nil {
		ctx.User = u.Username
		if ctx.HomeDir == "" {
			ctx.HomeDir = u.HomeDir
		}
	}
	if ctx.HomeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			ctx.HomeDir = home
		}
	}

	ctx.Sysenv.Set(core.KeyUser, ctx.User)
	ctx.Sysenv.Set(core.KeyHome, ctx.HomeDir)
}

// EstablishLocalLib prepares a per-user module directory (~/perl5) for a
// non-privileged user and points the process environment at it. The
// locator cache is invalidated afterwards because PATH changed. It is a
// no-op for privileged runs and returns the directory otherwise.
func EstablishLocalLib(ctx *core.SystemContext) (string, error) {
	if ctx.Privileged {
		return "", nil
	}
	if ctx.HomeDir == "" {
		return "", fmt.Errorf("cannot set up local library: home directory unknown")
	}

	base := filepath.Join(ctx.HomeDir, "perl5")
	bin := filepath.Join(base, "bin")
	lib := filepath.Join(base, "lib", "perl5")

	for _, dir := range []string{bin, lib} {
		if err := ctx.FS.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("local library dizini oluşturulamadı: %w", err)
		}
	}

	if err := localLibEnv(base, bin, lib); err != nil {
		return "", fmt.Errorf("local library environment: %w", err)
	}

	ctx.Sysenv.Set(core.KeyLocalLib, base)
	if ctx.Locator != nil {
		ctx.Locator.Invalidate()
	}

	ctx.Log().Debug("local library established", "path", base)
	return base, nil
}

func localLibEnv(base, bin, lib string) error {
	if err := prependEnv("PATH", bin); err != nil {
		return err
	}
	if err := prependEnv("PERL5LIB", lib); err != nil {
		return err
	}
	if err := prependEnv("PERL_LOCAL_LIB_ROOT", base); err != nil {
		return err
	}
	if err := os.Setenv("PERL_MB_OPT", fmt.Sprintf("--install_base %q", base)); err != nil {
		return err
	}
	return os.Setenv("PERL_MM_OPT", "INSTALL_BASE="+base)
}

// prependEnv puts dir at the front of a list variable unless already there.
func prependEnv(key, dir string) error {
	cur := os.Getenv(key)
	for _, d := range filepath.SplitList(cur) {
		if d == dir {
			return nil
		}
	}
	if cur == "" {
		return os.Setenv(key, dir)
	}
	return os.Setenv(key, strings.Join([]string{dir, cur}, string(os.PathListSeparator)))
}
