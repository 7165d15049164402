package cpan

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(privileged bool, commands ...string) (*core.SystemContext, *core.MockRunner) {
	ctx := core.NewSystemContext(false)
	ctx.Privileged = privileged
	for _, c := range commands {
		ctx.Sysenv.SetCommand(c, "/usr/bin/"+c)
	}
	mock := core.NewMockRunner()
	ctx.Runner = mock
	ctx.Stdout = &bytes.Buffer{}
	ctx.Stderr = &bytes.Buffer{}
	return ctx, mock
}

func TestFallback_InstallPrivileged(t *testing.T) {
	ctx, mock := newTestContext(true, "cpanm", "perl")
	mock.OnExecute("cpanm --notest --quiet Term::ANSIColor", "", nil)

	require.NoError(t, New(Options{}).Install(ctx, "Term::ANSIColor"))
	assert.Equal(t, []string{"cpanm --notest --quiet Term::ANSIColor"}, mock.Calls)
}

func TestFallback_InstallLocalLib(t *testing.T) {
	home := t.TempDir()
	for _, k := range []string{"PATH", "PERL5LIB", "PERL_LOCAL_LIB_ROOT", "PERL_MB_OPT", "PERL_MM_OPT"} {
		t.Setenv(k, os.Getenv(k))
	}

	ctx, mock := newTestContext(false, "cpanm", "perl")
	ctx.HomeDir = home
	lib := filepath.Join(home, "perl5")
	mock.OnExecute("cpanm --notest --quiet --local-lib "+lib+" YAML", "", nil)

	require.NoError(t, New(Options{}).Install(ctx, "YAML"))
	assert.Equal(t, 1, mock.CallCount())
	assert.DirExists(t, filepath.Join(lib, "lib", "perl5"))
	assert.Equal(t, lib, ctx.Sysenv.Get(core.KeyLocalLib))
}

func TestFallback_PathsWithSpaces(t *testing.T) {
	ctx, mock := newTestContext(true)
	ctx.Sysenv.SetCommand("cpanm", "/opt/Perl Tools/bin/cpanm")
	ctx.Sysenv.SetCommand("perl", "/opt/Perl Tools/bin/perl")
	mock.OnExecute("cpanm --notest --quiet YAML", "", nil)
	mock.OnExecute("perl -MYAML -e 1", "", nil)

	f := New(Options{})
	require.NoError(t, f.Install(ctx, "YAML"))
	assert.True(t, f.Installed(ctx, "YAML"))
	assert.Equal(t, []string{"cpanm --notest --quiet YAML", "perl -MYAML -e 1"}, mock.Calls)
}

func TestFallback_CustomCommand(t *testing.T) {
	ctx, mock := newTestContext(true, "cpm", "perl")

	f := New(Options{
		Tool:    "cpm",
		Command: `{{ .Tool }} install --workers {{ default 4 .Workers }} {{ .Module }}`,
	})
	// .Workers is not a field: the template must fail rather than guess.
	assert.Error(t, f.Install(ctx, "Foo::Bar"))
	assert.Zero(t, mock.CallCount())

	f = New(Options{Tool: "cpm", Command: `{{ .Tool }} install --global "{{ .Module | lower | upper }}"`})
	mock.OnExecute("cpm install --global FOO::BAR", "", nil)
	require.NoError(t, f.Install(ctx, "Foo::Bar"))
	assert.True(t, mock.AssertCalled("cpm install --global FOO::BAR"))
}

func TestFallback_MissingTool(t *testing.T) {
	ctx, mock := newTestContext(true, "perl")

	f := New(Options{})
	assert.False(t, f.Ready(ctx))
	assert.ErrorIs(t, f.Install(ctx, "YAML"), core.ErrNotUsable)
	assert.Zero(t, mock.CallCount())
}

func TestFallback_InstallFailure(t *testing.T) {
	ctx, mock := newTestContext(true, "cpanm")
	mock.OnExecute("cpanm", "", errors.New("exit status 1"))

	assert.Error(t, New(Options{}).Install(ctx, "Broken::Dist"))
}

func TestFallback_DryRun(t *testing.T) {
	ctx, mock := newTestContext(false, "cpanm")
	ctx.DryRun = true
	ctx.HomeDir = t.TempDir()

	require.NoError(t, New(Options{}).Install(ctx, "YAML"))
	assert.Zero(t, mock.CallCount())
	assert.NoDirExists(t, filepath.Join(ctx.HomeDir, "perl5"), "dry run must not touch the home directory")
}

func TestFallback_Installed(t *testing.T) {
	ctx, mock := newTestContext(true, "cpanm", "perl")
	mock.OnExecute("perl -MJSON::PP -e 1", "", nil)
	mock.OnExecute("perl -MNo::Such -e 1", "", errors.New("exit status 2"))

	f := New(Options{})
	assert.True(t, f.Installed(ctx, "JSON::PP"))
	assert.False(t, f.Installed(ctx, "No::Such"))

	noPerl, mock2 := newTestContext(true, "cpanm")
	assert.False(t, f.Installed(noPerl, "JSON::PP"))
	assert.Zero(t, mock2.CallCount())
}
