package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/melih-ucgun/ospack/internal/adapters/cpan"
	"github.com/melih-ucgun/ospack/internal/adapters/ui"
	"github.com/melih-ucgun/ospack/internal/config"
	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/melih-ucgun/ospack/internal/state"
	"github.com/melih-ucgun/ospack/internal/system"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type testApp struct {
	*app
	mock *core.MockRunner
	buf  *bytes.Buffer
}

func newTestApp(t *testing.T, id string, privileged bool, commands ...string) testApp {
	t.Helper()
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	ctx := core.NewSystemContext(false)
	ctx.Privileged = privileged
	for _, c := range commands {
		ctx.Sysenv.SetCommand(c, "/usr/bin/"+c)
	}
	mock := core.NewMockRunner()
	ctx.Runner = mock
	ctx.Stdout = &bytes.Buffer{}
	ctx.Stderr = &bytes.Buffer{}

	buf := &bytes.Buffer{}
	a := &app{
		cfg: &config.Config{
			StatePath: filepath.Join(t.TempDir(), "state.json"),
		},
		ctx:      ctx,
		platform: system.Resolve(system.OSInfo{Kernel: "linux", ID: id}),
		fallback: cpan.New(cpan.Options{}),
		ui:       ui.NewPtermUI().WithWriter(&bytes.Buffer{}),
		out:      buf,
	}
	require.NoError(t, a.wire())
	return testApp{app: a, mock: mock, buf: buf}
}

func TestReadModules(t *testing.T) {
	in := strings.NewReader(`YAML
# comment
  Term::ANSIColor   JSON::PP  # trailing

LWP::Protocol::https
`)
	names, err := readModules(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"YAML", "Term::ANSIColor", "JSON::PP", "LWP::Protocol::https"}, names)
}

func TestResultRows(t *testing.T) {
	rows := resultRows([]core.Result{
		{Module: "YAML", Method: core.MethodOS, Package: "libyaml-perl", Changed: true},
		{Module: "JSON::PP", Method: core.MethodPresent},
		{Module: "Foo", Method: core.MethodFallback, Failed: true, Error: errors.New("cpanm: exit status 1")},
	})

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"YAML", "os", "libyaml-perl", "installed"}, rows[1])
	assert.Equal(t, "ok", rows[2][3])
	assert.Equal(t, "failed: cpanm: exit status 1", rows[3][3])
}

func TestRunInstall(t *testing.T) {
	ta := newTestApp(t, "ubuntu", true, "apt-get", "apt-cache", "cpanm")
	ta.mock.OnExecute("apt-cache search --names-only ^libyaml-perl$", "libyaml-perl - YAML\n", nil)
	ta.mock.OnExecute("apt-get install --yes libyaml-perl", "", nil)
	ta.mock.OnExecute("apt-cache search --names-only ^libfoo-bar-perl$", "", nil)
	ta.mock.OnExecute("cpanm --notest --quiet Foo::Bar", "", errors.New("exit status 1"))

	err := runInstall(ta.app, ta.installer(), []string{"YAML", "Foo::Bar"})
	assert.ErrorIs(t, err, errSilent)

	out := ta.buf.String()
	assert.Contains(t, out, "libyaml-perl")
	assert.Contains(t, out, "Foo::Bar")

	mgr, err := state.NewManager(ta.cfg.StatePath, &core.RealFS{})
	require.NoError(t, err)
	txs := mgr.GetTransactions()
	require.Len(t, txs, 1)
	assert.Equal(t, "failed", txs[0].Status)
	assert.Equal(t, "ubuntu", txs[0].Platform)
}

func TestRunInstall_AllGood(t *testing.T) {
	ta := newTestApp(t, "alpine", false, "apk", "cpanm")
	ta.ctx.DryRun = true

	require.NoError(t, runInstall(ta.app, ta.installer(), []string{"YAML"}))
	assert.Zero(t, ta.mock.CallCount(), "unprivileged dry run touches nothing")
	_, err := os.Stat(ta.cfg.StatePath)
	assert.True(t, os.IsNotExist(err), "dry runs are not recorded")
}

func TestRunFindAndModPkg(t *testing.T) {
	ta := newTestApp(t, "manjaro", true, "pacman")
	ta.mock.OnExecute("pacman --sync --search --quiet perl-yaml", "perl-yaml\nperl-yaml-tiny\n", nil)
	ta.mock.OnExecute("pacman --sync --search --quiet perl-nope", "", nil)
	ta.mock.OnExecute("pacman --sync --search --quiet ^perl-yaml$", "perl-yaml\n", nil)
	ta.mock.OnExecute("pacman --sync --search --quiet ^perl-nope$", "", nil)

	require.NoError(t, runFind(ta.app, "perl-yaml"))
	assert.Equal(t, "perl-yaml-tiny\n", ta.buf.String())

	ta.buf.Reset()
	require.NoError(t, runModPkg(ta.app, "YAML"))
	assert.Equal(t, "perl-yaml\n", ta.buf.String())

	assert.Error(t, runFind(ta.app, "perl-nope"))
	assert.Error(t, runModPkg(ta.app, "Nope"))
}

func TestRunModPkg_Unsupported(t *testing.T) {
	ta := newTestApp(t, "plan9os", true)
	err := runModPkg(ta.app, "YAML")
	assert.ErrorIs(t, err, core.ErrUnsupportedPlatform)
}

func TestRunEnv_YAML(t *testing.T) {
	ta := newTestApp(t, "rocky", false, "dnf", "perl")

	require.NoError(t, runEnv(ta.app, "yaml", nil))

	var report envReport
	require.NoError(t, yaml.Unmarshal(ta.buf.Bytes(), &report))
	assert.Equal(t, "rocky", report.Platform)
	assert.Equal(t, "rpm", report.Driver)
	assert.Equal(t, []string{"rocky", "rhel", "fedora"}, report.Chain)
	assert.Equal(t, "/usr/bin/perl", report.Sysenv["cmd:perl"])
}

func TestRunEnv_UnknownFormat(t *testing.T) {
	ta := newTestApp(t, "debian", false)
	assert.Error(t, runEnv(ta.app, "json", nil))
}

func TestRunRefresh(t *testing.T) {
	ta := newTestApp(t, "fedora", true, "dnf")
	require.NoError(t, runRefresh(ta.app), "rpm has no refresh, which is not an error")
	assert.Zero(t, ta.mock.CallCount())

	ta = newTestApp(t, "debian", true, "apt-get")
	ta.mock.OnExecute("apt-get update", "", errors.New("exit status 100"))
	assert.Error(t, runRefresh(ta.app))
}

func TestUserOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
overrides:
  - name: libapp-cpanminus-perl
    package:
      ubuntu: cpanminus-ppa
      default: cpanminus
    when: packager == "debian"
`), 0o644))

	ta := newTestApp(t, "ubuntu", true, "apt-get")
	ta.cfg.OverridesFile = path
	require.NoError(t, ta.wire())
	ta.mock.OnExecute("apt-get install --yes cpanminus-ppa", "", nil)

	require.NoError(t, ta.dispatcher.Install("libapp-cpanminus-perl"))
	assert.True(t, ta.mock.AssertCalled("apt-get install --yes cpanminus-ppa"))
}

func TestPlatformRows(t *testing.T) {
	rows := platformRows()
	require.Greater(t, len(rows), 1)

	byID := map[string][]string{}
	for _, r := range rows[1:] {
		byID[r[0]] = r
	}
	assert.Equal(t, "debian", byID["ubuntu"][1])
	assert.Equal(t, "rpm", byID["almalinux"][1])
	assert.Equal(t, "rhel", byID["almalinux"][2])
	assert.Equal(t, "base-devel", byID["endeavouros"][3])
}

func TestHistoryRows(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	tx := state.NewTransaction("debian", []core.Result{{Module: "YAML", Method: core.MethodOS, Changed: true}})
	rows := historyRows([]state.Transaction{tx})
	require.Len(t, rows, 2)
	assert.Equal(t, tx.ID[:8], rows[1][0])
	assert.Contains(t, rows[1][3], "success")

	detail := transactionRows(tx)
	assert.Equal(t, []string{"YAML", "os", "", "installed"}, detail[1])
}
