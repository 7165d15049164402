package pkg

import (
	"bytes"
	"testing"

	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestContext returns a context whose sysenv knows the given commands
// under /usr/bin and whose runner is a mock.
func newTestContext(commands ...string) (*core.SystemContext, *core.MockRunner) {
	ctx := core.NewSystemContext(false)
	ctx.Locator = nil
	for _, c := range commands {
		ctx.Sysenv.SetCommand(c, "/usr/bin/"+c)
	}
	mock := core.NewMockRunner()
	ctx.Runner = mock
	ctx.Stdout = &bytes.Buffer{}
	ctx.Stderr = &bytes.Buffer{}
	return ctx, mock
}

// directFind is a FindFunc without overrides.
func directFind(ctx *core.SystemContext, d core.Driver) core.FindFunc {
	return func(pkg string) (string, error) { return core.FindExact(ctx, d, pkg) }
}

func TestLatest(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
		err   error
	}{
		{"empty", nil, "", core.ErrNotFound},
		{"single", []string{"perl-yaml"}, "perl-yaml", nil},
		{"last sorted wins", []string{"b", "c", "a"}, "c", nil},
		{"lexicographic not semantic", []string{"perl-foo-10", "perl-foo-9"}, "perl-foo-9", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := latest(tt.lines)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLatest_DoesNotReorderInput(t *testing.T) {
	in := []string{"z", "a"}
	_, _ = latest(in)
	assert.Equal(t, []string{"z", "a"}, in)
}

func TestHyphenName(t *testing.T) {
	tests := []struct {
		prefix string
		parts  []string
		suffix string
		want   string
	}{
		{"lib", []string{"term", "ansicolor"}, "-perl", "libterm-ansicolor-perl"},
		{"lib", []string{"yaml"}, "-perl", "libyaml-perl"},
		{"perl-", []string{"yaml"}, "", "perl-yaml"},
		{"perl-", []string{"YAML", "LibYAML"}, "", "perl-YAML-LibYAML"},
		{"", []string{"a", "b"}, "", "a-b"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, hyphenName(tt.prefix, tt.parts, tt.suffix))
		})
	}
}

func TestExactMatch(t *testing.T) {
	got, err := exactMatch([]string{"perl-yaml-libyaml", "perl-yaml"}, "perl-yaml")
	require.NoError(t, err)
	assert.Equal(t, "perl-yaml", got)

	_, err = exactMatch([]string{"perl-yaml-libyaml", "perl-yaml-tiny"}, "perl-yaml")
	assert.ErrorIs(t, err, core.ErrNotFound)

	_, err = exactMatch(nil, "perl-yaml")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestNormalizePackages(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, normalizePackages([]string{"a", " b  c ", ""}))
	assert.Empty(t, normalizePackages(nil))
}

func TestRunInstall_DryRun(t *testing.T) {
	ctx, mock := newTestContext("apk")
	ctx.DryRun = true

	require.NoError(t, runInstall(ctx, nil, "/usr/bin/apk", []string{"add"}, []string{"perl-yaml"}))
	assert.Zero(t, mock.CallCount(), "dry run must not execute anything")
}

func TestRunInstall_NoPackages(t *testing.T) {
	ctx, mock := newTestContext("apk")

	assert.Error(t, runInstall(ctx, nil, "/usr/bin/apk", []string{"add"}, []string{" "}))
	assert.Zero(t, mock.CallCount())
}

func TestRegisteredDrivers(t *testing.T) {
	assert.Equal(t, []string{"alpine", "arch", "debian", "rpm", "suse"}, core.GetRegisteredDrivers())

	for _, id := range core.GetRegisteredDrivers() {
		d, ok := core.LookupDriver(id)
		require.True(t, ok)
		assert.Equal(t, id, d.Name(), "identity probe must answer with the registry id")
	}
}

func TestDrivers_NotUsableWithoutPackager(t *testing.T) {
	for _, id := range core.GetRegisteredDrivers() {
		t.Run(id, func(t *testing.T) {
			ctx, mock := newTestContext()
			d, _ := core.LookupDriver(id)

			assert.False(t, d.Available(ctx))
			_, err := d.PackageForModule(ctx, core.ParseModule("YAML"), directFind(ctx, d))
			assert.ErrorIs(t, err, core.ErrNotUsable)
			_, err = d.Find(ctx, "perl-yaml")
			assert.ErrorIs(t, err, core.ErrNotUsable)
			assert.ErrorIs(t, d.Install(ctx, []string{"perl-yaml"}), core.ErrNotUsable)
			assert.Zero(t, mock.CallCount())
		})
	}
}
