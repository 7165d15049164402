package cpan

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/melih-ucgun/ospack/internal/system"
	"mvdan.cc/sh/v3/shell"
)

const (
	DefaultTool    = "cpanm"
	DefaultRuntime = "perl"

	// DefaultCommand installs one module, into the user's local library
	// when not running as root.
	DefaultCommand = `{{ .Tool | quote }} --notest --quiet {{ if .LocalLib }}--local-lib {{ .LocalLib | quote }} {{ end }}{{ .Module | quote }}`

	// DefaultProbe exits 0 when the module can be loaded.
	DefaultProbe = `{{ .Runtime | quote }} {{ printf "-M%s" .Module | quote }} -e 1`
)

type Options struct {
	// Tool is the installer command looked up on the search path.
	Tool string
	// Runtime is the interpreter used by the probe.
	Runtime string
	// Command and Probe are text/template strings rendered with sprig.
	Command string
	Probe   string
}

// Fallback installs modules with cpanm.
type Fallback struct {
	opts Options
}

// templateData is what Command and Probe templates see.
type templateData struct {
	Tool       string
	Runtime    string
	Module     string
	LocalLib   string
	Privileged bool
}

func New(opts Options) *Fallback {
	if opts.Tool == "" {
		opts.Tool = DefaultTool
	}
	if opts.Runtime == "" {
		opts.Runtime = DefaultRuntime
	}
	if strings.TrimSpace(opts.Command) == "" {
		opts.Command = DefaultCommand
	}
	if strings.TrimSpace(opts.Probe) == "" {
		opts.Probe = DefaultProbe
	}
	return &Fallback{opts: opts}
}

func (f *Fallback) Ready(ctx *core.SystemContext) bool {
	return ctx.HasCommand(f.opts.Tool)
}

// Installed runs the probe. Any failure, including a missing runtime,
// counts as "not installed".
func (f *Fallback) Installed(ctx *core.SystemContext, module string) bool {
	runtime := ctx.Command(f.opts.Runtime)
	if runtime == "" {
		return false
	}
	argv, err := f.render("probe", f.opts.Probe, templateData{
		Tool:       ctx.Command(f.opts.Tool),
		Runtime:    runtime,
		Module:     module,
		Privileged: ctx.Privileged,
	})
	if err != nil {
		ctx.Log().Debug("probe template failed", "error", err)
		return false
	}
	_, err = ctx.CaptureLines(argv[0], argv[1:]...)
	return err == nil
}

func (f *Fallback) Install(ctx *core.SystemContext, module string) error {
	tool := ctx.Command(f.opts.Tool)
	if tool == "" {
		return fmt.Errorf("%s not found (try `ospack bootstrap`): %w", f.opts.Tool, core.ErrNotUsable)
	}

	data := templateData{
		Tool:       tool,
		Runtime:    ctx.Command(f.opts.Runtime),
		Module:     module,
		Privileged: ctx.Privileged,
	}

	if !ctx.Privileged {
		if ctx.DryRun {
			data.LocalLib = filepath.Join(ctx.HomeDir, "perl5")
		} else {
			lib, err := system.EstablishLocalLib(ctx)
			if err != nil {
				return err
			}
			data.LocalLib = lib
		}
	}

	argv, err := f.render("command", f.opts.Command, data)
	if err != nil {
		return err
	}

	if ctx.DryRun {
		ctx.Log().Info(fmt.Sprintf("[DryRun] %s", strings.Join(argv, " ")))
		return nil
	}
	ctx.Log().Info("installing with "+filepath.Base(argv[0]), "module", module)
	return ctx.Exec(nil, argv[0], argv[1:]...)
}

// render executes a command template and splits the result into argv
// using shell quoting rules.
func (f *Fallback) render(name, tmpl string, data templateData) ([]string, error) {
	line, err := core.ExecuteTemplate(name, tmpl, data)
	if err != nil {
		return nil, fmt.Errorf("fallback: %w", err)
	}
	argv, err := shell.Fields(line, nil)
	if err != nil {
		return nil, fmt.Errorf("fallback command %q: %w", line, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("fallback command is empty")
	}
	return argv, nil
}
