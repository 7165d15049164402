package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/melih-ucgun/ospack/internal/adapters/cpan"
	"github.com/melih-ucgun/ospack/internal/adapters/ui"
	"github.com/melih-ucgun/ospack/internal/config"
	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/melih-ucgun/ospack/internal/engine"
	"github.com/melih-ucgun/ospack/internal/state"
	"github.com/melih-ucgun/ospack/internal/system"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	_ "github.com/melih-ucgun/ospack/internal/adapters/pkg"
)

// app is everything a command needs for one run.
type app struct {
	cfg        *config.Config
	ctx        *core.SystemContext
	platform   system.Platform
	dispatcher *engine.Dispatcher
	fallback   *cpan.Fallback
	ui         core.UI
	out        io.Writer
}

// newApp loads configuration, probes the host and wires the dispatcher.
func newApp(cmd *cobra.Command) (*app, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dryRunFlag {
		cfg.DryRun = true
	}

	level := core.LevelFromVerbosity(verboseCount, cfg.Debug)
	var structured io.Writer = io.Discard
	if level <= core.LevelDebug {
		pterm.EnableDebugMessages()
		structured = os.Stderr
	}

	u := ui.NewPtermUI()
	ctx := core.NewSystemContext(cfg.DryRun)
	ctx.Context = cmd.Context()
	ctx.Logger = core.NewDefaultLogger(u, structured, level)
	// Packager chatter stays off stdout.
	ctx.Stdout = os.Stderr

	platform, err := system.Detect(ctx, system.DetectOptions{ExtraPaths: cfg.ExtraPaths})
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		ctx.Log().Debug("config loaded", "file", cfg.File)
	}

	a := &app{
		cfg:      cfg,
		ctx:      ctx,
		platform: platform,
		fallback: cpan.New(cpan.Options{
			Tool:    cfg.Fallback.Tool,
			Runtime: cfg.Fallback.Runtime,
			Command: cfg.Fallback.Command,
			Probe:   cfg.Fallback.Probe,
		}),
		ui:  u,
		out: cmd.OutOrStdout(),
	}
	if err := a.wire(); err != nil {
		return nil, err
	}
	return a, nil
}

// wire loads user overrides and builds the dispatcher.
func (a *app) wire() error {
	set, err := config.LoadOverrides(a.ctx.FS, a.cfg.OverridesFile)
	if err != nil {
		return fmt.Errorf("overrides: %w", err)
	}
	bound, err := set.Bind(config.Facts{
		Platform: a.platform.ID,
		Like:     a.platform.Like,
		Version:  a.ctx.Version,
		Packager: a.platform.Driver,
		Chain:    a.platform.Chain,
	})
	if err != nil {
		return fmt.Errorf("overrides: %w", err)
	}
	if n := bound.Len(); n > 0 {
		a.ctx.Log().Debug("user overrides active", "count", n)
	}

	a.dispatcher = engine.NewDispatcher(a.ctx, a.platform, bound)
	return nil
}

func (a *app) installer() *engine.Installer {
	opts := engine.InstallerOptions{Probe: !a.cfg.Fallback.SkipProbe}
	if a.cfg.StatePath != "" {
		mgr, err := state.NewManager(a.cfg.StatePath, a.ctx.FS)
		if err != nil {
			a.ctx.Log().Warn("install history disabled", "error", err)
		} else {
			opts.Recorder = mgr
		}
	}
	return engine.NewInstaller(a.ctx, a.dispatcher, a.fallback, opts)
}

// newOutputUI returns a UI writing to the command's stdout.
func newOutputUI(cmd *cobra.Command) core.UI {
	return ui.NewPtermUI().WithWriter(cmd.OutOrStdout())
}

// table renders rows on stdout.
func (a *app) table(rows [][]string) error {
	return a.ui.WithWriter(a.out).Table(rows)
}
