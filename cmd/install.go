package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/melih-ucgun/ospack/internal/engine"
	"github.com/spf13/cobra"
)

// errSilent fails the process without printing another message.
var errSilent = errors.New("")

var installCmd = &cobra.Command{
	Use:   "install [module...]",
	Short: "Install Perl modules, preferring OS packages",
	Example: `  ospack install YAML Term::ANSIColor
  scan-deps lib/ | ospack install --stdin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		fromStdin, _ := cmd.Flags().GetBool("stdin")
		bootstrap, _ := cmd.Flags().GetBool("bootstrap")

		names := args
		if fromStdin {
			more, err := readModules(cmd.InOrStdin())
			if err != nil {
				return err
			}
			names = append(names, more...)
		}
		if len(names) == 0 {
			return fmt.Errorf("no modules given")
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		inst := a.installer()
		if bootstrap {
			if err := inst.Bootstrap(); err != nil {
				a.ctx.Log().Warn("bootstrap failed", "error", err)
			}
		}
		return runInstall(a, inst, names)
	},
}

func runInstall(a *app, inst *engine.Installer, names []string) error {
	results, ok := inst.InstallAll(names)

	if err := a.table(resultRows(results)); err != nil {
		return err
	}
	if !ok {
		failed := 0
		for _, r := range results {
			if r.Failed {
				failed++
			}
		}
		a.ui.Error(fmt.Sprintf("%d of %d modules failed", failed, len(results)))
		return errSilent
	}
	a.ui.Success(fmt.Sprintf("%d modules satisfied", len(results)))
	return nil
}

func resultRows(results []core.Result) [][]string {
	rows := [][]string{{"Module", "Method", "Package", "Status"}}
	for _, r := range results {
		status := "ok"
		switch {
		case r.Failed:
			status = "failed"
			if r.Error != nil {
				status = "failed: " + r.Error.Error()
			}
		case r.Changed:
			status = "installed"
		}
		rows = append(rows, []string{r.Module, r.Method.String(), r.Package, status})
	}
	return rows
}

// readModules reads one module per line, ignoring blanks and # comments.
// Several whitespace separated names on one line are accepted.
func readModules(r io.Reader) ([]string, error) {
	var names []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		names = append(names, strings.Fields(line)...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading modules: %w", err)
	}
	return names, nil
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().Bool("stdin", false, "read module names from standard input")
	installCmd.Flags().Bool("bootstrap", false, "install cpanm from OS packages first when it is missing")
}
