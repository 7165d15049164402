package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ospack",
	Short: "Install Perl modules from OS packages, falling back to cpanm.",
	Long: `ospack detects the host's package manager, looks for a native package
that provides each requested module and installs it. Modules without a
package, or runs without root, go through cpanm instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	verboseCount int
	cfgFile      string
	envFile      string
	dryRunFlag   bool
)

// Execute runs the CLI. Ctrl+C cancels running subprocesses.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && err != errSilent {
		pterm.Error.Println(err)
	}
	return err
}

func init() {
	// PTerm output to Stderr (to keep Stdout clean for piping)
	pterm.SetDefaultOutput(os.Stderr)
	pterm.Success.Writer = os.Stderr
	pterm.Info.Writer = os.Stderr
	pterm.Error.Writer = os.Stderr
	pterm.Warning.Writer = os.Stderr
	pterm.Debug.Writer = os.Stderr
	pterm.DefaultHeader.Writer = os.Stderr

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ~/.ospack/ospack.yaml or ./ospack.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before configuration")
	rootCmd.PersistentFlags().BoolVar(&dryRunFlag, "dry-run", false, "print install commands instead of running them")
	rootCmd.PersistentFlags().CountVarP(&verboseCount, "verbose", "v", "Increase verbosity level (-v, -vv)")
}
