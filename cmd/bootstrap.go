package cmd

import (
	"errors"

	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/spf13/cobra"
)

var bootstrapCmd = &cobra.Command{
	Use:   "bootstrap",
	Short: "Install cpanm and build prerequisites from OS packages",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.installer().Bootstrap(); err != nil {
			return err
		}
		a.ui.Success("cpanm is available")
		return nil
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Update the package index",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return runRefresh(a)
	},
}

func runRefresh(a *app) error {
	err := a.dispatcher.Refresh()
	if errors.Is(err, core.ErrNotImplemented) {
		a.ui.Info("the " + a.platform.Driver + " driver does not keep a local index, nothing to refresh")
		return nil
	}
	if err != nil {
		return err
	}
	a.ui.Success("package index updated")
	return nil
}

func init() {
	rootCmd.AddCommand(bootstrapCmd, refreshCmd)
}
