package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <package>",
	Short: "Search the package index for a package name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return runFind(a, args[0])
	},
}

var modpkgCmd = &cobra.Command{
	Use:   "modpkg <module>",
	Short: "Print the OS package that provides a module",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return runModPkg(a, args[0])
	},
}

func runFind(a *app, pkg string) error {
	name, ok, err := a.dispatcher.Find(pkg)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: no matching package", pkg)
	}
	fmt.Fprintln(a.out, name)
	return nil
}

func runModPkg(a *app, module string) error {
	name, ok, err := a.dispatcher.ModPkg(module)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: no OS package provides this module", module)
	}
	fmt.Fprintln(a.out, name)
	return nil
}

func init() {
	rootCmd.AddCommand(findCmd, modpkgCmd)
}
