package cmd

import (
	"strings"

	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/melih-ucgun/ospack/internal/system"
	"github.com/spf13/cobra"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List the platforms and packaging drivers ospack knows",
	RunE: func(cmd *cobra.Command, args []string) error {
		return newOutputUI(cmd).Table(platformRows())
	},
}

func platformRows() [][]string {
	rows := [][]string{{"Platform", "Driver", "Aliases", "Prereqs"}}
	for _, id := range system.PlatformIDs() {
		cfg, _ := system.LookupPlatform(id)
		p := system.Resolve(system.OSInfo{Kernel: "linux", ID: id})

		driver := p.Driver
		if _, ok := core.LookupDriver(driver); !ok {
			driver += " (not registered)"
		}
		rows = append(rows, []string{id, driver, strings.Join(cfg.Aliases, " "), strings.Join(p.Prereqs(), " ")})
	}
	return rows
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}
