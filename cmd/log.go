package cmd

import (
	"fmt"

	"github.com/melih-ucgun/ospack/internal/config"
	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/melih-ucgun/ospack/internal/state"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var logCmd = &cobra.Command{
	Use:   "log [transaction-id]",
	Short: "View the install history",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		mgr, err := state.NewManager(cfg.StatePath, &core.RealFS{})
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		u := newOutputUI(cmd)
		if len(args) == 1 {
			tx, err := mgr.GetTransaction(args[0])
			if err != nil {
				return err
			}
			return u.Table(transactionRows(tx))
		}

		history := mgr.GetTransactions()
		if len(history) == 0 {
			pterm.Info.Println("No transaction log found.")
			return nil
		}
		return u.Table(historyRows(history))
	},
}

func historyRows(history []state.Transaction) [][]string {
	rows := [][]string{{"ID", "Date", "Platform", "Status", "Modules"}}

	// Show latest first (reverse iteration)
	for i := len(history) - 1; i >= 0; i-- {
		tx := history[i]

		statusStyle := pterm.NewStyle(pterm.FgGreen)
		if tx.Status == "failed" {
			statusStyle = pterm.NewStyle(pterm.FgRed)
		}

		rows = append(rows, []string{
			tx.ID[:min(8, len(tx.ID))],
			tx.Timestamp.Format("2006-01-02 15:04:05"),
			tx.Platform,
			statusStyle.Sprint(tx.Status),
			fmt.Sprintf("%d", len(tx.Changes)),
		})
	}
	return rows
}

func transactionRows(tx state.Transaction) [][]string {
	rows := [][]string{{"Module", "Method", "Package", "Status"}}
	for _, c := range tx.Changes {
		status := c.Status
		if c.Error != "" {
			status += ": " + c.Error
		}
		rows = append(rows, []string{c.Module, c.Method, c.Package, status})
	}
	return rows
}

func init() {
	rootCmd.AddCommand(logCmd)
}
