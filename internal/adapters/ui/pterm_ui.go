package ui

import (
	"io"
	"os"

	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/pterm/pterm"
)

// PtermUI is an implementation of core.UI using pterm.
type PtermUI struct {
	writer io.Writer
}

// NewPtermUI creates a new PtermUI instance. Messages go to stderr so
// that stdout carries only command results.
func NewPtermUI() *PtermUI {
	return &PtermUI{
		writer: os.Stderr,
	}
}

// Ensure PtermUI implements core.UI
var _ core.UI = (*PtermUI)(nil)

func (p *PtermUI) Success(msg string) {
	pterm.Success.WithWriter(p.writer).Println(msg)
}

func (p *PtermUI) Info(msg string) {
	pterm.Info.WithWriter(p.writer).Println(msg)
}

func (p *PtermUI) Debug(msg string) {
	pterm.Debug.WithWriter(p.writer).Println(msg)
}

func (p *PtermUI) Warning(msg string) {
	pterm.Warning.WithWriter(p.writer).Println(msg)
}

func (p *PtermUI) Error(msg string) {
	pterm.Error.WithWriter(p.writer).Println(msg)
}

func (p *PtermUI) Table(rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	return pterm.DefaultTable.WithHasHeader().WithWriter(p.writer).WithData(rows).Render()
}

func (p *PtermUI) WithWriter(w io.Writer) core.UI {
	return &PtermUI{
		writer: w,
	}
}
