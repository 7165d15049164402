package core

import "io"

// UI is the human facing side of a run: status lines and result tables.
// Structured records go through Logger instead.
type UI interface {
	Success(msg string)
	Info(msg string)
	Debug(msg string)
	Warning(msg string)
	Error(msg string)
	// Table renders rows, the first row being the header.
	Table(rows [][]string) error
	// WithWriter returns a UI writing to w, e.g. stdout for results.
	WithWriter(w io.Writer) UI
}
