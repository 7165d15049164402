package core

import "io"

// NoOpUI discards everything. Tests use it when output does not matter.
type NoOpUI struct{}

func (*NoOpUI) Success(string)            {}
func (*NoOpUI) Info(string)               {}
func (*NoOpUI) Debug(string)              {}
func (*NoOpUI) Warning(string)            {}
func (*NoOpUI) Error(string)              {}
func (*NoOpUI) Table([][]string) error    { return nil }
func (n *NoOpUI) WithWriter(io.Writer) UI { return n }
