package state

import "time"

// ModuleEntry records how a module was last satisfied on this host.
type ModuleEntry struct {
	Name        string    `json:"name" yaml:"name"`
	Package     string    `json:"package,omitempty" yaml:"package,omitempty"` // OS package, if one was used
	Method      string    `json:"method" yaml:"method"`                       // os, fallback, present
	LastApplied time.Time `json:"last_applied" yaml:"last_applied"`
}

// TransactionChange represents a single module within a transaction.
type TransactionChange struct {
	Module  string `json:"module" yaml:"module"`
	Package string `json:"package,omitempty" yaml:"package,omitempty"`
	Method  string `json:"method" yaml:"method"`
	Status  string `json:"status" yaml:"status"` // installed, unchanged, failed
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Transaction represents one install run.
type Transaction struct {
	ID        string              `json:"id" yaml:"id"`
	Timestamp time.Time           `json:"timestamp" yaml:"timestamp"`
	Platform  string              `json:"platform,omitempty" yaml:"platform,omitempty"`
	Status    string              `json:"status" yaml:"status"` // success, failed
	Changes   []TransactionChange `json:"changes" yaml:"changes"`
}

// State, tüm sistemin o anki snapshot'ıdır.
type State struct {
	Version string                 `json:"version"` // State dosya versiyonu
	LastRun time.Time              `json:"last_run"`
	Modules map[string]ModuleEntry `json:"modules"`
	History []Transaction          `json:"history,omitempty"`
}

func NewState() *State {
	return &State{
		Version: "1.0",
		Modules: make(map[string]ModuleEntry),
	}
}
