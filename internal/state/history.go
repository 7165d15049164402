package state

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/melih-ucgun/ospack/internal/core"
)

// NewTransaction builds a transaction from one run's results.
func NewTransaction(platform string, results []core.Result) Transaction {
	tx := Transaction{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
		Platform:  platform,
		Status:    "success",
	}

	for _, r := range results {
		change := TransactionChange{
			Module:  r.Module,
			Package: r.Package,
			Method:  r.Method.String(),
			Status:  "unchanged",
		}
		switch {
		case r.Failed:
			change.Status = "failed"
			tx.Status = "failed"
			if r.Error != nil {
				change.Error = r.Error.Error()
			}
		case r.Changed:
			change.Status = "installed"
		}
		tx.Changes = append(tx.Changes, change)
	}
	return tx
}

// Record stores a run as a transaction and remembers every module it
// satisfied.
func (m *Manager) Record(platform string, results []core.Result) error {
	tx := NewTransaction(platform, results)

	m.mu.Lock()
	for _, r := range results {
		if r.Failed || r.Method == core.MethodCached {
			continue
		}
		m.Current.Modules[r.Module] = ModuleEntry{
			Name:        r.Module,
			Package:     r.Package,
			Method:      r.Method.String(),
			LastApplied: tx.Timestamp,
		}
	}
	m.mu.Unlock()

	return m.AddTransaction(tx)
}

// AddTransaction appends a new transaction to history and saves state.
func (m *Manager) AddTransaction(tx Transaction) error {
	m.mu.Lock()
	m.Current.History = append(m.Current.History, tx)
	m.mu.Unlock()

	return m.Save()
}

// GetTransactions returns a copy of history.
func (m *Manager) GetTransactions() []Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := make([]Transaction, len(m.Current.History))
	copy(history, m.Current.History)
	return history
}

// GetTransaction finds a transaction by ID or unique ID prefix.
func (m *Manager) GetTransaction(id string) (Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var match []Transaction
	for _, tx := range m.Current.History {
		if tx.ID == id {
			return tx, nil
		}
		if len(id) >= 4 && len(tx.ID) > len(id) && tx.ID[:len(id)] == id {
			match = append(match, tx)
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return Transaction{}, fmt.Errorf("transaction not found: %s", id)
	default:
		return Transaction{}, fmt.Errorf("transaction id %s is ambiguous", id)
	}
}
