package core

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// MockRunner implements Runner for testing purposes. Commands are keyed by
// the base name of the executable followed by its arguments, e.g.
// "apt-get install --yes vim".
type MockRunner struct {
	mu           sync.Mutex
	Expectations map[string]MockResponse
	Calls        []string
	Envs         [][]string
}

type MockResponse struct {
	Output string
	Error  error
}

func NewMockRunner() *MockRunner {
	return &MockRunner{
		Expectations: make(map[string]MockResponse),
		Calls:        make([]string, 0),
	}
}

func commandKey(cmd *exec.Cmd) string {
	if len(cmd.Args) == 0 {
		return filepath.Base(cmd.Path)
	}
	parts := append([]string{filepath.Base(cmd.Args[0])}, cmd.Args[1:]...)
	return strings.Join(parts, " ")
}

func (m *MockRunner) respond(cmd *exec.Cmd) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := commandKey(cmd)
	m.Calls = append(m.Calls, key)
	m.Envs = append(m.Envs, cmd.Env)

	// Check for exact match
	if resp, ok := m.Expectations[key]; ok {
		return resp.Output, resp.Error
	}

	// Check for prefix match
	for k, v := range m.Expectations {
		if strings.HasPrefix(key, k) {
			return v.Output, v.Error
		}
	}

	return "", fmt.Errorf("unexpected command: %s", key)
}

func (m *MockRunner) Run(cmd *exec.Cmd) error {
	out, err := m.respond(cmd)
	if cmd.Stdout != nil && out != "" {
		fmt.Fprint(cmd.Stdout, out)
	}
	return err
}

func (m *MockRunner) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	out, err := m.respond(cmd)
	return []byte(out), err
}

func (m *MockRunner) Output(cmd *exec.Cmd) ([]byte, error) {
	out, err := m.respond(cmd)
	return []byte(out), err
}

// Helpers for Test Setup

func (m *MockRunner) OnExecute(cmd string, output string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Expectations[cmd] = MockResponse{Output: output, Error: err}
}

func (m *MockRunner) AssertCalled(cmdFragment string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, call := range m.Calls {
		if strings.Contains(call, cmdFragment) {
			return true
		}
	}
	return false
}

// CallCount returns how many commands have been run.
func (m *MockRunner) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
