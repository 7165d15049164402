package core

import (
	"sort"
	"strings"
)

// Well-known sysenv keys.
const (
	KeyPlatform     = "platform"
	KeyPlatformLike = "platform_like"
	KeyPackager     = "packager"
	KeyVersion      = "version"
	KeyKernel       = "kernel"
	KeyHome         = "home"
	KeyUser         = "user"
	KeySearchPath   = "search_path"
	KeyLocalLib     = "local_lib"
)

// Sysenv is the environment snapshot of a run: discovered values keyed by
// logical name. Commands live in their own namespace so a command can never
// shadow a platform fact.
type Sysenv struct {
	values   map[string]string
	lists    map[string][]string
	commands map[string]string
}

func NewSysenv() *Sysenv {
	return &Sysenv{
		values:   make(map[string]string),
		lists:    make(map[string][]string),
		commands: make(map[string]string),
	}
}

func (s *Sysenv) Get(key string) string {
	return s.values[key]
}

func (s *Sysenv) Set(key, value string) {
	s.values[key] = value
}

func (s *Sysenv) GetList(key string) []string {
	return s.lists[key]
}

func (s *Sysenv) SetList(key string, values []string) {
	cp := make([]string, len(values))
	copy(cp, values)
	s.lists[key] = cp
}

// Command returns the absolute path recorded for a command, or "".
func (s *Sysenv) Command(name string) string {
	return s.commands[name]
}

// SetCommand records where a command was found.
func (s *Sysenv) SetCommand(name, path string) {
	s.commands[name] = path
}

// ClearCommands forgets every recorded command path.
func (s *Sysenv) ClearCommands() {
	s.commands = make(map[string]string)
}

// Entries flattens the snapshot into sorted key/value pairs for display.
// Commands are prefixed with "cmd:".
func (s *Sysenv) Entries() [][2]string {
	var out [][2]string
	for k, v := range s.values {
		out = append(out, [2]string{k, v})
	}
	for k, v := range s.lists {
		out = append(out, [2]string{k, strings.Join(v, " ")})
	}
	for k, v := range s.commands {
		out = append(out, [2]string{"cmd:" + k, v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}
