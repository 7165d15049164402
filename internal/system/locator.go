package system

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/melih-ucgun/ospack/internal/core"
)

var standardDirs = []string{
	"/bin",
	"/usr/bin",
	"/sbin",
	"/usr/sbin",
	"/usr/local/bin",
	"/usr/local/sbin",
	"/opt/bin",
}

// Locator resolves command names to absolute paths. The search list and
// lookups are cached until Invalidate is called.
type Locator struct {
	fs     core.FileSystem
	env    *core.Sysenv
	getenv func(string) string
	extra  []string

	dirs    []string
	found   map[string]string
	missing map[string]bool
}

var _ core.CommandLocator = (*Locator)(nil)

// NewLocator creates a locator searching $PATH, the standard directories
// and extra, in that order. Found commands are recorded in env when set.
func NewLocator(fsys core.FileSystem, env *core.Sysenv, extra ...string) *Locator {
	return &Locator{
		fs:     fsys,
		env:    env,
		getenv: os.Getenv,
		extra:  extra,
	}
}

// SearchPath returns the directory list, building it on first use.
func (l *Locator) SearchPath() []string {
	if l.dirs != nil {
		return l.dirs
	}

	seen := make(map[string]bool)
	dirs := []string{}
	add := func(d string) {
		if d == "" || seen[d] {
			return
		}
		seen[d] = true
		dirs = append(dirs, d)
	}

	for _, d := range strings.Split(l.getenv("PATH"), string(os.PathListSeparator)) {
		add(d)
	}
	for _, d := range standardDirs {
		add(d)
	}
	for _, d := range l.extra {
		add(d)
	}

	l.dirs = dirs
	l.found = make(map[string]string)
	l.missing = make(map[string]bool)
	return l.dirs
}

// Locate returns the first executable named name on the search path.
func (l *Locator) Locate(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	if strings.ContainsRune(name, filepath.Separator) {
		return name, core.IsExecutable(l.fs, name)
	}

	dirs := l.SearchPath()
	if p, ok := l.found[name]; ok {
		return p, true
	}
	if l.missing[name] {
		return "", false
	}

	for _, d := range dirs {
		candidate := filepath.Join(d, name)
		if core.IsExecutable(l.fs, candidate) {
			l.found[name] = candidate
			if l.env != nil {
				l.env.SetCommand(name, candidate)
			}
			return candidate, true
		}
	}

	l.missing[name] = true
	return "", false
}

// AddDirs appends directories to the search list.
func (l *Locator) AddDirs(dirs ...string) {
	l.extra = append(l.extra, dirs...)
	l.Invalidate()
}

// Invalidate drops the cached search list and lookups. Call it after
// changing PATH.
func (l *Locator) Invalidate() {
	l.dirs = nil
	l.found = nil
	l.missing = nil
	if l.env != nil {
		l.env.ClearCommands()
		l.env.SetList(core.KeySearchPath, l.SearchPath())
	}
}
