package core

import (
	"fmt"
	"sort"
	"sync"
)

// FindFunc looks up a package by exact name through the dispatcher, so
// overrides apply to names a driver builds itself.
type FindFunc func(pkg string) (string, error)

// Driver is the contract every packaging family implements.
// Lives in core so that engine and adapters do not import each other.
type Driver interface {
	// Name returns the driver id. Used as an identity probe at dispatch time.
	Name() string
	// Available reports whether the packager's primary command was located.
	Available(ctx *SystemContext) bool
	// PackageForModule builds the family's package name for a module and
	// confirms it exists.
	PackageForModule(ctx *SystemContext, mod Module, find FindFunc) (string, error)
	// Find returns the lexicographically last query result line.
	Find(ctx *SystemContext, pkg string) (string, error)
	// Install installs packages non-interactively.
	Install(ctx *SystemContext, pkgs []string) error
}

// Refresher is implemented by drivers that can update their package index.
type Refresher interface {
	Refresh(ctx *SystemContext) error
}

// ExactFinder is implemented by drivers whose Find matches substrings.
// FindExact succeeds only when a package named exactly pkg exists.
type ExactFinder interface {
	FindExact(ctx *SystemContext, pkg string) (string, error)
}

// FindExact looks pkg up by exact name, through the driver's ExactFinder
// when it has one. Drivers without it already match exactly.
func FindExact(ctx *SystemContext, d Driver, pkg string) (string, error) {
	if ef, ok := d.(ExactFinder); ok {
		return ef.FindExact(ctx, pkg)
	}
	return d.Find(ctx, pkg)
}

var (
	driverRegistry = make(map[string]Driver)
	registryMu     sync.RWMutex
)

// RegisterDriver registers a driver under its own name.
func RegisterDriver(d Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := driverRegistry[d.Name()]; dup {
		panic(fmt.Sprintf("driver registered twice: %s", d.Name()))
	}
	driverRegistry[d.Name()] = d
}

// LookupDriver returns the driver registered under id.
func LookupDriver(id string) (Driver, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := driverRegistry[id]
	return d, ok
}

// GetRegisteredDrivers returns the sorted ids of all registered drivers.
func GetRegisteredDrivers() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ids := make([]string, 0, len(driverRegistry))
	for id := range driverRegistry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
