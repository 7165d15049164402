package core

import "strings"

// InstallMethod, bir modülün nasıl karşılandığını belirtir.
type InstallMethod string

const (
	MethodCached   InstallMethod = "cached"   // already known installed this run
	MethodPresent  InstallMethod = "present"  // loadable before we touched it
	MethodOS       InstallMethod = "os"       // installed from an OS package
	MethodFallback InstallMethod = "fallback" // installed by the ecosystem installer
	MethodNone     InstallMethod = "none"
)

// String, InstallMethod'u string'e çevirir.
func (m InstallMethod) String() string {
	return string(m)
}

// Module is a language module name split into its "::" segments.
type Module struct {
	Name  string
	Parts []string
}

// ParseModule splits "Term::ANSIColor" into ["Term", "ANSIColor"].
func ParseModule(name string) Module {
	name = strings.TrimSpace(name)
	var parts []string
	for _, p := range strings.Split(name, "::") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return Module{Name: name, Parts: parts}
}

// LowerParts returns the segments lower-cased.
func (m Module) LowerParts() []string {
	out := make([]string, len(m.Parts))
	for i, p := range m.Parts {
		out[i] = strings.ToLower(p)
	}
	return out
}

func (m Module) String() string {
	return m.Name
}
