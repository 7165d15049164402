package system

import (
	"sort"
)

// PlatformConfig is one row of the static platform table.
type PlatformConfig struct {
	// Driver is the packaging family id, empty for ids that only alias
	// another platform.
	Driver string
	// Aliases are implied ancestors, searched depth-first after this id.
	Aliases []string
	// Overrides maps a computed package name to the real one.
	Overrides map[string]string
	// Prereqs are OS packages needed to build modules with the
	// ecosystem installer.
	Prereqs []string
	// ExtraPaths are searched for commands after the standard directories.
	ExtraPaths []string
}

var platforms = map[string]PlatformConfig{
	"alpine": {
		Driver:  "alpine",
		Prereqs: []string{"perl-utils", "perl-dev", "make", "gcc", "musl-dev"},
	},
	"arch": {
		Driver:     "arch",
		Overrides:  map[string]string{"perl-app-cpanminus": "cpanminus"},
		Prereqs:    []string{"base-devel"},
		ExtraPaths: []string{"/usr/bin/site_perl", "/usr/bin/vendor_perl", "/usr/bin/core_perl"},
	},
	"manjaro":     {Aliases: []string{"arch"}},
	"endeavouros": {Aliases: []string{"arch"}},
	"cachyos":     {Aliases: []string{"arch"}},

	"debian": {
		Driver:    "debian",
		Overrides: map[string]string{"libapp-cpanminus-perl": "cpanminus"},
		Prereqs:   []string{"build-essential", "libperl-dev"},
	},
	"ubuntu":    {Aliases: []string{"debian"}},
	"linuxmint": {Aliases: []string{"ubuntu"}},
	"raspbian":  {Aliases: []string{"debian"}},

	"fedora": {
		Driver:  "rpm",
		Prereqs: []string{"make", "gcc", "perl-devel"},
	},
	// EL clones reach the rpm driver through rhel -> fedora.
	"rhel":      {Aliases: []string{"fedora"}},
	"centos":    {Aliases: []string{"rhel"}},
	"rocky":     {Aliases: []string{"rhel"}},
	"almalinux": {Aliases: []string{"rhel"}},
	"ol":        {Aliases: []string{"rhel"}},

	"opensuse": {
		Driver:  "suse",
		Prereqs: []string{"make", "gcc"},
	},
	"suse":                {Driver: "suse", Prereqs: []string{"make", "gcc"}},
	"opensuse-leap":       {Aliases: []string{"opensuse"}},
	"opensuse-tumbleweed": {Aliases: []string{"opensuse"}},
	"sles":                {Aliases: []string{"suse"}},
}

// Platform is the resolved identity of the host.
type Platform struct {
	ID   string
	Like []string
	// Chain is every id consulted, in lookup order.
	Chain []string
	// Driver is the selected driver id, empty when unsupported.
	Driver string

	table map[string]PlatformConfig
}

// Resolve selects the driver for the host using the built-in table.
func Resolve(info OSInfo) Platform {
	return ResolveWith(platforms, info)
}

// ResolveWith is Resolve against an arbitrary table.
func ResolveWith(table map[string]PlatformConfig, info OSInfo) Platform {
	p := Platform{
		ID:    info.ID,
		Like:  info.IDLike,
		Chain: expandChain(table, append([]string{info.ID}, info.IDLike...)),
		table: table,
	}

	if info.Kernel != "linux" {
		return p
	}
	for _, id := range p.Chain {
		if cfg := table[id]; cfg.Driver != "" {
			p.Driver = cfg.Driver
			break
		}
	}
	return p
}

// expandChain visits ids in order, following aliases depth-first. Cycles
// and repeats are skipped.
func expandChain(table map[string]PlatformConfig, ids []string) []string {
	var chain []string
	seen := make(map[string]bool)

	var visit func(id string)
	visit = func(id string) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		chain = append(chain, id)
		for _, alias := range table[id].Aliases {
			visit(alias)
		}
	}

	for _, id := range ids {
		visit(id)
	}
	return chain
}

// Supported reports whether a driver was selected.
func (p Platform) Supported() bool {
	return p.ID != "" && p.Driver != ""
}

// Override returns the corrected package name for name, if any id in the
// chain declares one.
func (p Platform) Override(name string) (string, bool) {
	for _, id := range p.Chain {
		if repl, ok := p.table[id].Overrides[name]; ok {
			return repl, true
		}
	}
	return "", false
}

// Prereqs returns the first non-empty prerequisite list along the chain.
func (p Platform) Prereqs() []string {
	for _, id := range p.Chain {
		if pre := p.table[id].Prereqs; len(pre) > 0 {
			out := make([]string, len(pre))
			copy(out, pre)
			return out
		}
	}
	return nil
}

// ExtraPaths returns the union of extra search directories along the chain.
func (p Platform) ExtraPaths() []string {
	var out []string
	for _, id := range p.Chain {
		out = append(out, p.table[id].ExtraPaths...)
	}
	return out
}

// PlatformIDs lists every id of the built-in table, sorted.
func PlatformIDs() []string {
	ids := make([]string, 0, len(platforms))
	for id := range platforms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// LookupPlatform returns the built-in table row for id.
func LookupPlatform(id string) (PlatformConfig, bool) {
	cfg, ok := platforms[id]
	return cfg, ok
}
