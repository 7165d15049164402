package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"gopkg.in/yaml.v3"
)

// PackageName is either a literal package name or a map from platform id
// to name, with an optional "default" entry:
//
//	package: cpanminus
//	package:
//	  alpine: perl-app-cpanminus
//	  default: cpanminus
type PackageName struct {
	Literal    string
	ByPlatform map[string]string
}

func (p *PackageName) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&p.Literal)
	case yaml.MappingNode:
		return node.Decode(&p.ByPlatform)
	default:
		return fmt.Errorf("line %d: package must be a string or a platform map", node.Line)
	}
}

// For picks the name for the first id in chain that has an entry, then
// "default". ok is false when nothing applies.
func (p PackageName) For(chain []string) (string, bool) {
	if p.ByPlatform == nil {
		return p.Literal, p.Literal != ""
	}
	for _, id := range chain {
		if name, ok := p.ByPlatform[id]; ok && name != "" {
			return name, true
		}
	}
	name, ok := p.ByPlatform["default"]
	return name, ok && name != ""
}

// Override renames one computed package name.
type Override struct {
	Name    string      `yaml:"name"`
	Package PackageName `yaml:"package"`
	// When is an optional expr-lang condition over platform, like, version
	// and packager, e.g. `platform == "ubuntu" && version >= "22.04"`.
	When string `yaml:"when,omitempty"`

	program *vm.Program
}

// OverrideSet is the content of the overrides file.
type OverrideSet struct {
	Overrides []Override `yaml:"overrides"`
}

// Facts are the host properties override conditions can refer to.
type Facts struct {
	Platform string
	Like     []string
	Version  string
	Packager string
	// Chain is the platform lookup order used for platform maps.
	Chain []string
}

func (f Facts) env() map[string]any {
	like := f.Like
	if like == nil {
		like = []string{}
	}
	return map[string]any{
		"platform": f.Platform,
		"like":     like,
		"version":  f.Version,
		"packager": f.Packager,
	}
}

// ReadFileFS is the part of core.FileSystem the loader needs.
type ReadFileFS interface {
	ReadFile(name string) ([]byte, error)
}

// LoadOverrides reads an overrides file. A missing file yields an empty
// set.
func LoadOverrides(fsys ReadFileFS, path string) (*OverrideSet, error) {
	set := &OverrideSet{}
	if path == "" {
		return set, nil
	}

	data, err := fsys.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return set, nil
	}
	if err != nil {
		return nil, err
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes an overrides document and compiles its
// conditions.
func ParseOverrides(data []byte) (*OverrideSet, error) {
	set := &OverrideSet{}
	if err := yaml.Unmarshal(data, set); err != nil {
		return nil, fmt.Errorf("yaml parse hatası: %w", err)
	}

	for i := range set.Overrides {
		o := &set.Overrides[i]
		if o.Name == "" {
			return nil, fmt.Errorf("override #%d: name is required", i+1)
		}
		if o.When == "" {
			continue
		}
		program, err := expr.Compile(o.When, expr.Env(Facts{}.env()), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("override %s: when: %w", o.Name, err)
		}
		o.program = program
	}
	return set, nil
}

// Bound is an override set evaluated for one host.
type Bound struct {
	table map[string]string
}

// Bind evaluates every condition against facts. Later entries win over
// earlier ones for the same name.
func (s *OverrideSet) Bind(f Facts) (*Bound, error) {
	b := &Bound{table: make(map[string]string)}
	env := f.env()
	chain := f.Chain
	if len(chain) == 0 && f.Platform != "" {
		chain = append([]string{f.Platform}, f.Like...)
	}

	for _, o := range s.Overrides {
		if o.program != nil {
			out, err := expr.Run(o.program, env)
			if err != nil {
				return nil, fmt.Errorf("override %s: when: %w", o.Name, err)
			}
			if ok, _ := out.(bool); !ok {
				continue
			}
		}
		if name, ok := o.Package.For(chain); ok {
			b.table[o.Name] = name
		}
	}
	return b, nil
}

// Override implements the dispatcher's override lookup.
func (b *Bound) Override(name string) (string, bool) {
	if b == nil {
		return "", false
	}
	got, ok := b.table[name]
	return got, ok
}

// Len returns the number of active overrides.
func (b *Bound) Len() int {
	if b == nil {
		return 0
	}
	return len(b.table)
}
