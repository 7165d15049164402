package utils

import (
	"regexp"
	"slices"
)

// moduleNameRe matches Perl package names: Foo, Foo::Bar, Foo::Bar2::_x.
// The legacy "'" separator is not accepted.
var moduleNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(::[A-Za-z0-9_]+)*$`)

// IsValidModuleName reports whether name can be passed to a packager
// query or an installer command line as a module.
func IsValidModuleName(name string) bool {
	return moduleNameRe.MatchString(name)
}

// IsOneOf checks if value is one of the allowed values.
func IsOneOf(value string, allowed ...string) bool {
	return value != "" && slices.Contains(allowed, value)
}
