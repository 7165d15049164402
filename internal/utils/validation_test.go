package utils

import "testing"

func TestIsValidModuleName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"YAML", true},
		{"Term::ANSIColor", true},
		{"LWP::Protocol::https", true},
		{"_Private::Thing", true},
		{"Foo::Bar2", true},
		{"App::cpanminus", true},
		{"2Fast", false},
		{"Foo::", false},
		{"::Foo", false},
		{"Foo:::Bar", false},
		{"Foo'Bar", false},
		{"Foo Bar", false},
		{"Foo;rm -rf", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidModuleName(tt.name); got != tt.valid {
			t.Errorf("IsValidModuleName(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}

func TestIsOneOf(t *testing.T) {
	allowed := []string{"table", "yaml"}

	if !IsOneOf("table", allowed...) {
		t.Error("IsOneOf('table') should be true")
	}
	if !IsOneOf("yaml", allowed...) {
		t.Error("IsOneOf('yaml') should be true")
	}
	if IsOneOf("json", allowed...) {
		t.Error("IsOneOf('json') should be false")
	}
	if IsOneOf("", allowed...) {
		t.Error("IsOneOf('') should be false")
	}
}
