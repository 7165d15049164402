package core

import (
	"context"
	"io"
	"os"
)

// CommandLocator finds executables on the host. Implemented by system.Locator.
type CommandLocator interface {
	Locate(name string) (string, bool)
	Invalidate()
}

// SystemContext, uygulamanın çalışma anındaki bağlamını (context) tutar.
// It wraps the standard context and carries the environment snapshot of the
// run. One instance is built at startup and passed to every component.
type SystemContext struct {
	context.Context

	// İşletim Sistemi Bilgileri
	OS         string   // runtime.GOOS (linux, darwin)
	Distro     string   // os-release ID: ubuntu, arch, fedora
	DistroLike []string // os-release ID_LIKE
	Version    string   // 22.04, 38, rolling
	Kernel     string

	// Selected driver id, empty when the platform is unsupported.
	Packager string

	// Kullanıcı Bilgileri
	User       string
	HomeDir    string
	UID        string
	Privileged bool

	// Çalışma Modu
	DryRun bool // Eğer true ise, hiçbir değişiklik yapılmaz, sadece simüle edilir.

	Sysenv  *Sysenv
	Locator CommandLocator
	Runner  Runner
	FS      FileSystem
	Logger  Logger

	Stdout io.Writer
	Stderr io.Writer
}

// NewSystemContext, temel bir context oluşturur.
func NewSystemContext(dryRun bool) *SystemContext {
	return &SystemContext{
		Context: context.Background(),
		OS:      "unknown",
		Distro:  "unknown",
		User:    os.Getenv("USER"),
		HomeDir: os.Getenv("HOME"),
		DryRun:  dryRun,
		Sysenv:  NewSysenv(),
		Runner:  &RealRunner{},
		FS:      &RealFS{},
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
	}
}

// Command returns the absolute path of a command, consulting the snapshot
// first and the locator second. Returns "" when the command is absent.
func (c *SystemContext) Command(name string) string {
	if c.Sysenv != nil {
		if p := c.Sysenv.Command(name); p != "" {
			return p
		}
	}
	if c.Locator != nil {
		if p, ok := c.Locator.Locate(name); ok {
			return p
		}
	}
	return ""
}

// HasCommand reports whether a command is available.
func (c *SystemContext) HasCommand(name string) bool {
	return c.Command(name) != ""
}

// Log returns the context logger, or a silent one.
func (c *SystemContext) Log() Logger {
	if c.Logger == nil {
		return nopLogger
	}
	return c.Logger
}
