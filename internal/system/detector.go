package system

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/melih-ucgun/ospack/internal/core"
	"github.com/shirou/gopsutil/v3/host"
)

// OSInfo is what the identification probe learned about the host.
type OSInfo struct {
	Kernel     string   // runtime.GOOS style: linux, darwin
	ID         string   // os-release ID
	IDLike     []string // os-release ID_LIKE
	VersionID  string
	PrettyName string
}

var osReleasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// hostInfo is swapped in tests.
var hostInfo = host.InfoWithContext

// DetectOptions tunes Detect.
type DetectOptions struct {
	// ExtraPaths are appended to the command search path after the
	// platform's own extra directories.
	ExtraPaths []string
}

// Detect, mevcut sistemi analiz eder ve SystemContext'i doldurur.
// It probes the OS, resolves the platform, installs a command locator and
// records everything in the sysenv. Only a host that cannot be identified
// at all is an error.
func Detect(ctx *core.SystemContext, opts DetectOptions) (Platform, error) {
	if ctx.Sysenv == nil {
		ctx.Sysenv = core.NewSysenv()
	}
	if ctx.FS == nil {
		ctx.FS = &core.RealFS{}
	}

	info, err := Probe(ctx, ctx.FS)
	if err != nil {
		return Platform{}, err
	}

	ctx.OS = info.Kernel
	ctx.Distro = info.ID
	ctx.DistroLike = info.IDLike
	ctx.Version = info.VersionID
	ctx.Kernel = info.Kernel
	ctx.Sysenv.Set(core.KeyPlatform, info.ID)
	ctx.Sysenv.SetList(core.KeyPlatformLike, info.IDLike)
	ctx.Sysenv.Set(core.KeyVersion, info.VersionID)
	ctx.Sysenv.Set(core.KeyKernel, info.Kernel)

	detectUser(ctx)

	platform := Resolve(info)
	ctx.Packager = platform.Driver
	ctx.Sysenv.Set(core.KeyPackager, platform.Driver)

	extra := append(platform.ExtraPaths(), opts.ExtraPaths...)
	locator := NewLocator(ctx.FS, ctx.Sysenv, extra...)
	ctx.Locator = locator
	ctx.Sysenv.SetList(core.KeySearchPath, locator.SearchPath())

	ctx.Log().Debug("platform detected", "id", info.ID, "like", info.IDLike, "packager", platform.Driver)
	return platform, nil
}

// Probe identifies the host OS from os-release, falling back to gopsutil's
// host facts when no os-release file can be read.
func Probe(ctx context.Context, fsys core.FileSystem) (OSInfo, error) {
	info := OSInfo{Kernel: runtime.GOOS}

	if rel := ReadOSRelease(fsys); rel["ID"] != "" {
		info.ID = strings.ToLower(rel["ID"])
		info.IDLike = strings.Fields(strings.ToLower(rel["ID_LIKE"]))
		info.VersionID = rel["VERSION_ID"]
		info.PrettyName = rel["PRETTY_NAME"]
		return info, nil
	}

	hi, err := hostInfo(ctx)
	if err != nil {
		return info, fmt.Errorf("%w: %v", core.ErrNoOSInfo, err)
	}
	if hi.Platform == "" && hi.OS == "" {
		return info, core.ErrNoOSInfo
	}

	if hi.OS != "" {
		info.Kernel = hi.OS
	}
	info.ID = strings.ToLower(hi.Platform)
	if info.ID == "" {
		info.ID = info.Kernel
	}
	if fam := strings.ToLower(hi.PlatformFamily); fam != "" && fam != info.ID {
		info.IDLike = []string{fam}
	}
	info.VersionID = hi.PlatformVersion
	return info, nil
}

// ReadOSRelease reads the first readable os-release file. Missing files
// yield an empty map.
func ReadOSRelease(fsys core.FileSystem) map[string]string {
	for _, p := range osReleasePaths {
		data, err := fsys.ReadFile(p)
		if err != nil {
			continue
		}
		return ParseOSRelease(data)
	}
	return map[string]string{}
}

// ParseOSRelease parses KEY=value lines, dropping comments and quotes.
func ParseOSRelease(data []byte) map[string]string {
	info := make(map[string]string)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if parts := strings.SplitN(line, "=", 2); len(parts) == 2 {
			key := parts[0]
			// Tırnak işaretlerini temizle
			val := strings.Trim(parts[1], "\"'")
			info[key] = val
		}
	}
	return info
}
