// Package quill is the root of the quill editing core. The packages below it
// hold the buffer, the editor session and the Bubble Tea host; this package
// only reports the release version.
package quill

import (
	_ "embed"
	"regexp"
	"runtime/debug"
	"strings"
)

const modulePath = "github.com/iw2rmb/quill"

var semverRE = regexp.MustCompile(`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?(?:\+[0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*)?$`)

//go:embed VERSION
var embeddedVersion string

// Version returns the release in SemVer format (without `v`).
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}

// VersionTag returns the git tag form of Version.
func VersionTag() string {
	return "v" + Version()
}

// BuildVersion describes the running binary: the tag of the quill module it
// was built against, followed by the VCS revision when the build recorded
// one.
func BuildVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return VersionTag()
	}
	return describeBuild(info)
}

func describeBuild(info *debug.BuildInfo) string {
	tag := VersionTag()
	mod := &info.Main
	if mod.Path != modulePath {
		for _, dep := range info.Deps {
			if dep.Path == modulePath {
				mod = dep
				break
			}
		}
	}
	if mod.Path == modulePath && IsSemver(strings.TrimPrefix(mod.Version, "v")) {
		tag = mod.Version
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return tag + " (" + s.Value[:7] + ")"
		}
	}
	return tag
}

// IsSemver reports whether v matches SemVer 2.0.0.
func IsSemver(v string) bool {
	return semverRE.MatchString(strings.TrimSpace(v))
}
