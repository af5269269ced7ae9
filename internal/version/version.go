package version

import (
	"fmt"
	"runtime"

	"github.com/schemakit/fsl"
)

// These variables are set via ldflags by GoReleaser
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns formatted version information, followed by the declaration
// kinds this build's grammar accepts — the detail that actually changes
// between schema-toolchain releases, as opposed to the binary's own build
// metadata.
func Info() string {
	return fmt.Sprintf("fsl %s (commit: %s, built: %s) %s\nsupported declarations: %s",
		Version, Commit, Date, runtime.Version(), SupportedDeclKinds())
}

// Short returns just the version string
func Short() string {
	return Version
}

// declKinds lists every declaration kind the grammar accepts, in
// declaration order. Kept here rather than derived by reflection since
// fsl.DeclKind has no enumerator of its own and this is the one place a
// human-readable list is needed.
var declKinds = []fsl.DeclKind{
	fsl.KindAccessProvider,
	fsl.KindCollection,
	fsl.KindFunction,
	fsl.KindRole,
}

// SupportedDeclKinds returns the comma-separated list of declaration kinds
// this build's grammar accepts, for callers (such as internal/update) that
// want to surface grammar compatibility alongside a plain version string.
func SupportedDeclKinds() string {
	s := ""
	for i, k := range declKinds {
		if i > 0 {
			s += ", "
		}
		s += k.String()
	}
	return s
}
