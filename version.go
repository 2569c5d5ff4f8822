package swapsies

import "runtime/debug"

// Release is the version of this release of swapsies.
const Release = "v0.1.0"

// GitCommit can be set at link time with
// -ldflags "-X github.com/swapsies/swapsies.GitCommit=<sha>". When empty,
// the revision recorded by the go tool, if any, is used.
var GitCommit = ""

// commitLength is how much of a commit hash Version shows.
const commitLength = 12

// Version returns the release and the commit the binary was built from.
func Version() string {
	commit := GitCommit
	if commit == "" {
		commit = buildRevision()
	}
	if len(commit) > commitLength {
		commit = commit[:commitLength]
	}
	if commit == "" {
		return Release
	}
	return Release + " " + commit
}

func buildRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}
	return ""
}
