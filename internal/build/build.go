package build

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/depot/shredder/internal/build.Version=..."
var Version = "dev"
var Date = ""

func init() {
	if Version == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			Version = info.Main.Version
		}
	}
}

func UserAgent() string {
	return fmt.Sprintf("shredder/%s/%s/%s", Version, runtime.GOOS, runtime.GOARCH)
}
