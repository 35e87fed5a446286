package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionString(version, readRevision()))
	},
}

func versionString(v, rev string) string {
	if rev == "" {
		return "csatquiz " + v
	}
	return fmt.Sprintf("csatquiz %s (%s)", v, rev)
}

// readRevision returns the short VCS commit stamped by the Go toolchain.
func readRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
