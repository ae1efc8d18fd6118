package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.version=..." at release time.
var (
	version   = "v0.1.0"
	gitCommit = "development"
	buildDate = "unknown"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.out, "marble %s\n", version)
			fmt.Fprintf(a.out, "  Git Commit: %s\n", gitCommit)
			fmt.Fprintf(a.out, "  Build Date: %s\n", buildDate)
			fmt.Fprintf(a.out, "  Go Version: %s\n", runtime.Version())
			fmt.Fprintf(a.out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
